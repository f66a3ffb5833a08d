package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// MaintenanceFilter captures maintenance ticket search parameters.
type MaintenanceFilter struct {
	Status     *string
	Urgency    *string
	SearchTerm *string
	Limit      int
}

var maintenanceSearchColumns = []string{"requester", "department", "description", "ticket_id"}

// MaintenanceRepository encapsulates general maintenance ticket persistence.
type MaintenanceRepository interface {
	Insert(ctx context.Context, ticket *domain.MaintenanceTicket) error
	GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error)
	List(ctx context.Context, filter MaintenanceFilter) ([]domain.MaintenanceTicket, error)
	UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type maintenanceRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewMaintenanceRepository instantiates the repository against the named table.
func NewMaintenanceRepository(pool *pgxpool.Pool, table string) MaintenanceRepository {
	return &maintenanceRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

const maintenanceColumns = `id, ticket_id, requester, department, description, urgency,
       status, completed_at, created_at`

func (r *maintenanceRepository) Insert(ctx context.Context, ticket *domain.MaintenanceTicket) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, ticket_id, requester, department, description, urgency,
            status, completed_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`, r.table)
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.TicketID,
		ticket.Requester,
		ticket.Department,
		ticket.Description,
		ticket.Urgency,
		ticket.Status,
		ticket.CompletedAt,
		ticket.CreatedAt,
	)
	return err
}

func (r *maintenanceRepository) GetByID(ctx context.Context, id string) (*domain.MaintenanceTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, maintenanceColumns, r.table)
	return scanMaintenance(r.pool.QueryRow(ctx, query, id))
}

func (r *maintenanceRepository) List(ctx context.Context, filter MaintenanceFilter) ([]domain.MaintenanceTicket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Urgency != nil {
		args = append(args, *filter.Urgency)
		clauses = append(clauses, fmt.Sprintf("urgency=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, likePattern(*filter.SearchTerm))
		ors := make([]string, len(maintenanceSearchColumns))
		for i, col := range maintenanceSearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, len(args))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY created_at DESC`,
		maintenanceColumns, r.table, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.MaintenanceTicket, 0)
	for rows.Next() {
		ticket, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func (r *maintenanceRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET status=$1, completed_at=$2 WHERE id=$3`, r.table)
	cmd, err := r.pool.Exec(ctx, query, status, completedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *maintenanceRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id=$1`, r.table)
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanMaintenance(row pgx.Row) (*domain.MaintenanceTicket, error) {
	var ticket domain.MaintenanceTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.TicketID,
		&ticket.Requester,
		&ticket.Department,
		&ticket.Description,
		&ticket.Urgency,
		&ticket.Status,
		&ticket.CompletedAt,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
