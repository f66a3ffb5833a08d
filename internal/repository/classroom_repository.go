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

// ClassroomFilter captures classroom ticket search parameters.
type ClassroomFilter struct {
	Status     *string
	SearchTerm *string
	Limit      int
}

var classroomSearchColumns = []string{
	"requester", "department", "particulars", "location", "description", "reference",
}

// ClassroomRepository encapsulates classroom maintenance ticket persistence.
type ClassroomRepository interface {
	Insert(ctx context.Context, ticket *domain.ClassroomTicket) error
	GetByID(ctx context.Context, id string) (*domain.ClassroomTicket, error)
	List(ctx context.Context, filter ClassroomFilter) ([]domain.ClassroomTicket, error)
	UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

type classroomRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewClassroomRepository instantiates the repository against the named table.
func NewClassroomRepository(pool *pgxpool.Pool, table string) ClassroomRepository {
	return &classroomRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

const classroomColumns = `id, reference, department, requester, particulars, location,
       description, status, date_filed, completed_at, created_at`

func (r *classroomRepository) Insert(ctx context.Context, ticket *domain.ClassroomTicket) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, reference, department, requester, particulars, location,
            description, status, date_filed, completed_at, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, r.table)
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Reference,
		ticket.Department,
		ticket.Requester,
		ticket.Particulars,
		ticket.Location,
		ticket.Description,
		ticket.Status,
		ticket.DateFiled,
		ticket.CompletedAt,
		ticket.CreatedAt,
	)
	return err
}

func (r *classroomRepository) GetByID(ctx context.Context, id string) (*domain.ClassroomTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, classroomColumns, r.table)
	return scanClassroom(r.pool.QueryRow(ctx, query, id))
}

func (r *classroomRepository) List(ctx context.Context, filter ClassroomFilter) ([]domain.ClassroomTicket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, likePattern(*filter.SearchTerm))
		ors := make([]string, len(classroomSearchColumns))
		for i, col := range classroomSearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, len(args))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY date_filed DESC`,
		classroomColumns, r.table, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.ClassroomTicket, 0)
	for rows.Next() {
		ticket, err := scanClassroom(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func (r *classroomRepository) UpdateStatus(ctx context.Context, id, status string, completedAt *time.Time) error {
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

func (r *classroomRepository) Delete(ctx context.Context, id string) error {
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

func scanClassroom(row pgx.Row) (*domain.ClassroomTicket, error) {
	var ticket domain.ClassroomTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Reference,
		&ticket.Department,
		&ticket.Requester,
		&ticket.Particulars,
		&ticket.Location,
		&ticket.Description,
		&ticket.Status,
		&ticket.DateFiled,
		&ticket.CompletedAt,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
