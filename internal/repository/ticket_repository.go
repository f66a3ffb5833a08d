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

// TicketFilter captures registrar ticket search parameters.
type TicketFilter struct {
	Status     *string
	SearchTerm *string
	From       *time.Time
	To         *time.Time
	Limit      int
}

// Free-text search columns, OR-combined when a search term is present.
var ticketSearchColumns = []string{
	"ref", "student_id", "student_name", "request_type",
	"remarks", "staff", "or_number", "received_by",
}

// TicketRepository encapsulates registrar ticket persistence.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	InsertMany(ctx context.Context, tickets []*domain.Ticket) (int, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
}

type ticketRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewTicketRepository instantiates the repository against the named table.
func NewTicketRepository(pool *pgxpool.Pool, table string) TicketRepository {
	return &ticketRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

const ticketColumns = `id, ref, student_id, student_name, request_type, date_received,
       schedule_release, date_release, target_days, remarks, staff, status,
       or_number, date_received_from_incharge, received_by, processing_days,
       timeliness, created_at`

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, ref, student_id, student_name, request_type, date_received,
            schedule_release, date_release, target_days, remarks, staff, status,
            or_number, date_received_from_incharge, received_by, processing_days,
            timeliness, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`, r.table)
	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.Ref,
		ticket.StudentID,
		ticket.StudentName,
		ticket.RequestType,
		ticket.DateReceived,
		ticket.ScheduleRelease,
		ticket.DateRelease,
		ticket.TargetDays,
		ticket.Remarks,
		ticket.Staff,
		ticket.Status,
		ticket.ORNumber,
		ticket.DateReceivedFromIncharge,
		ticket.ReceivedBy,
		ticket.ProcessingDays,
		ticket.Timeliness,
		ticket.CreatedAt,
	)
	return err
}

// InsertMany inserts best-effort and unordered: a failing document does not
// block the remaining ones. Returns the number of documents inserted.
func (r *ticketRepository) InsertMany(ctx context.Context, tickets []*domain.Ticket) (int, error) {
	inserted := 0
	var firstErr error
	for _, ticket := range tickets {
		if err := r.Insert(ctx, ticket); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		inserted++
	}
	if inserted == 0 && firstErr != nil {
		return 0, firstErr
	}
	return inserted, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, ticketColumns, r.table)
	row := r.pool.QueryRow(ctx, query, id)
	return scanTicket(row)
}

func (r *ticketRepository) List(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("date_received >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("date_received <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, likePattern(*filter.SearchTerm))
		ors := make([]string, len(ticketSearchColumns))
		for i, col := range ticketSearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, len(args))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY date_received DESC NULLS LAST, created_at DESC`,
		ticketColumns, r.table, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	query := fmt.Sprintf(`
        UPDATE %s SET ref=$1, student_id=$2, student_name=$3, request_type=$4,
            date_received=$5, schedule_release=$6, date_release=$7, target_days=$8,
            remarks=$9, staff=$10, status=$11, or_number=$12,
            date_received_from_incharge=$13, received_by=$14, processing_days=$15,
            timeliness=$16
        WHERE id=$17`, r.table)
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Ref,
		ticket.StudentID,
		ticket.StudentName,
		ticket.RequestType,
		ticket.DateReceived,
		ticket.ScheduleRelease,
		ticket.DateRelease,
		ticket.TargetDays,
		ticket.Remarks,
		ticket.Staff,
		ticket.Status,
		ticket.ORNumber,
		ticket.DateReceivedFromIncharge,
		ticket.ReceivedBy,
		ticket.ProcessingDays,
		ticket.Timeliness,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
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

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Ref,
		&ticket.StudentID,
		&ticket.StudentName,
		&ticket.RequestType,
		&ticket.DateReceived,
		&ticket.ScheduleRelease,
		&ticket.DateRelease,
		&ticket.TargetDays,
		&ticket.Remarks,
		&ticket.Staff,
		&ticket.Status,
		&ticket.ORNumber,
		&ticket.DateReceivedFromIncharge,
		&ticket.ReceivedBy,
		&ticket.ProcessingDays,
		&ticket.Timeliness,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// likePattern wraps a raw search term for a substring ILIKE match, escaping
// the LIKE metacharacters in the term itself.
func likePattern(term string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(term))
	return "%" + escaped + "%"
}
