package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// LibraryLogFilter captures sign-in log search parameters. Offset/Limit of
// zero means no pagination (export-all).
type LibraryLogFilter struct {
	Purpose    *string
	Course     *string
	SearchTerm *string
	DateFrom   *string
	DateTo     *string
	Offset     int
	Limit      int
}

var libraryLogSearchColumns = []string{"name", "year_level", "course", "purpose", "extra", "via"}

// LibraryLogRepository encapsulates sign-in log persistence. Logs are
// append-only, so there is no update or delete.
type LibraryLogRepository interface {
	Insert(ctx context.Context, log *domain.LibraryLog) error
	List(ctx context.Context, filter LibraryLogFilter) ([]domain.LibraryLog, error)
	Count(ctx context.Context, filter LibraryLogFilter) (int, error)
}

type libraryLogRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewLibraryLogRepository instantiates the repository against the named table.
func NewLibraryLogRepository(pool *pgxpool.Pool, table string) LibraryLogRepository {
	return &libraryLogRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

const libraryLogColumns = `id, date, time_in, name, year_level, course, purpose, extra, via, created_at`

func (r *libraryLogRepository) Insert(ctx context.Context, log *domain.LibraryLog) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, date, time_in, name, year_level, course, purpose, extra, via, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`, r.table)
	_, err := r.pool.Exec(ctx, query,
		log.ID,
		log.Date,
		log.TimeIn,
		log.Name,
		log.YearLevel,
		log.Course,
		log.Purpose,
		log.Extra,
		log.Via,
		log.CreatedAt,
	)
	return err
}

func (r *libraryLogRepository) List(ctx context.Context, filter LibraryLogFilter) ([]domain.LibraryLog, error) {
	where, args := buildLibraryLogWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY created_at DESC`,
		libraryLogColumns, r.table, where)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", filter.Limit, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.LibraryLog, 0)
	for rows.Next() {
		var log domain.LibraryLog
		if err := rows.Scan(
			&log.ID,
			&log.Date,
			&log.TimeIn,
			&log.Name,
			&log.YearLevel,
			&log.Course,
			&log.Purpose,
			&log.Extra,
			&log.Via,
			&log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func (r *libraryLogRepository) Count(ctx context.Context, filter LibraryLogFilter) (int, error) {
	where, args := buildLibraryLogWhere(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, r.table, where)
	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func buildLibraryLogWhere(filter LibraryLogFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Purpose != nil {
		args = append(args, *filter.Purpose)
		clauses = append(clauses, fmt.Sprintf("purpose=$%d", len(args)))
	}
	if filter.Course != nil {
		args = append(args, *filter.Course)
		clauses = append(clauses, fmt.Sprintf("course=$%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		clauses = append(clauses, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		clauses = append(clauses, fmt.Sprintf("date <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		args = append(args, likePattern(*filter.SearchTerm))
		ors := make([]string, len(libraryLogSearchColumns))
		for i, col := range libraryLogSearchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE $%d", col, len(args))
		}
		clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(clauses, " AND "), args
}
