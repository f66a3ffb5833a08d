package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// UserRepository defines persistence access for admin accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool, table string) UserRepository {
	return &userRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := fmt.Sprintf(`
        INSERT INTO %s (id, username, password_hash, role, created_at)
        VALUES ($1,$2,$3,$4,$5)`, r.table)
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
	)
	return err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := fmt.Sprintf(`
        SELECT id, username, password_hash, role, created_at
        FROM %s WHERE username=$1`, r.table)

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
