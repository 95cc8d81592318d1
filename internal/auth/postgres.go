package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, user *User) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, username, password, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		user.ID, user.Username, user.Password, user.IsAdmin,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.get(ctx, `SELECT id, username, password, is_admin, created_at
		FROM users WHERE username = $1`, username)
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*User, error) {
	return s.get(ctx, `SELECT id, username, password, is_admin, created_at
		FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id, password string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users SET password = $1 WHERE id = $2`, password, id)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Password, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
