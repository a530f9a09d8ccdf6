package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kuhlali/chamapro-extend/internal/user"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectUserColumns = `id, username, email, first_name, last_name, phone_number, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*user.User, error) {
	var u user.User
	if err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PhoneNumber,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (username, email, first_name, last_name, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.FirstName, u.LastName, u.PhoneNumber,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrDuplicate
		}

		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.getBy(ctx, "id", id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getBy(ctx, "email", email)
}

func (s *Store) GetUserByPhone(ctx context.Context, phone string) (*user.User, error) {
	if phone == "" {
		return nil, user.ErrNotFound
	}

	return s.getBy(ctx, "phone_number", phone)
}

// getBy is only called with fixed column names.
func (s *Store) getBy(ctx context.Context, column string, value any) (*user.User, error) {
	query := `SELECT ` + selectUserColumns + ` FROM users WHERE ` + column + ` = $1 ORDER BY created_at LIMIT 1`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, value))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by %s: %w", column, err)
	}

	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, email = $3, phone_number = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.ErrNotFound
		}

		if isUniqueViolation(err) {
			return user.ErrDuplicate
		}

		return fmt.Errorf("updating user: %w", err)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
