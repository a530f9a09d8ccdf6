package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/kuhlali/chamapro-extend/internal/investment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvestmentColumns = `
	id, chama_id, name, amount, date_invested, expected_return_date,
	expected_return_amount, actual_return_amount, status, description,
	created_at, updated_at
`

func scanInvestment(s scanner) (*investment.Investment, error) {
	var (
		inv    investment.Investment
		status string
	)

	if err := s.Scan(
		&inv.ID, &inv.GroupID, &inv.Name, &inv.Amount, &inv.DateInvested, &inv.ExpectedReturnDate,
		&inv.ExpectedReturnAmount, &inv.ActualReturnAmount, &status, &inv.Description,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = investment.Status(status)

	return &inv, nil
}

func (s *Store) CreateInvestment(ctx context.Context, inv *investment.Investment) error {
	query := `
		INSERT INTO investments (
			chama_id, name, amount, date_invested, expected_return_date,
			expected_return_amount, actual_return_amount, status, description
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.GroupID, inv.Name, inv.Amount, inv.DateInvested, inv.ExpectedReturnDate,
		inv.ExpectedReturnAmount, inv.ActualReturnAmount, inv.Status, inv.Description,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating investment: %w", err)
	}

	return nil
}

func (s *Store) GetInvestment(ctx context.Context, groupID, id uuid.UUID) (*investment.Investment, error) {
	query := `SELECT ` + selectInvestmentColumns + ` FROM investments WHERE chama_id = $1 AND id = $2`

	inv, err := scanInvestment(s.db.QueryRowContext(ctx, query, groupID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, investment.ErrNotFound
		}

		return nil, fmt.Errorf("getting investment: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvestments(ctx context.Context, groupID uuid.UUID) ([]*investment.Investment, error) {
	query := `SELECT ` + selectInvestmentColumns + ` FROM investments WHERE chama_id = $1 ORDER BY date_invested DESC`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}
	defer rows.Close()

	var investments []*investment.Investment

	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning investment: %w", err)
		}

		investments = append(investments, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating investments: %w", err)
	}

	return investments, nil
}

func (s *Store) UpdateInvestment(ctx context.Context, inv *investment.Investment) error {
	query := `
		UPDATE investments
		SET name = $1, amount = $2, date_invested = $3, expected_return_date = $4,
			expected_return_amount = $5, actual_return_amount = $6, status = $7,
			description = $8, updated_at = NOW()
		WHERE chama_id = $9 AND id = $10
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.Name, inv.Amount, inv.DateInvested, inv.ExpectedReturnDate,
		inv.ExpectedReturnAmount, inv.ActualReturnAmount, inv.Status,
		inv.Description, inv.GroupID, inv.ID,
	).Scan(&inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return investment.ErrNotFound
		}

		return fmt.Errorf("updating investment: %w", err)
	}

	return nil
}

func (s *Store) DeleteInvestment(ctx context.Context, groupID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE chama_id = $1 AND id = $2`, groupID, id)
	if err != nil {
		return fmt.Errorf("deleting investment: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting investment: %w", err)
	}

	if n == 0 {
		return investment.ErrNotFound
	}

	return nil
}
