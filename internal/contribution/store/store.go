package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kuhlali/chamapro-extend/internal/contribution"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) HasSuccessfulContribution(ctx context.Context, groupID, userID uuid.UUID, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM payment_transactions
			WHERE chama_id = $1 AND user_id = $2
			  AND transaction_type = 'contribution' AND status = 'success'
			  AND created_at >= $3 AND created_at < $4
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, groupID, userID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking contributions: %w", err)
	}

	return exists, nil
}

// CreatePenalty relies on the (user_id, chama_id, reason) unique index so
// concurrent assessments of the same period collapse into one row.
func (s *Store) CreatePenalty(ctx context.Context, p *contribution.Penalty) (bool, error) {
	insert := `
		INSERT INTO penalties (user_id, chama_id, amount, reason, assessed_on)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, chama_id, reason) DO NOTHING
		RETURNING id, is_paid, paid_at
	`

	err := s.db.QueryRowContext(ctx, insert, p.UserID, p.GroupID, p.Amount, p.Reason, p.AssessedOn).
		Scan(&p.ID, &p.IsPaid, &p.PaidAt)
	if err == nil {
		return true, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("creating penalty: %w", err)
	}

	existing := `
		SELECT id, amount, assessed_on, is_paid, paid_at
		FROM penalties
		WHERE user_id = $1 AND chama_id = $2 AND reason = $3
	`

	err = s.db.QueryRowContext(ctx, existing, p.UserID, p.GroupID, p.Reason).
		Scan(&p.ID, &p.Amount, &p.AssessedOn, &p.IsPaid, &p.PaidAt)
	if err != nil {
		return false, fmt.Errorf("getting existing penalty: %w", err)
	}

	return false, nil
}

func (s *Store) ListUnpaidPenalties(ctx context.Context, groupID, userID uuid.UUID) ([]*contribution.Penalty, error) {
	query := `
		SELECT id, user_id, chama_id, amount, reason, assessed_on, is_paid, paid_at
		FROM penalties
		WHERE chama_id = $1 AND user_id = $2 AND NOT is_paid
		ORDER BY assessed_on ASC
	`

	rows, err := s.db.QueryContext(ctx, query, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing penalties: %w", err)
	}
	defer rows.Close()

	var penalties []*contribution.Penalty

	for rows.Next() {
		var p contribution.Penalty
		if err := rows.Scan(&p.ID, &p.UserID, &p.GroupID, &p.Amount, &p.Reason, &p.AssessedOn, &p.IsPaid, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scanning penalty: %w", err)
		}

		penalties = append(penalties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating penalties: %w", err)
	}

	return penalties, nil
}
