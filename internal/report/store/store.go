package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/payment"
	paymentstore "github.com/kuhlali/chamapro-extend/internal/payment/store"
	"github.com/kuhlali/chamapro-extend/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) MonthlyContributionTotals(ctx context.Context, userID uuid.UUID, since time.Time) ([]report.MonthTotal, error) {
	query := `
		SELECT date_trunc('month', created_at) AS month, SUM(amount)
		FROM payment_transactions
		WHERE user_id = $1 AND transaction_type = $2 AND status = $3 AND created_at >= $4
		GROUP BY month
		ORDER BY month
	`

	rows, err := s.db.QueryContext(ctx, query, userID, payment.TypeContribution, payment.StatusSuccess, since)
	if err != nil {
		return nil, fmt.Errorf("querying monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []report.MonthTotal

	for rows.Next() {
		var m report.MonthTotal
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, fmt.Errorf("scanning monthly total: %w", err)
		}

		totals = append(totals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating monthly totals: %w", err)
	}

	return totals, nil
}

func (s *Store) StatusCounts(ctx context.Context, userID uuid.UUID) ([]report.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM payment_transactions
		WHERE user_id = $1
		GROUP BY status
		ORDER BY status
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying status counts: %w", err)
	}
	defer rows.Close()

	var counts []report.StatusCount

	for rows.Next() {
		var (
			c      report.StatusCount
			status string
		)

		if err := rows.Scan(&status, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}

		c.Status = payment.Status(status)
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}

	return counts, nil
}

func (s *Store) ListUserTransactions(ctx context.Context, userID uuid.UUID, typ payment.Type, limit int) ([]*payment.Transaction, error) {
	query := `SELECT ` + paymentstore.TransactionColumns + `
		FROM payment_transactions
		WHERE user_id = $1 AND ($2 = '' OR transaction_type = $2)
		ORDER BY created_at DESC`

	args := []any{userID, string(typ)}

	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	return s.listTransactions(ctx, query, args...)
}

func (s *Store) ListGroupContributions(ctx context.Context, groupID uuid.UUID) ([]*payment.Transaction, error) {
	query := `SELECT ` + paymentstore.TransactionColumns + `
		FROM payment_transactions
		WHERE chama_id = $1 AND transaction_type = $2 AND status = $3
		ORDER BY created_at DESC`

	return s.listTransactions(ctx, query, groupID, payment.TypeContribution, payment.StatusSuccess)
}

func (s *Store) listTransactions(ctx context.Context, query string, args ...any) ([]*payment.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*payment.Transaction

	for rows.Next() {
		tx, err := paymentstore.ScanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) UserContributionTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal

	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM payment_transactions
		WHERE user_id = $1 AND transaction_type = $2 AND status = $3`,
		userID, payment.TypeContribution, payment.StatusSuccess,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing contributions: %w", err)
	}

	return total, nil
}

func (s *Store) MemberTotals(ctx context.Context, groupID uuid.UUID) ([]report.MemberTotal, error) {
	query := `
		SELECT u.id, u.username, u.first_name, u.last_name, SUM(t.amount) AS total
		FROM payment_transactions t
		JOIN users u ON u.id = t.user_id
		WHERE t.chama_id = $1 AND t.transaction_type = $2 AND t.status = $3
		GROUP BY u.id, u.username, u.first_name, u.last_name
		ORDER BY total DESC, u.username
	`

	rows, err := s.db.QueryContext(ctx, query, groupID, payment.TypeContribution, payment.StatusSuccess)
	if err != nil {
		return nil, fmt.Errorf("querying member totals: %w", err)
	}
	defer rows.Close()

	var totals []report.MemberTotal

	for rows.Next() {
		var m report.MemberTotal
		if err := rows.Scan(&m.UserID, &m.Username, &m.FirstName, &m.LastName, &m.Total); err != nil {
			return nil, fmt.Errorf("scanning member total: %w", err)
		}

		totals = append(totals, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member totals: %w", err)
	}

	return totals, nil
}

func (s *Store) CountGroups(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chamas c
		WHERE c.created_by = $1
			OR EXISTS (SELECT 1 FROM chama_members m WHERE m.chama_id = c.id AND m.user_id = $1)`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting groups: %w", err)
	}

	return n, nil
}
