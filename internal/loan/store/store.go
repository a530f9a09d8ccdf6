package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/loan"
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

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectLoanColumns = `
	id, chama_id, borrower_id, amount, interest_rate, duration_months, status,
	requested_at, action_at, action_by, repayment_date, disbursement_ref
`

func scanLoan(s scanner) (*loan.Loan, error) {
	var (
		l      loan.Loan
		status string
	)

	if err := s.Scan(
		&l.ID, &l.GroupID, &l.BorrowerID, &l.Amount, &l.InterestRate, &l.DurationMonths, &status,
		&l.RequestedAt, &l.ActionAt, &l.ActionBy, &l.RepaymentDate, &l.DisbursementRef,
	); err != nil {
		return nil, err
	}

	l.Status = loan.Status(status)

	return &l, nil
}

func getLoan(ctx context.Context, q queryer, groupID, loanID uuid.UUID, suffix string) (*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE chama_id = $1 AND id = $2` + suffix

	l, err := scanLoan(q.QueryRowContext(ctx, query, groupID, loanID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (chama_id, borrower_id, amount, interest_rate, duration_months, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, requested_at
	`

	err := s.db.QueryRowContext(ctx, query,
		l.GroupID, l.BorrowerID, l.Amount, l.InterestRate, l.DurationMonths, l.Status,
	).Scan(&l.ID, &l.RequestedAt)
	if err != nil {
		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, groupID, loanID uuid.UUID) (*loan.Loan, error) {
	return getLoan(ctx, s.db, groupID, loanID, "")
}

func (s *Store) ListLoans(ctx context.Context, groupID uuid.UUID) ([]*loan.Loan, error) {
	query := `SELECT ` + selectLoanColumns + ` FROM loans WHERE chama_id = $1 ORDER BY requested_at DESC`

	rows, err := s.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating loans: %w", err)
	}

	return loans, nil
}

func (s *Store) Transition(ctx context.Context, l *loan.Loan, from loan.Status) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE loans SET status = $1, action_at = $2, action_by = $3
		WHERE id = $4 AND chama_id = $5 AND status = $6`,
		l.Status, l.ActionAt, l.ActionBy, l.ID, l.GroupID, from,
	)
	if err != nil {
		return fmt.Errorf("updating loan status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating loan status: %w", err)
	}

	if n == 0 {
		return loan.ErrInvalidTransition
	}

	return nil
}

type disbursementTx struct {
	tx *sql.Tx
}

func (s *Store) BeginDisbursement(ctx context.Context) (loan.DisbursementTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning disbursement tx: %w", err)
	}

	return &disbursementTx{tx: dbTx}, nil
}

func (dtx *disbursementTx) Commit() error   { return dtx.tx.Commit() }
func (dtx *disbursementTx) Rollback() error { return dtx.tx.Rollback() }

func (dtx *disbursementTx) LockGroupBalance(ctx context.Context, groupID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := dtx.tx.QueryRowContext(ctx,
		`SELECT total_balance FROM chamas WHERE id = $1 FOR UPDATE`, groupID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, group.ErrNotFound
		}

		return decimal.Zero, fmt.Errorf("locking group balance: %w", err)
	}

	return balance, nil
}

func (dtx *disbursementTx) LockLoan(ctx context.Context, groupID, loanID uuid.UUID) (*loan.Loan, error) {
	return getLoan(ctx, dtx.tx, groupID, loanID, " FOR UPDATE")
}

func (dtx *disbursementTx) MarkDisbursed(ctx context.Context, l *loan.Loan) error {
	_, err := dtx.tx.ExecContext(ctx, `
		UPDATE loans
		SET status = $1, action_at = $2, action_by = $3, disbursement_ref = $4, repayment_date = $5
		WHERE id = $6`,
		l.Status, l.ActionAt, l.ActionBy, l.DisbursementRef, l.RepaymentDate, l.ID,
	)
	if err != nil {
		return fmt.Errorf("marking loan disbursed: %w", err)
	}

	return nil
}

func (dtx *disbursementTx) DebitGroup(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) error {
	_, err := dtx.tx.ExecContext(ctx,
		`UPDATE chamas SET total_balance = total_balance - $1, updated_at = NOW() WHERE id = $2`,
		amount, groupID,
	)
	if err != nil {
		return fmt.Errorf("debiting group: %w", err)
	}

	return nil
}
