package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type Scanner interface {
	Scan(dest ...any) error
}

// ScanTransaction reads a row selected with TransactionColumns.
func ScanTransaction(s Scanner) (*payment.Transaction, error) {
	var (
		tx          payment.Transaction
		typ, status string
	)

	if err := s.Scan(
		&tx.ID, &tx.UserID, &tx.GroupID, &typ,
		&tx.MerchantRequestID, &tx.CheckoutRequestID,
		&tx.Amount, &tx.PhoneNumber, &status, &tx.Fee,
		&tx.ReceiptNumber, &tx.Description, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = payment.Type(typ)
	tx.Status = payment.Status(status)

	return &tx, nil
}

const TransactionColumns = `
	id, user_id, chama_id, transaction_type,
	merchant_request_id, checkout_request_id,
	amount, phone_number, status, transaction_fee,
	receipt_number, description, created_at, updated_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *payment.Transaction) error {
	query := `
		INSERT INTO payment_transactions (
			user_id, chama_id, transaction_type, merchant_request_id, checkout_request_id,
			amount, phone_number, status, transaction_fee, receipt_number, description, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.UserID, tx.GroupID, tx.Type, tx.MerchantRequestID, tx.CheckoutRequestID,
		tx.Amount, tx.PhoneNumber, tx.Status, tx.Fee, tx.ReceiptNumber, tx.Description,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

type settlementTx struct {
	tx *sql.Tx
}

func (s *Store) BeginSettlement(ctx context.Context) (payment.SettlementTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning settlement tx: %w", err)
	}

	return &settlementTx{tx: dbTx}, nil
}

func (stx *settlementTx) Commit() error   { return stx.tx.Commit() }
func (stx *settlementTx) Rollback() error { return stx.tx.Rollback() }

func (stx *settlementTx) LockTransaction(ctx context.Context, checkoutRequestID string) (*payment.Transaction, error) {
	query := `SELECT ` + TransactionColumns + `
		FROM payment_transactions
		WHERE checkout_request_id = $1
		FOR UPDATE`

	tx, err := ScanTransaction(stx.tx.QueryRowContext(ctx, query, checkoutRequestID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	return tx, nil
}

func (stx *settlementTx) UpdateTransaction(ctx context.Context, tx *payment.Transaction) error {
	query := `
		UPDATE payment_transactions
		SET status = $1, receipt_number = $2, phone_number = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := stx.tx.QueryRowContext(ctx, query,
		tx.Status, tx.ReceiptNumber, tx.PhoneNumber, tx.Description, tx.ID,
	).Scan(&tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

// CreditGroup increments the balance in place so concurrent settlements
// never lose an update.
func (stx *settlementTx) CreditGroup(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) error {
	res, err := stx.tx.ExecContext(ctx,
		`UPDATE chamas SET total_balance = total_balance + $1, updated_at = NOW() WHERE id = $2`,
		amount, groupID,
	)
	if err != nil {
		return fmt.Errorf("crediting group: %w", err)
	}

	return requireRow(res, group.ErrNotFound)
}

func (stx *settlementTx) ClearPenalties(ctx context.Context, groupID, userID uuid.UUID, paidAt time.Time) (int64, error) {
	res, err := stx.tx.ExecContext(ctx,
		`UPDATE penalties SET is_paid = TRUE, paid_at = $1 WHERE chama_id = $2 AND user_id = $3 AND NOT is_paid`,
		paidAt, groupID, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("clearing penalties: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing penalties: %w", err)
	}

	return n, nil
}

func (stx *settlementTx) LockSubscription(ctx context.Context, groupID uuid.UUID) (*time.Time, error) {
	var expiry *time.Time

	err := stx.tx.QueryRowContext(ctx,
		`SELECT subscription_expiry FROM chamas WHERE id = $1 FOR UPDATE`,
		groupID,
	).Scan(&expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, group.ErrNotFound
		}

		return nil, fmt.Errorf("locking subscription: %w", err)
	}

	return expiry, nil
}

func (stx *settlementTx) RenewSubscription(ctx context.Context, groupID uuid.UUID, expiry time.Time) error {
	res, err := stx.tx.ExecContext(ctx,
		`UPDATE chamas SET subscription_expiry = $1, subscription_status = $2, updated_at = NOW() WHERE id = $3`,
		expiry, group.SubscriptionActive, groupID,
	)
	if err != nil {
		return fmt.Errorf("renewing subscription: %w", err)
	}

	return requireRow(res, group.ErrNotFound)
}

func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
