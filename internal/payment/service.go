package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/contribution"
	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/metrics"
	"github.com/kuhlali/chamapro-extend/internal/money"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	BeginSettlement(ctx context.Context) (SettlementTx, error)
}

// SettlementTx applies a callback atomically. Nothing is visible to other
// readers until Commit.
type SettlementTx interface {
	// LockTransaction loads the transaction FOR UPDATE.
	LockTransaction(ctx context.Context, checkoutRequestID string) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	CreditGroup(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) error
	ClearPenalties(ctx context.Context, groupID, userID uuid.UUID, paidAt time.Time) (int64, error)
	// LockSubscription returns the group's current expiry FOR UPDATE.
	LockSubscription(ctx context.Context, groupID uuid.UUID) (*time.Time, error)
	RenewSubscription(ctx context.Context, groupID uuid.UUID, expiry time.Time) error
	Commit() error
	Rollback() error
}

type Groups interface {
	RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
}

type Engine interface {
	Prepare(ctx context.Context, g *group.Group, userID uuid.UUID) (*contribution.Due, error)
}

type Users interface {
	GetByPhone(ctx context.Context, phone string) (*user.User, error)
}

type Gateway interface {
	RequestCollection(ctx context.Context, req mpesa.CollectionRequest) mpesa.Result
}

type Service struct {
	repo    Repository
	groups  Groups
	engine  Engine
	users   Users
	gateway Gateway
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, groups Groups, engine Engine, users Users, gateway Gateway, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		groups:  groups,
		engine:  engine,
		users:   users,
		gateway: gateway,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

const (
	maxReferenceLen        = 12
	maxSubscriptionNameLen = 8
)

type ContributionParams struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
	Phone   string
	// Amount overrides the amount due when set.
	Amount *decimal.Decimal
}

// Due assesses any late penalty and returns what the member owes now.
func (s *Service) Due(ctx context.Context, groupID, userID uuid.UUID) (*contribution.Due, error) {
	g, err := s.groups.RequireMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	return s.engine.Prepare(ctx, g, userID)
}

// InitiateContribution sends an STK push for a member's contribution. The
// transaction is stored only when the gateway accepts the request.
func (s *Service) InitiateContribution(ctx context.Context, params ContributionParams) (*Transaction, error) {
	g, err := s.groups.RequireMember(ctx, params.GroupID, params.UserID)
	if err != nil {
		return nil, err
	}

	due, err := s.engine.Prepare(ctx, g, params.UserID)
	if err != nil {
		return nil, err
	}

	amount := due.Total
	if params.Amount != nil {
		amount = *params.Amount
	}

	whole := money.Whole(amount)
	if whole < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1 shilling", ErrValidation)
	}

	phone := mpesa.NormalizePhone(params.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	}

	payer, err := s.payer(ctx, phone, params.UserID)
	if err != nil {
		return nil, err
	}

	res := s.gateway.RequestCollection(ctx, mpesa.CollectionRequest{
		Phone:       phone,
		Amount:      whole,
		Reference:   strings.ReplaceAll(truncate(g.Name, maxReferenceLen), " ", ""),
		Description: "Payment",
	})
	if err := res.Err(); err != nil {
		slog.Warn("contribution request rejected", "group_id", g.ID, "user_id", params.UserID, "error", err)
		return nil, err
	}

	tx := &Transaction{
		UserID:            &payer,
		GroupID:           &g.ID,
		Type:              TypeContribution,
		MerchantRequestID: res.MerchantRequestID,
		CheckoutRequestID: res.CheckoutRequestID,
		Amount:            decimal.NewFromInt(whole),
		PhoneNumber:       phone,
		Status:            StatusPending,
		Fee:               decimal.Zero,
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// payer attributes a payment to the user who owns phone, falling back to
// the caller.
func (s *Service) payer(ctx context.Context, phone string, caller uuid.UUID) (uuid.UUID, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return caller, nil
		}

		return uuid.Nil, fmt.Errorf("looking up payer: %w", err)
	}

	return u.ID, nil
}

type SubscriptionParams struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
	Phone   string
}

// InitiateSubscription requests the monthly plan fee for a group.
func (s *Service) InitiateSubscription(ctx context.Context, params SubscriptionParams) (*Transaction, error) {
	g, err := s.groups.RequireMember(ctx, params.GroupID, params.UserID)
	if err != nil {
		return nil, err
	}

	price, ok := g.Plan.Price()
	if !ok {
		return nil, ErrNoPaymentRequired
	}

	phone := mpesa.NormalizePhone(params.Phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone number is required", ErrValidation)
	}

	res := s.gateway.RequestCollection(ctx, mpesa.CollectionRequest{
		Phone:       phone,
		Amount:      money.Whole(price),
		Reference:   strings.ReplaceAll("SUB-"+truncate(g.Name, maxSubscriptionNameLen), " ", ""),
		Description: "Subscription for " + g.Name,
	})
	if err := res.Err(); err != nil {
		slog.Warn("subscription request rejected", "group_id", g.ID, "error", err)
		return nil, err
	}

	tx := &Transaction{
		UserID:            &params.UserID,
		GroupID:           &g.ID,
		Type:              TypeSubscription,
		MerchantRequestID: res.MerchantRequestID,
		CheckoutRequestID: res.CheckoutRequestID,
		Amount:            price,
		PhoneNumber:       phone,
		Status:            StatusPending,
		Fee:               decimal.Zero,
		Description:       fmt.Sprintf("Monthly %s Subscription", strings.ToUpper(string(g.Plan))),
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// ReconcileResult says what a callback did.
type ReconcileResult string

const (
	ReconcileSuccess   ReconcileResult = metrics.CallbackSuccess
	ReconcileFailed    ReconcileResult = metrics.CallbackFailed
	ReconcileUnknown   ReconcileResult = metrics.CallbackUnknown
	ReconcileDuplicate ReconcileResult = metrics.CallbackDuplicate
)

// Reconcile applies a gateway callback to its pending transaction. Unknown
// and already settled transactions are logged and ignored. All writes happen
// in one database transaction.
func (s *Service) Reconcile(ctx context.Context, cb *Callback) (ReconcileResult, error) {
	result, err := s.reconcile(ctx, cb)
	if err != nil {
		metrics.Callbacks.WithLabelValues(metrics.CallbackError).Inc()
		return "", err
	}

	metrics.Callbacks.WithLabelValues(string(result)).Inc()

	return result, nil
}

func (s *Service) reconcile(ctx context.Context, cb *Callback) (ReconcileResult, error) {
	stx, err := s.repo.BeginSettlement(ctx)
	if err != nil {
		return "", fmt.Errorf("begin settlement: %w", err)
	}
	defer stx.Rollback()

	tx, err := stx.LockTransaction(ctx, cb.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("callback for unknown transaction", "checkout_request_id", cb.CheckoutRequestID)
			return ReconcileUnknown, nil
		}

		return "", fmt.Errorf("lock transaction: %w", err)
	}

	if tx.Status.Terminal() {
		slog.Warn("duplicate callback ignored",
			"checkout_request_id", cb.CheckoutRequestID, "status", tx.Status, "result_code", cb.ResultCode)

		return ReconcileDuplicate, nil
	}

	result := ReconcileFailed

	if cb.Succeeded() {
		result = ReconcileSuccess

		if err := s.settle(ctx, stx, tx, cb); err != nil {
			return "", err
		}
	} else {
		tx.Status = StatusFailed
		tx.Description = cb.ResultDesc
	}

	if err := stx.UpdateTransaction(ctx, tx); err != nil {
		return "", fmt.Errorf("update transaction: %w", err)
	}

	if err := stx.Commit(); err != nil {
		return "", fmt.Errorf("commit settlement: %w", err)
	}

	slog.Info("transaction settled",
		"checkout_request_id", tx.CheckoutRequestID, "type", tx.Type, "status", tx.Status, "amount", tx.Amount.String())

	return result, nil
}

func (s *Service) settle(ctx context.Context, stx SettlementTx, tx *Transaction, cb *Callback) error {
	tx.Status = StatusSuccess
	tx.Description = "Payment Successful"

	if receipt, ok := cb.Item("MpesaReceiptNumber"); ok {
		tx.ReceiptNumber = receipt
	}

	if phone, ok := cb.Item("PhoneNumber"); ok {
		tx.PhoneNumber = phone
	}

	if tx.GroupID == nil {
		return nil
	}

	now := s.now()

	switch tx.Type {
	case TypeSubscription:
		current, err := stx.LockSubscription(ctx, *tx.GroupID)
		if err != nil {
			return fmt.Errorf("lock subscription: %w", err)
		}

		if err := stx.RenewSubscription(ctx, *tx.GroupID, group.ExtendSubscription(current, now)); err != nil {
			return fmt.Errorf("renew subscription: %w", err)
		}
	case TypeContribution:
		if err := stx.CreditGroup(ctx, *tx.GroupID, tx.Amount); err != nil {
			return fmt.Errorf("credit group: %w", err)
		}

		if tx.UserID == nil {
			return nil
		}

		cleared, err := stx.ClearPenalties(ctx, *tx.GroupID, *tx.UserID, now)
		if err != nil {
			return fmt.Errorf("clear penalties: %w", err)
		}

		if cleared > 0 {
			slog.Info("penalties cleared", "group_id", *tx.GroupID, "user_id", *tx.UserID, "count", cleared)
		}
	}

	return nil
}

// RecordDisbursement logs the asynchronous result of a loan payout.
func (s *Service) RecordDisbursement(_ context.Context, res *DisbursementResult) {
	metrics.Callbacks.WithLabelValues(metrics.CallbackB2C).Inc()

	if res.ResultCode != 0 {
		slog.Warn("disbursement failed at gateway",
			"conversation_id", res.ConversationID, "result_code", res.ResultCode, "result_desc", res.ResultDesc)

		return
	}

	slog.Info("disbursement completed",
		"conversation_id", res.ConversationID, "transaction_id", res.TransactionID)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
