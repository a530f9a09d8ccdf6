package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/metrics"
	"github.com/kuhlali/chamapro-extend/internal/money"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	CreateLoan(ctx context.Context, l *Loan) error
	GetLoan(ctx context.Context, groupID, loanID uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context, groupID uuid.UUID) ([]*Loan, error)
	// Transition moves a loan from one status to another and fails with
	// ErrInvalidTransition when the loan is not in from.
	Transition(ctx context.Context, l *Loan, from Status) error
	BeginDisbursement(ctx context.Context) (DisbursementTx, error)
}

// DisbursementTx serialises approvals on the group row. Callers lock the
// group before the loan.
type DisbursementTx interface {
	LockGroupBalance(ctx context.Context, groupID uuid.UUID) (decimal.Decimal, error)
	LockLoan(ctx context.Context, groupID, loanID uuid.UUID) (*Loan, error)
	MarkDisbursed(ctx context.Context, l *Loan) error
	DebitGroup(ctx context.Context, groupID uuid.UUID, amount decimal.Decimal) error
	Commit() error
	Rollback() error
}

type Groups interface {
	RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
	RequireCreator(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
}

type Users interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

type Gateway interface {
	RequestDisbursement(ctx context.Context, req mpesa.DisbursementRequest) mpesa.Result
}

type Service struct {
	repo    Repository
	groups  Groups
	users   Users
	gateway Gateway
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, groups Groups, users Users, gateway Gateway, opts ...Option) *Service {
	s := &Service{repo: repo, groups: groups, users: users, gateway: gateway, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type RequestParams struct {
	GroupID        uuid.UUID
	BorrowerID     uuid.UUID
	Amount         decimal.Decimal
	InterestRate   *decimal.Decimal
	DurationMonths int
}

func (s *Service) Request(ctx context.Context, params RequestParams) (*Loan, error) {
	if _, err := s.groups.RequireMember(ctx, params.GroupID, params.BorrowerID); err != nil {
		return nil, err
	}

	l := &Loan{
		GroupID:        params.GroupID,
		BorrowerID:     params.BorrowerID,
		Amount:         params.Amount,
		InterestRate:   DefaultInterestRate,
		DurationMonths: params.DurationMonths,
		Status:         StatusPending,
	}

	if params.InterestRate != nil {
		l.InterestRate = *params.InterestRate
	}

	if l.DurationMonths == 0 {
		l.DurationMonths = 1
	}

	if !l.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if !l.Amount.Equal(l.Amount.Truncate(0)) {
		return nil, fmt.Errorf("%w: amount must be in whole shillings", ErrValidation)
	}

	if l.InterestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}

	if l.DurationMonths < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one month", ErrValidation)
	}

	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) List(ctx context.Context, groupID, userID uuid.UUID) ([]*Loan, error) {
	if _, err := s.groups.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListLoans(ctx, groupID)
}

func (s *Service) Reject(ctx context.Context, groupID, loanID, actorID uuid.UUID) (*Loan, error) {
	if _, err := s.groups.RequireCreator(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	l, err := s.repo.GetLoan(ctx, groupID, loanID)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	l.Status = StatusRejected
	l.ActionAt = &now
	l.ActionBy = &actorID

	if err := s.repo.Transition(ctx, l, StatusPending); err != nil {
		return nil, err
	}

	return l, nil
}

// Approve pays a pending loan out to the borrower and debits the group. If
// the balance is short or the gateway rejects the payout, nothing changes.
func (s *Service) Approve(ctx context.Context, groupID, loanID, actorID uuid.UUID) (*Loan, error) {
	if _, err := s.groups.RequireCreator(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	// Once the payout is accepted the writes must land even if the caller
	// goes away, so the transaction does not follow request cancellation.
	txCtx := context.WithoutCancel(ctx)

	dtx, err := s.repo.BeginDisbursement(txCtx)
	if err != nil {
		return nil, fmt.Errorf("begin disbursement: %w", err)
	}
	defer dtx.Rollback()

	balance, err := dtx.LockGroupBalance(txCtx, groupID)
	if err != nil {
		return nil, err
	}

	l, err := dtx.LockLoan(txCtx, groupID, loanID)
	if err != nil {
		return nil, err
	}

	if l.Status != StatusPending {
		return nil, ErrInvalidTransition
	}

	if balance.LessThan(l.Amount) {
		return nil, fmt.Errorf("%w: %s available, %s requested",
			ErrInsufficientBalance, money.Format(balance), money.Format(l.Amount))
	}

	borrower, err := s.users.Get(ctx, l.BorrowerID)
	if err != nil {
		return nil, fmt.Errorf("loading borrower: %w", err)
	}

	phone := mpesa.NormalizePhone(borrower.PhoneNumber)
	if phone == "" {
		return nil, fmt.Errorf("%w: borrower has no phone number", ErrValidation)
	}

	res := s.gateway.RequestDisbursement(ctx, mpesa.DisbursementRequest{
		Phone:    phone,
		Amount:   money.Whole(l.Amount),
		Remarks:  "Loan for " + borrower.Username,
		Occasion: "Loan",
	})
	metrics.LoanDisbursements.WithLabelValues(res.Outcome.String()).Inc()

	if err := res.Err(); err != nil {
		slog.Warn("loan disbursement rejected", "loan_id", l.ID, "group_id", groupID, "error", err)
		return nil, err
	}

	now := s.now()
	l.Status = StatusDisbursed
	l.ActionAt = &now
	l.ActionBy = &actorID
	l.DisbursementRef = res.ConversationID
	l.RepaymentDate = new(now.AddDate(0, l.DurationMonths, 0))

	if err := dtx.MarkDisbursed(txCtx, l); err != nil {
		return nil, s.disbursedButNotRecorded(l, err)
	}

	if err := dtx.DebitGroup(txCtx, groupID, l.Amount); err != nil {
		return nil, s.disbursedButNotRecorded(l, err)
	}

	if err := dtx.Commit(); err != nil {
		return nil, s.disbursedButNotRecorded(l, err)
	}

	slog.Info("loan disbursed", "loan_id", l.ID, "group_id", groupID, "amount", l.Amount.String(), "conversation_id", l.DisbursementRef)

	return l, nil
}

// disbursedButNotRecorded flags money that left the paybill without a
// matching ledger entry; it needs manual follow-up.
func (s *Service) disbursedButNotRecorded(l *Loan, err error) error {
	slog.Error("loan paid out but not recorded",
		"loan_id", l.ID, "group_id", l.GroupID, "conversation_id", l.DisbursementRef, "error", err)

	return fmt.Errorf("record disbursement: %w", err)
}
