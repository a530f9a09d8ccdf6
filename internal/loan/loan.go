package loan

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("loan not found")
	ErrValidation          = errors.New("invalid loan")
	ErrInvalidTransition   = errors.New("loan is not pending")
	ErrInsufficientBalance = errors.New("insufficient group balance")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusDisbursed Status = "disbursed"
	StatusPaid      Status = "paid"
)

var DefaultInterestRate = decimal.NewFromInt(10)

type Loan struct {
	ID              uuid.UUID
	GroupID         uuid.UUID
	BorrowerID      uuid.UUID
	Amount          decimal.Decimal
	InterestRate    decimal.Decimal // percent
	DurationMonths  int
	Status          Status
	RequestedAt     time.Time
	ActionAt        *time.Time
	ActionBy        *uuid.UUID
	RepaymentDate   *time.Time
	DisbursementRef string // gateway ConversationID
}

// TotalRepayment is the principal plus flat interest.
func (l *Loan) TotalRepayment() decimal.Decimal {
	return l.Amount.Mul(decimal.NewFromInt(1).Add(l.InterestRate.Div(decimal.NewFromInt(100))))
}
