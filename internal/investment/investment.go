package investment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound   = errors.New("investment not found")
	ErrValidation = errors.New("invalid investment")
)

type Status string

const (
	StatusActive     Status = "active"
	StatusMatured    Status = "matured"
	StatusLiquidated Status = "liquidated"
	StatusLoss       Status = "loss"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusMatured, StatusLiquidated, StatusLoss:
		return true
	}

	return false
}

type Investment struct {
	ID                   uuid.UUID
	GroupID              uuid.UUID
	Name                 string
	Amount               decimal.Decimal
	DateInvested         time.Time
	ExpectedReturnDate   *time.Time
	ExpectedReturnAmount *decimal.Decimal
	ActualReturnAmount   *decimal.Decimal
	Status               Status
	Description          string
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Gain is the realised return over the invested amount, if any has been
// recorded.
func (i *Investment) Gain() (decimal.Decimal, bool) {
	if i.ActualReturnAmount == nil {
		return decimal.Zero, false
	}

	return i.ActualReturnAmount.Sub(i.Amount), true
}
