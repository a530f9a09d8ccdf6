package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrValidation        = errors.New("invalid payment")
	ErrNoPaymentRequired = errors.New("plan does not require payment")
	ErrMalformedCallback = errors.New("malformed callback")
)

// Type is what a payment is for.
type Type string

const (
	TypeContribution Type = "contribution"
	TypeSubscription Type = "subscription"
)

// Status is pending until the gateway calls back, then success or failed.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Transaction is one collection request sent to the gateway.
type Transaction struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	GroupID           *uuid.UUID
	Type              Type
	MerchantRequestID string
	CheckoutRequestID string // correlates the later callback
	Amount            decimal.Decimal
	PhoneNumber       string
	Status            Status
	Fee               decimal.Decimal
	ReceiptNumber     string
	Description       string
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}
