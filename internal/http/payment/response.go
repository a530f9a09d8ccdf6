package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/payment"
)

type TransactionResponse struct {
	ID                uuid.UUID       `json:"id"`
	UserID            *uuid.UUID      `json:"user_id,omitempty"`
	GroupID           *uuid.UUID      `json:"group_id,omitempty"`
	Type              payment.Type    `json:"type"`
	CheckoutRequestID string          `json:"checkout_request_id"`
	Amount            decimal.Decimal `json:"amount"`
	PhoneNumber       string          `json:"phone_number"`
	Status            payment.Status  `json:"status"`
	ReceiptNumber     string          `json:"receipt_number,omitempty"`
	Description       string          `json:"description"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
}

func ToResponse(tx *payment.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                tx.ID,
		UserID:            tx.UserID,
		GroupID:           tx.GroupID,
		Type:              tx.Type,
		CheckoutRequestID: tx.CheckoutRequestID,
		Amount:            tx.Amount,
		PhoneNumber:       tx.PhoneNumber,
		Status:            tx.Status,
		ReceiptNumber:     tx.ReceiptNumber,
		Description:       tx.Description,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func ToResponseList(txs []*payment.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}
