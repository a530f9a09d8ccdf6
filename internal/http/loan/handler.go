package loan

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/loan"
)

type Handler struct {
	svc *loan.Service
}

func NewHandler(svc *loan.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects a {groupID} URL parameter.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.request)
	r.Post("/{loanID}/approve", h.approve)
	r.Post("/{loanID}/reject", h.reject)
}

type loanResponse struct {
	ID              uuid.UUID       `json:"id"`
	GroupID         uuid.UUID       `json:"group_id"`
	BorrowerID      uuid.UUID       `json:"borrower_id"`
	Amount          decimal.Decimal `json:"amount"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	DurationMonths  int             `json:"duration_months"`
	TotalRepayment  decimal.Decimal `json:"total_repayment"`
	Status          loan.Status     `json:"status"`
	RequestedAt     time.Time       `json:"requested_at"`
	ActionAt        *time.Time      `json:"action_at,omitempty"`
	ActionBy        *uuid.UUID      `json:"action_by,omitempty"`
	RepaymentDate   *time.Time      `json:"repayment_date,omitempty"`
	DisbursementRef string          `json:"disbursement_ref,omitempty"`
}

func toResponse(l *loan.Loan) loanResponse {
	return loanResponse{
		ID:              l.ID,
		GroupID:         l.GroupID,
		BorrowerID:      l.BorrowerID,
		Amount:          l.Amount,
		InterestRate:    l.InterestRate,
		DurationMonths:  l.DurationMonths,
		TotalRepayment:  l.TotalRepayment(),
		Status:          l.Status,
		RequestedAt:     l.RequestedAt,
		ActionAt:        l.ActionAt,
		ActionBy:        l.ActionBy,
		RepaymentDate:   l.RepaymentDate,
		DisbursementRef: l.DisbursementRef,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	loans, err := h.svc.List(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type requestLoanRequest struct {
	Amount         decimal.Decimal  `json:"amount"`
	InterestRate   *decimal.Decimal `json:"interest_rate,omitempty"`
	DurationMonths int              `json:"duration_months"`
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	var req requestLoanRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	l, err := h.svc.Request(r.Context(), loan.RequestParams{
		GroupID:        groupID,
		BorrowerID:     respond.Caller(r),
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(l))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.svc.Approve)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.svc.Reject)
}

type action func(ctx context.Context, groupID, loanID, actorID uuid.UUID) (*loan.Loan, error)

func (h *Handler) act(w http.ResponseWriter, r *http.Request, do action) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	loanID, ok := respond.UUIDParam(w, r, "loanID")
	if !ok {
		return
	}

	l, err := do(r.Context(), groupID, loanID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l))
}
