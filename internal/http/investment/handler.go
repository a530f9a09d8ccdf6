package investment

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/investment"
)

type Handler struct {
	svc *investment.Service
}

func NewHandler(svc *investment.Service) *Handler {
	return &Handler{svc: svc}
}

// Routes expects a {groupID} URL parameter.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{investmentID}", h.get)
	r.Patch("/{investmentID}", h.update)
	r.Delete("/{investmentID}", h.delete)
}

type investmentResponse struct {
	ID                   uuid.UUID         `json:"id"`
	GroupID              uuid.UUID         `json:"group_id"`
	Name                 string            `json:"name"`
	Amount               decimal.Decimal   `json:"amount"`
	DateInvested         time.Time         `json:"date_invested"`
	ExpectedReturnDate   *time.Time        `json:"expected_return_date,omitempty"`
	ExpectedReturnAmount *decimal.Decimal  `json:"expected_return_amount,omitempty"`
	ActualReturnAmount   *decimal.Decimal  `json:"actual_return_amount,omitempty"`
	Status               investment.Status `json:"status"`
	Description          string            `json:"description"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            *time.Time        `json:"updated_at,omitempty"`
}

func toResponse(inv *investment.Investment) investmentResponse {
	return investmentResponse{
		ID:                   inv.ID,
		GroupID:              inv.GroupID,
		Name:                 inv.Name,
		Amount:               inv.Amount,
		DateInvested:         inv.DateInvested,
		ExpectedReturnDate:   inv.ExpectedReturnDate,
		ExpectedReturnAmount: inv.ExpectedReturnAmount,
		ActualReturnAmount:   inv.ActualReturnAmount,
		Status:               inv.Status,
		Description:          inv.Description,
		CreatedAt:            inv.CreatedAt,
		UpdatedAt:            inv.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	investments, err := h.svc.List(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]investmentResponse, len(investments))
	for i, inv := range investments {
		resp[i] = toResponse(inv)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "investmentID")
	if !ok {
		return
	}

	inv, err := h.svc.Get(r.Context(), groupID, id, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

type createInvestmentRequest struct {
	Name                 string           `json:"name"`
	Amount               decimal.Decimal  `json:"amount"`
	DateInvested         time.Time        `json:"date_invested"`
	ExpectedReturnDate   *time.Time       `json:"expected_return_date,omitempty"`
	ExpectedReturnAmount *decimal.Decimal `json:"expected_return_amount,omitempty"`
	Description          string           `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	var req createInvestmentRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Create(r.Context(), groupID, respond.Caller(r), investment.CreateParams{
		Name:                 req.Name,
		Amount:               req.Amount,
		DateInvested:         req.DateInvested,
		ExpectedReturnDate:   req.ExpectedReturnDate,
		ExpectedReturnAmount: req.ExpectedReturnAmount,
		Description:          req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(inv))
}

type updateInvestmentRequest struct {
	Name                 *string            `json:"name,omitempty"`
	Amount               *decimal.Decimal   `json:"amount,omitempty"`
	DateInvested         *time.Time         `json:"date_invested,omitempty"`
	ExpectedReturnDate   *time.Time         `json:"expected_return_date,omitempty"`
	ExpectedReturnAmount *decimal.Decimal   `json:"expected_return_amount,omitempty"`
	ActualReturnAmount   *decimal.Decimal   `json:"actual_return_amount,omitempty"`
	Status               *investment.Status `json:"status,omitempty"`
	Description          *string            `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "investmentID")
	if !ok {
		return
	}

	var req updateInvestmentRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := h.svc.Update(r.Context(), groupID, id, respond.Caller(r), investment.Update(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	id, ok := respond.UUIDParam(w, r, "investmentID")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), groupID, id, respond.Caller(r)); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
