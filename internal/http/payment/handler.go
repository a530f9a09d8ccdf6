package payment

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/payment"
	"github.com/kuhlali/chamapro-extend/internal/report"
)

const maxCallbackBytes = 64 << 10

type Handler struct {
	svc     *payment.Service
	reports *report.Service
}

func NewHandler(svc *payment.Service, reports *report.Service) *Handler {
	return &Handler{svc: svc, reports: reports}
}

// CallbackRoutes are the public endpoints the gateway posts results to.
func (h *Handler) CallbackRoutes(r chi.Router) {
	for _, p := range []string{"/callback", "/callback/"} {
		r.Post(p, h.callback)
	}

	for _, p := range []string{"/b2c/result", "/b2c/result/"} {
		r.Post(p, h.disbursementResult)
	}

	for _, p := range []string{"/b2c/timeout", "/b2c/timeout/"} {
		r.Post(p, h.disbursementTimeout)
	}
}

// ContributionRoutes expects a {groupID} URL parameter.
func (h *Handler) ContributionRoutes(r chi.Router) {
	r.Get("/", h.listContributions)
	r.Get("/due", h.due)
	r.Post("/", h.contribute)
}

// SubscriptionRoutes expects a {groupID} URL parameter.
func (h *Handler) SubscriptionRoutes(r chi.Router) {
	r.Post("/", h.subscribe)
}

func ack(w http.ResponseWriter) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, maxCallbackBytes))
}

// callback acknowledges every well-formed callback, even when reconciling
// it fails; the gateway does not act on our errors.
func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"status": "error"})
		return
	}

	cb, err := payment.ParseCallback(body)
	if err != nil {
		slog.Warn("malformed payment callback", "error", err)
		respond.JSON(w, http.StatusBadRequest, map[string]string{"status": "error"})

		return
	}

	result, err := h.svc.Reconcile(r.Context(), cb)
	if err != nil {
		slog.Error("failed to reconcile callback", "checkout_request_id", cb.CheckoutRequestID, "error", err)
	} else {
		slog.Debug("callback reconciled", "checkout_request_id", cb.CheckoutRequestID, "result", result)
	}

	ack(w)
}

func (h *Handler) disbursementResult(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		ack(w)
		return
	}

	res, err := payment.ParseDisbursementResult(body)
	if err != nil {
		slog.Warn("malformed disbursement result", "error", err)
		ack(w)

		return
	}

	h.svc.RecordDisbursement(r.Context(), res)
	ack(w)
}

func (h *Handler) disbursementTimeout(w http.ResponseWriter, r *http.Request) {
	body, _ := readBody(r)
	slog.Warn("disbursement timed out at gateway", "body", string(body))

	ack(w)
}

type contributionsResponse struct {
	Members       []memberTotalResponse `json:"members"`
	Contributions []TransactionResponse `json:"contributions"`
	Total         decimal.Decimal       `json:"total"`
}

type memberTotalResponse struct {
	UserID    uuid.UUID       `json:"user_id"`
	Username  string          `json:"username"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Total     decimal.Decimal `json:"total"`
}

func (h *Handler) listContributions(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	gc, err := h.reports.GroupContributions(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := contributionsResponse{
		Members:       make([]memberTotalResponse, len(gc.Members)),
		Contributions: ToResponseList(gc.Contributions),
		Total:         gc.Total,
	}

	for i, m := range gc.Members {
		resp.Members[i] = memberTotalResponse{
			UserID:    m.UserID,
			Username:  m.Username,
			FirstName: m.FirstName,
			LastName:  m.LastName,
			Total:     m.Total,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type penaltyResponse struct {
	ID     uuid.UUID       `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

type dueResponse struct {
	Contribution decimal.Decimal   `json:"contribution"`
	Penalties    []penaltyResponse `json:"penalties"`
	PenaltyTotal decimal.Decimal   `json:"penalty_total"`
	Total        decimal.Decimal   `json:"total"`
}

func (h *Handler) due(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	due, err := h.svc.Due(r.Context(), groupID, respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := dueResponse{
		Contribution: due.Contribution,
		Penalties:    make([]penaltyResponse, len(due.Penalties)),
		PenaltyTotal: due.PenaltyTotal,
		Total:        due.Total,
	}

	for i, p := range due.Penalties {
		resp.Penalties[i] = penaltyResponse{ID: p.ID, Amount: p.Amount, Reason: p.Reason}
	}

	respond.JSON(w, http.StatusOK, resp)
}

type contributeRequest struct {
	Phone  string           `json:"phone_number"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	var req contributeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.svc.InitiateContribution(r.Context(), payment.ContributionParams{
		GroupID: groupID,
		UserID:  respond.Caller(r),
		Phone:   req.Phone,
		Amount:  req.Amount,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, ToResponse(tx))
}

type subscribeRequest struct {
	Phone string `json:"phone_number"`
}

func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	var req subscribeRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	tx, err := h.svc.InitiateSubscription(r.Context(), payment.SubscriptionParams{
		GroupID: groupID,
		UserID:  respond.Caller(r),
		Phone:   req.Phone,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusAccepted, ToResponse(tx))
}
