package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/http/payment"
	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/contributions", h.contributions)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, d)
}

type contributionsResponse struct {
	Contributions []payment.TransactionResponse `json:"contributions"`
	Total         decimal.Decimal               `json:"total"`
}

func (h *Handler) contributions(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.MyContributions(r.Context(), respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, contributionsResponse{
		Contributions: payment.ToResponseList(history.Transactions),
		Total:         history.Total,
	})
}
