package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/http/payment"
	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/report"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

type Handler struct {
	users   *user.Service
	reports *report.Service
}

func NewHandler(users *user.Service, reports *report.Service) *Handler {
	return &Handler{users: users, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Patch("/", h.update)
	r.Get("/profile", h.profile)
}

type userResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	FullName    string     `json:"full_name"`
	PhoneNumber string     `json:"phone_number"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(u *user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		PhoneNumber: u.PhoneNumber,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Get(r.Context(), respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

type updateRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), respond.Caller(r), user.ProfileUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(u))
}

type profileResponse struct {
	User             userResponse                  `json:"user"`
	TotalContributed decimal.Decimal               `json:"total_contributed"`
	GroupCount       int                           `json:"group_count"`
	Recent           []payment.TransactionResponse `json:"recent_transactions"`
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	caller := respond.Caller(r)

	u, err := h.users.Get(r.Context(), caller)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	p, err := h.reports.Profile(r.Context(), caller)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := profileResponse{
		User:             toResponse(u),
		TotalContributed: p.TotalContributed,
		GroupCount:       p.GroupCount,
		Recent:           payment.ToResponseList(p.Recent),
	}

	respond.JSON(w, http.StatusOK, resp)
}
