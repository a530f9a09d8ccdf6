package group

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/http/respond"
)

type Handler struct {
	svc *group.Service
}

func NewHandler(svc *group.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{groupID}", h.get)
	r.Get("/{groupID}/members", h.members)
	r.Post("/{groupID}/members", h.invite)
	r.Delete("/{groupID}/members/{userID}", h.removeMember)
}

type createGroupRequest struct {
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Excerpt             string          `json:"excerpt"`
	Frequency           group.Frequency `json:"contribution_frequency"`
	ContributionAmount  decimal.Decimal `json:"contribution_amount"`
	ContributionDay     *int            `json:"contribution_day,omitempty"`
	ContributionWeekday *int            `json:"contribution_weekday,omitempty"`
	PenaltyAmount       decimal.Decimal `json:"penalty_amount"`
	PenaltyGraceDays    *int            `json:"penalty_grace_days,omitempty"`
	County              string          `json:"county"`
	Constituency        string          `json:"constituency"`
	Phone               string          `json:"phone"`
	Email               string          `json:"email"`
	IsPublic            bool            `json:"is_public"`
	Plan                group.Plan      `json:"subscription_plan"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	params := group.CreateParams{
		Name:               req.Name,
		Description:        req.Description,
		Excerpt:            req.Excerpt,
		Frequency:          req.Frequency,
		ContributionAmount: req.ContributionAmount,
		ContributionDay:    req.ContributionDay,
		PenaltyAmount:      req.PenaltyAmount,
		PenaltyGraceDays:   req.PenaltyGraceDays,
		County:             req.County,
		Constituency:       req.Constituency,
		Phone:              req.Phone,
		Email:              req.Email,
		IsPublic:           req.IsPublic,
		Plan:               req.Plan,
	}

	if req.ContributionWeekday != nil {
		params.ContributionWeekday = new(time.Weekday(*req.ContributionWeekday))
	}

	g, err := h.svc.Create(r.Context(), respond.Caller(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListForUser(r.Context(), respond.Caller(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(groups))
}

type detailResponse struct {
	groupResponse
	IsMember bool `json:"is_member"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	g, isMember, err := h.svc.Detail(r.Context(), respond.Caller(r), groupID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, detailResponse{groupResponse: toResponse(g), IsMember: isMember})
}

func (h *Handler) members(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	members, err := h.svc.Members(r.Context(), respond.Caller(r), groupID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type inviteRequest struct {
	Email string `json:"email"`
}

func (h *Handler) invite(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	var req inviteRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.svc.Invite(r.Context(), respond.Caller(r), groupID, req.Email)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toMemberResponse(m))
}

func (h *Handler) removeMember(w http.ResponseWriter, r *http.Request) {
	groupID, ok := respond.UUIDParam(w, r, "groupID")
	if !ok {
		return
	}

	memberID, ok := respond.UUIDParam(w, r, "userID")
	if !ok {
		return
	}

	if err := h.svc.RemoveMember(r.Context(), respond.Caller(r), groupID, memberID); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
