package group

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
)

type groupResponse struct {
	ID                  uuid.UUID                `json:"id"`
	Name                string                   `json:"name"`
	Slug                string                   `json:"slug"`
	Description         string                   `json:"description"`
	Excerpt             string                   `json:"excerpt"`
	Frequency           group.Frequency          `json:"contribution_frequency"`
	ContributionAmount  decimal.Decimal          `json:"contribution_amount"`
	ContributionDay     *int                     `json:"contribution_day,omitempty"`
	ContributionWeekday *int                     `json:"contribution_weekday,omitempty"`
	PenaltyAmount       decimal.Decimal          `json:"penalty_amount"`
	PenaltyGraceDays    int                      `json:"penalty_grace_days"`
	County              string                   `json:"county"`
	Constituency        string                   `json:"constituency"`
	Phone               string                   `json:"phone"`
	Email               string                   `json:"email"`
	IsActive            bool                     `json:"is_active"`
	IsPublic            bool                     `json:"is_public"`
	Plan                group.Plan               `json:"subscription_plan"`
	SubscriptionStatus  group.SubscriptionStatus `json:"subscription_status"`
	SubscriptionExpiry  *time.Time               `json:"subscription_expiry,omitempty"`
	MetaTitle           string                   `json:"meta_title"`
	MetaDescription     string                   `json:"meta_description"`
	MetaKeywords        string                   `json:"meta_keywords"`
	Balance             decimal.Decimal          `json:"total_balance"`
	CreatedBy           uuid.UUID                `json:"created_by"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           *time.Time               `json:"updated_at,omitempty"`
}

type memberResponse struct {
	UserID      uuid.UUID  `json:"user_id"`
	Role        group.Role `json:"role"`
	JoinedAt    time.Time  `json:"joined_at"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	PhoneNumber string     `json:"phone_number"`
}

func toResponse(g *group.Group) groupResponse {
	resp := groupResponse{
		ID:                 g.ID,
		Name:               g.Name,
		Slug:               g.Slug,
		Description:        g.Description,
		Excerpt:            g.Excerpt,
		Frequency:          g.Frequency,
		ContributionAmount: g.ContributionAmount,
		ContributionDay:    g.ContributionDay,
		PenaltyAmount:      g.PenaltyAmount,
		PenaltyGraceDays:   g.PenaltyGraceDays,
		County:             g.County,
		Constituency:       g.Constituency,
		Phone:              g.Phone,
		Email:              g.Email,
		IsActive:           g.IsActive,
		IsPublic:           g.IsPublic,
		Plan:               g.Plan,
		SubscriptionStatus: g.SubscriptionStatus,
		SubscriptionExpiry: g.SubscriptionExpiry,
		MetaTitle:          g.MetaTitle,
		MetaDescription:    g.MetaDescription,
		MetaKeywords:       g.MetaKeywords,
		Balance:            g.Balance,
		CreatedBy:          g.CreatedBy,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}

	if g.ContributionWeekday != nil {
		resp.ContributionWeekday = new(int(*g.ContributionWeekday))
	}

	return resp
}

func toResponseList(groups []*group.Group) []groupResponse {
	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toResponse(g)
	}

	return resp
}

func toMemberResponse(m *group.Member) memberResponse {
	return memberResponse{
		UserID:      m.UserID,
		Role:        m.Role,
		JoinedAt:    m.JoinedAt,
		Username:    m.Username,
		Email:       m.Email,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		PhoneNumber: m.PhoneNumber,
	}
}
