package group

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("group not found")
	ErrForbidden           = errors.New("not allowed for this group")
	ErrValidation          = errors.New("invalid group")
	ErrNotMember           = errors.New("user is not a member of this group")
	ErrAlreadyMember       = errors.New("user is already a member")
	ErrIsOwner             = errors.New("user already owns this group")
	ErrUnknownUser         = errors.New("no user with that email")
	ErrCannotRemoveCreator = errors.New("the group creator cannot be removed")
	ErrSlugTaken           = errors.New("slug already in use")
)

type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyWeekly  Frequency = "weekly"
)

type Plan string

const (
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

var planPrices = map[Plan]decimal.Decimal{
	PlanStandard: decimal.NewFromInt(500),
	PlanPremium:  decimal.NewFromInt(1200),
}

// Price returns the monthly subscription price. The basic plan is free.
func (p Plan) Price() (decimal.Decimal, bool) {
	price, ok := planPrices[p]
	return price, ok
}

func (p Plan) Valid() bool {
	return p == PlanBasic || p == PlanStandard || p == PlanPremium
}

type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
)

type Role string

const (
	RoleCreator Role = "creator"
	RoleMember  Role = "member"
)

const (
	DefaultGraceDays   = 7
	SubscriptionPeriod = 30 * 24 * time.Hour
)

// Group is a chama. Balance is credited by settled contributions and
// debited by disbursed loans; nothing else writes it.
type Group struct {
	ID                  uuid.UUID
	Name                string
	Slug                string
	Description         string
	Excerpt             string
	Frequency           Frequency
	ContributionAmount  decimal.Decimal
	ContributionDay     *int
	ContributionWeekday *time.Weekday
	PenaltyAmount       decimal.Decimal
	PenaltyGraceDays    int
	County              string
	Constituency        string
	Phone               string
	Email               string
	IsActive            bool
	IsPublic            bool
	Plan                Plan
	SubscriptionStatus  SubscriptionStatus
	SubscriptionExpiry  *time.Time
	MetaTitle           string
	MetaDescription     string
	MetaKeywords        string
	Balance             decimal.Decimal
	CreatedBy           uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           *time.Time
}

// Member is a membership row joined with the member's user fields.
type Member struct {
	GroupID     uuid.UUID
	UserID      uuid.UUID
	Role        Role
	JoinedAt    time.Time
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

// ExtendSubscription returns the new expiry after one paid period.
func ExtendSubscription(current *time.Time, now time.Time) time.Time {
	start := now
	if current != nil && current.After(now) {
		start = *current
	}

	return start.Add(SubscriptionPeriod)
}
