package group

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=group
type Repository interface {
	// CreateGroup stores g and its creator membership atomically.
	CreateGroup(ctx context.Context, g *Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*Group, error)
	ListGroupsForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error)

	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*Member, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*Member, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID, role Role) (*Member, error)
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
}

type Users interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	repo  Repository
	users Users
}

func NewService(repo Repository, users Users) *Service {
	return &Service{repo: repo, users: users}
}

type CreateParams struct {
	Name                string
	Description         string
	Excerpt             string
	Frequency           Frequency
	ContributionAmount  decimal.Decimal
	ContributionDay     *int
	ContributionWeekday *time.Weekday
	PenaltyAmount       decimal.Decimal
	PenaltyGraceDays    *int
	County              string
	Constituency        string
	Phone               string
	Email               string
	IsPublic            bool
	Plan                Plan
}

const maxSlugAttempts = 3

func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*Group, error) {
	g, err := newGroup(creatorID, params)
	if err != nil {
		return nil, err
	}

	Prepare(g)

	base := g.Slug
	for attempt := range maxSlugAttempts {
		if attempt > 0 {
			g.Slug = fmt.Sprintf("%s-%s", base, uuid.NewString()[:6])
		}

		err = s.repo.CreateGroup(ctx, g)
		if !errors.Is(err, ErrSlugTaken) {
			break
		}
	}

	if err != nil {
		return nil, err
	}

	return g, nil
}

func newGroup(creatorID uuid.UUID, p CreateParams) (*Group, error) {
	g := &Group{
		Name:               strings.TrimSpace(p.Name),
		Description:        p.Description,
		Excerpt:            p.Excerpt,
		Frequency:          p.Frequency,
		ContributionAmount: p.ContributionAmount,
		PenaltyAmount:      p.PenaltyAmount,
		PenaltyGraceDays:   DefaultGraceDays,
		County:             p.County,
		Constituency:       p.Constituency,
		Phone:              mpesa.NormalizePhone(p.Phone),
		Email:              p.Email,
		IsActive:           true,
		IsPublic:           p.IsPublic,
		Plan:               p.Plan,
		SubscriptionStatus: SubscriptionActive,
		CreatedBy:          creatorID,
	}

	if g.Frequency == "" {
		g.Frequency = FrequencyMonthly
	}

	if g.Plan == "" {
		g.Plan = PlanBasic
	}

	if p.PenaltyGraceDays != nil {
		g.PenaltyGraceDays = *p.PenaltyGraceDays
	}

	if g.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !g.ContributionAmount.IsPositive() {
		return nil, fmt.Errorf("%w: contribution amount must be positive", ErrValidation)
	}

	if g.PenaltyAmount.IsNegative() {
		return nil, fmt.Errorf("%w: penalty amount cannot be negative", ErrValidation)
	}

	if g.PenaltyGraceDays < 0 {
		return nil, fmt.Errorf("%w: grace period cannot be negative", ErrValidation)
	}

	if !g.Plan.Valid() {
		return nil, fmt.Errorf("%w: unknown plan %q", ErrValidation, p.Plan)
	}

	switch g.Frequency {
	case FrequencyMonthly:
		if p.ContributionDay == nil {
			return nil, fmt.Errorf("%w: day of the month is required", ErrValidation)
		}

		if *p.ContributionDay < 1 || *p.ContributionDay > 31 {
			return nil, fmt.Errorf("%w: day must be between 1 and 31", ErrValidation)
		}

		g.ContributionDay = p.ContributionDay
	case FrequencyWeekly:
		if p.ContributionWeekday == nil {
			return nil, fmt.Errorf("%w: day of the week is required", ErrValidation)
		}

		if *p.ContributionWeekday < time.Sunday || *p.ContributionWeekday > time.Saturday {
			return nil, fmt.Errorf("%w: invalid day of the week", ErrValidation)
		}

		g.ContributionWeekday = p.ContributionWeekday
	default:
		return nil, fmt.Errorf("%w: unknown frequency %q", ErrValidation, p.Frequency)
	}

	return g, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Group, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	return s.repo.ListGroupsForUser(ctx, userID)
}

// Detail returns the group if the user is a member or the group is public.
// isMember reports which of the two applied.
func (s *Service) Detail(ctx context.Context, userID, groupID uuid.UUID) (g *Group, isMember bool, err error) {
	g, err = s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, false, err
	}

	isMember, err = s.isMember(ctx, g, userID)
	if err != nil {
		return nil, false, err
	}

	if !isMember && !g.IsPublic {
		return nil, false, ErrForbidden
	}

	return g, isMember, nil
}

func (s *Service) Members(ctx context.Context, userID, groupID uuid.UUID) ([]*Member, error) {
	if _, err := s.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListMembers(ctx, groupID)
}

func (s *Service) Invite(ctx context.Context, actorID, groupID uuid.UUID, email string) (*Member, error) {
	g, err := s.RequireCreator(ctx, groupID, actorID)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUnknownUser
		}

		return nil, err
	}

	if u.ID == g.CreatedBy {
		return nil, ErrIsOwner
	}

	_, err = s.repo.GetMember(ctx, groupID, u.ID)
	switch {
	case err == nil:
		return nil, ErrAlreadyMember
	case !errors.Is(err, ErrNotMember):
		return nil, err
	}

	return s.repo.AddMember(ctx, groupID, u.ID, RoleMember)
}

func (s *Service) RemoveMember(ctx context.Context, actorID, groupID, memberID uuid.UUID) error {
	g, err := s.RequireCreator(ctx, groupID, actorID)
	if err != nil {
		return err
	}

	if memberID == g.CreatedBy {
		return ErrCannotRemoveCreator
	}

	return s.repo.RemoveMember(ctx, groupID, memberID)
}

// RequireMember loads the group and fails with ErrForbidden unless userID
// belongs to it.
func (s *Service) RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*Group, error) {
	g, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ok, err := s.isMember(ctx, g, userID)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrForbidden
	}

	return g, nil
}

// RequireCreator is RequireMember restricted to the group's creator.
func (s *Service) RequireCreator(ctx context.Context, groupID, userID uuid.UUID) (*Group, error) {
	g, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if g.CreatedBy != userID {
		return nil, ErrForbidden
	}

	return g, nil
}

func (s *Service) isMember(ctx context.Context, g *Group, userID uuid.UUID) (bool, error) {
	if g.CreatedBy == userID {
		return true, nil
	}

	_, err := s.repo.GetMember(ctx, g.ID, userID)
	if err != nil {
		if errors.Is(err, ErrNotMember) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
