package investment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	CreateInvestment(ctx context.Context, inv *Investment) error
	GetInvestment(ctx context.Context, groupID, id uuid.UUID) (*Investment, error)
	ListInvestments(ctx context.Context, groupID uuid.UUID) ([]*Investment, error)
	UpdateInvestment(ctx context.Context, inv *Investment) error
	DeleteInvestment(ctx context.Context, groupID, id uuid.UUID) error
}

type Groups interface {
	RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
	RequireCreator(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
}

type Service struct {
	repo   Repository
	groups Groups
	now    func() time.Time
}

func NewService(repo Repository, groups Groups) *Service {
	return &Service{repo: repo, groups: groups, now: time.Now}
}

type CreateParams struct {
	Name                 string
	Amount               decimal.Decimal
	DateInvested         time.Time
	ExpectedReturnDate   *time.Time
	ExpectedReturnAmount *decimal.Decimal
	Description          string
}

// Update carries the fields to change; nil fields are left alone.
type Update struct {
	Name                 *string
	Amount               *decimal.Decimal
	DateInvested         *time.Time
	ExpectedReturnDate   *time.Time
	ExpectedReturnAmount *decimal.Decimal
	ActualReturnAmount   *decimal.Decimal
	Status               *Status
	Description          *string
}

func (s *Service) List(ctx context.Context, groupID, userID uuid.UUID) ([]*Investment, error) {
	if _, err := s.groups.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return s.repo.ListInvestments(ctx, groupID)
}

func (s *Service) Get(ctx context.Context, groupID, id, userID uuid.UUID) (*Investment, error) {
	if _, err := s.groups.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	return s.repo.GetInvestment(ctx, groupID, id)
}

func (s *Service) Create(ctx context.Context, groupID, actorID uuid.UUID, params CreateParams) (*Investment, error) {
	if _, err := s.groups.RequireCreator(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	inv := &Investment{
		GroupID:              groupID,
		Name:                 strings.TrimSpace(params.Name),
		Amount:               params.Amount,
		DateInvested:         params.DateInvested,
		ExpectedReturnDate:   params.ExpectedReturnDate,
		ExpectedReturnAmount: params.ExpectedReturnAmount,
		Status:               StatusActive,
		Description:          params.Description,
	}

	if inv.DateInvested.IsZero() {
		inv.DateInvested = s.now()
	}

	if err := validate(inv); err != nil {
		return nil, err
	}

	if err := s.repo.CreateInvestment(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Update(ctx context.Context, groupID, id, actorID uuid.UUID, upd Update) (*Investment, error) {
	if _, err := s.groups.RequireCreator(ctx, groupID, actorID); err != nil {
		return nil, err
	}

	inv, err := s.repo.GetInvestment(ctx, groupID, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		inv.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Amount != nil {
		inv.Amount = *upd.Amount
	}
	if upd.DateInvested != nil {
		inv.DateInvested = *upd.DateInvested
	}
	if upd.ExpectedReturnDate != nil {
		inv.ExpectedReturnDate = upd.ExpectedReturnDate
	}
	if upd.ExpectedReturnAmount != nil {
		inv.ExpectedReturnAmount = upd.ExpectedReturnAmount
	}
	if upd.ActualReturnAmount != nil {
		inv.ActualReturnAmount = upd.ActualReturnAmount
	}
	if upd.Status != nil {
		inv.Status = *upd.Status
	}
	if upd.Description != nil {
		inv.Description = *upd.Description
	}

	if err := validate(inv); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInvestment(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Delete(ctx context.Context, groupID, id, actorID uuid.UUID) error {
	if _, err := s.groups.RequireCreator(ctx, groupID, actorID); err != nil {
		return err
	}

	return s.repo.DeleteInvestment(ctx, groupID, id)
}

func validate(inv *Investment) error {
	if inv.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if !inv.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	if !inv.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, inv.Status)
	}

	if inv.ExpectedReturnDate != nil && inv.ExpectedReturnDate.Before(inv.DateInvested) {
		return fmt.Errorf("%w: expected return date is before the investment date", ErrValidation)
	}

	return nil
}
