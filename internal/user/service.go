package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/kuhlali/chamapro-extend/internal/mpesa"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	UpdateUser(ctx context.Context, u *User) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*User, error) {
	u := &User{
		Username:    strings.TrimSpace(params.Username),
		Email:       strings.ToLower(strings.TrimSpace(params.Email)),
		FirstName:   strings.TrimSpace(params.FirstName),
		LastName:    strings.TrimSpace(params.LastName),
		PhoneNumber: mpesa.NormalizePhone(params.PhoneNumber),
	}

	if u.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return nil, fmt.Errorf("%w: email %q is not valid", ErrValidation, params.Email)
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GetByPhone looks a user up by phone, accepting local (07...) numbers.
func (s *Service) GetByPhone(ctx context.Context, phone string) (*User, error) {
	return s.repo.GetUserByPhone(ctx, mpesa.NormalizePhone(phone))
}

type ProfileUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		u.FirstName = strings.TrimSpace(*upd.FirstName)
	}

	if upd.LastName != nil {
		u.LastName = strings.TrimSpace(*upd.LastName)
	}

	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: email %q is not valid", ErrValidation, *upd.Email)
		}

		u.Email = email
	}

	if upd.PhoneNumber != nil {
		u.PhoneNumber = mpesa.NormalizePhone(*upd.PhoneNumber)
	}

	if err := s.repo.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
