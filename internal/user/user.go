package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrDuplicate  = errors.New("username or email already taken")
	ErrValidation = errors.New("invalid user")
)

// User is a person who can belong to chamas.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	FirstName   string
	LastName    string
	PhoneNumber string // 254XXXXXXXXX
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// DisplayName prefers the full name and falls back to the username.
func (u *User) DisplayName() string {
	if name := u.FullName(); name != "" {
		return name
	}

	return u.Username
}
