// Package respond holds the JSON helpers shared by the API handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kuhlali/chamapro-extend/internal/auth"
	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/investment"
	"github.com/kuhlali/chamapro-extend/internal/loan"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/payment"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

const maxBodyBytes = 1 << 20

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

var statuses = []struct {
	errs   []error
	status int
}{
	{
		errs: []error{
			user.ErrNotFound, group.ErrNotFound, group.ErrNotMember, group.ErrUnknownUser,
			loan.ErrNotFound, investment.ErrNotFound, payment.ErrNotFound,
		},
		status: http.StatusNotFound,
	},
	{
		errs:   []error{group.ErrForbidden},
		status: http.StatusForbidden,
	},
	{
		errs: []error{
			user.ErrDuplicate, group.ErrAlreadyMember, group.ErrIsOwner, group.ErrCannotRemoveCreator,
			group.ErrSlugTaken, loan.ErrInvalidTransition, loan.ErrInsufficientBalance,
			payment.ErrNoPaymentRequired,
		},
		status: http.StatusConflict,
	},
	{
		errs: []error{
			user.ErrValidation, group.ErrValidation, loan.ErrValidation,
			investment.ErrValidation, payment.ErrValidation,
		},
		status: http.StatusUnprocessableEntity,
	},
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	for _, s := range statuses {
		for _, target := range s.errs {
			if errors.Is(err, target) {
				return s.status
			}
		}
	}

	if mpesa.IsRejection(err) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Unmapped errors are logged and
// reported as an internal error.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		Message(w, status, "internal error")

		return
	}

	Message(w, status, err.Error())
}

// Decode reads a JSON request body into v.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

// UUIDParam parses a chi URL parameter. On failure it writes a 400 and
// returns false.
func UUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		Message(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}

	return id, true
}

// Caller is the authenticated user id set by auth.Tokens.Middleware.
func Caller(r *http.Request) uuid.UUID {
	id, _ := auth.UserID(r.Context())
	return id
}
