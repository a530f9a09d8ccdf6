package respond_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/http/respond"
	"github.com/kuhlali/chamapro-extend/internal/investment"
	"github.com/kuhlali/chamapro-extend/internal/loan"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

func TestStatusFor(t *testing.T) {
	rejected := mpesa.Result{Operation: "disbursement", Outcome: mpesa.OutcomePermanent}.Err()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"NotFound", user.ErrNotFound, http.StatusNotFound},
		{"WrappedNotFound", fmt.Errorf("getting loan: %w", loan.ErrNotFound), http.StatusNotFound},
		{"Forbidden", group.ErrForbidden, http.StatusForbidden},
		{"AlreadyMember", group.ErrAlreadyMember, http.StatusConflict},
		{"InsufficientBalance", fmt.Errorf("%w: KES 1,000.00 available", loan.ErrInsufficientBalance), http.StatusConflict},
		{"Validation", fmt.Errorf("%w: name is required", investment.ErrValidation), http.StatusUnprocessableEntity},
		{"GatewayRejection", rejected, http.StatusBadGateway},
		{"Unknown", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.StatusFor(tt.err))
		})
	}
}

func TestError_HidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups", nil)

	respond.Error(rec, req, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestError_ShowsDomainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/groups/x/members/y", nil)

	respond.Error(rec, req, group.ErrCannotRemoveCreator)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"the group creator cannot be removed"}`, rec.Body.String())
}
