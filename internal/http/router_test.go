package http_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kuhlali/chamapro-extend/internal/auth"
	"github.com/kuhlali/chamapro-extend/internal/contribution"
	"github.com/kuhlali/chamapro-extend/internal/export"
	"github.com/kuhlali/chamapro-extend/internal/group"
	apihttp "github.com/kuhlali/chamapro-extend/internal/http"
	httpexport "github.com/kuhlali/chamapro-extend/internal/http/export"
	httpgroup "github.com/kuhlali/chamapro-extend/internal/http/group"
	httpinvestment "github.com/kuhlali/chamapro-extend/internal/http/investment"
	httploan "github.com/kuhlali/chamapro-extend/internal/http/loan"
	httppayment "github.com/kuhlali/chamapro-extend/internal/http/payment"
	httpreport "github.com/kuhlali/chamapro-extend/internal/http/report"
	httpuser "github.com/kuhlali/chamapro-extend/internal/http/user"
	"github.com/kuhlali/chamapro-extend/internal/investment"
	"github.com/kuhlali/chamapro-extend/internal/loan"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/payment"
	"github.com/kuhlali/chamapro-extend/internal/report"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

type server struct {
	handler http.Handler
	tokens  *auth.Tokens

	users       *user.MockRepository
	groups      *group.MockRepository
	payments    *payment.MockRepository
	settlement  *payment.MockSettlementTx
	payGroups   *payment.MockGroups
	payEngine   *payment.MockEngine
	payUsers    *payment.MockUsers
	payGateway  *payment.MockGateway
	loans       *loan.MockRepository
	loanTx      *loan.MockDisbursementTx
	loanGroups  *loan.MockGroups
	loanGateway *loan.MockGateway
	investments *investment.MockRepository
	invGroups   *investment.MockGroups
	reports     *report.MockRepository
	repGroups   *report.MockGroups
}

func newServer(t *testing.T) *server {
	t.Helper()

	ctrl := gomock.NewController(t)

	s := &server{
		tokens:      auth.NewTokens("test-secret", time.Hour),
		users:       user.NewMockRepository(ctrl),
		groups:      group.NewMockRepository(ctrl),
		payments:    payment.NewMockRepository(ctrl),
		settlement:  payment.NewMockSettlementTx(ctrl),
		payGroups:   payment.NewMockGroups(ctrl),
		payEngine:   payment.NewMockEngine(ctrl),
		payUsers:    payment.NewMockUsers(ctrl),
		payGateway:  payment.NewMockGateway(ctrl),
		loans:       loan.NewMockRepository(ctrl),
		loanTx:      loan.NewMockDisbursementTx(ctrl),
		loanGroups:  loan.NewMockGroups(ctrl),
		loanGateway: loan.NewMockGateway(ctrl),
		investments: investment.NewMockRepository(ctrl),
		invGroups:   investment.NewMockGroups(ctrl),
		reports:     report.NewMockRepository(ctrl),
		repGroups:   report.NewMockGroups(ctrl),
	}

	userSvc := user.NewService(s.users)
	groupSvc := group.NewService(s.groups, group.NewMockUsers(ctrl))
	reportSvc := report.NewService(s.reports, s.repGroups)
	paymentSvc := payment.NewService(s.payments, s.payGroups, s.payEngine, s.payUsers, s.payGateway)
	loanSvc := loan.NewService(s.loans, s.loanGroups, loan.NewMockUsers(ctrl), s.loanGateway)
	investmentSvc := investment.NewService(s.investments, s.invGroups)

	s.handler = apihttp.New(apihttp.Handlers{
		Users:       httpuser.NewHandler(userSvc, reportSvc),
		Groups:      httpgroup.NewHandler(groupSvc),
		Payments:    httppayment.NewHandler(paymentSvc, reportSvc),
		Loans:       httploan.NewHandler(loanSvc),
		Investments: httpinvestment.NewHandler(investmentSvc),
		Reports:     httpreport.NewHandler(reportSvc),
		Statements:  httpexport.NewHandler(export.NewService(reportSvc)),
	}, apihttp.Options{
		AllowedOrigins: []string{"*"},
		Authenticate:   s.tokens.Middleware,
	})

	return s
}

func (s *server) do(t *testing.T, method, path, body string, caller *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if caller != nil {
		token, err := s.tokens.Issue(*caller)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func TestRouter_Healthz(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_APIRequiresToken(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/groups", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCallback(t *testing.T) {
	const unknownCallback = `{"Body":{"stkCallback":{
		"MerchantRequestID":"1","CheckoutRequestID":"ws_CO_missing","ResultCode":0,"ResultDesc":"ok"}}}`

	tests := []struct {
		name      string
		path      string
		body      string
		setupMock func(s *server)
		wantCode  int
		wantBody  string
	}{
		{
			name:     "Malformed",
			path:     "/payments/callback/",
			body:     `{"Body":`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error"}`,
		},
		{
			name:     "MissingCheckoutID",
			path:     "/payments/callback/",
			body:     `{"Body":{"stkCallback":{"ResultCode":0}}}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error"}`,
		},
		{
			name:     "MissingResultCode",
			path:     "/payments/callback/",
			body:     `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultDesc":"?"}}}`,
			wantCode: http.StatusBadRequest,
			wantBody: `{"status":"error"}`,
		},
		{
			name: "UnknownTransaction",
			path: "/payments/callback/",
			body: unknownCallback,
			setupMock: func(s *server) {
				s.payments.EXPECT().BeginSettlement(gomock.Any()).Return(s.settlement, nil)
				s.settlement.EXPECT().LockTransaction(gomock.Any(), "ws_CO_missing").Return(nil, payment.ErrNotFound)
				s.settlement.EXPECT().Rollback().Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
		{
			name: "ReconcileErrorStillAcknowledged",
			path: "/payments/callback",
			body: unknownCallback,
			setupMock: func(s *server) {
				s.payments.EXPECT().BeginSettlement(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
		{
			name: "DisbursementResult",
			path: "/payments/b2c/result/",
			body: `{"Result":{"ResultType":0,"ResultCode":0,"ResultDesc":"ok",
				"ConversationID":"AG_1","TransactionID":"NLJ41HAY6Q"}}`,
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
		{
			name:     "DisbursementTimeout",
			path:     "/payments/b2c/timeout/",
			body:     `{}`,
			wantCode: http.StatusOK,
			wantBody: `{"status":"ok"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(t)
			if tt.setupMock != nil {
				tt.setupMock(s)
			}

			rec := s.do(t, http.MethodPost, tt.path, tt.body, nil)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestGroups_Get(t *testing.T) {
	caller := uuid.New()
	groupID := uuid.New()

	t.Run("InvalidID", func(t *testing.T) {
		s := newServer(t)

		rec := s.do(t, http.MethodGet, "/api/v1/groups/not-a-uuid", "", &caller)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		s := newServer(t)
		s.groups.EXPECT().GetGroup(gomock.Any(), groupID).Return(nil, group.ErrNotFound)

		rec := s.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String(), "", &caller)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Creator", func(t *testing.T) {
		s := newServer(t)
		s.groups.EXPECT().GetGroup(gomock.Any(), groupID).Return(&group.Group{
			ID:                 groupID,
			Name:               "Umoja",
			ContributionAmount: decimal.NewFromInt(1000),
			CreatedBy:          caller,
		}, nil)

		rec := s.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String(), "", &caller)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"is_member":true`)
		assert.Contains(t, rec.Body.String(), `"contribution_amount":"1000"`)
	})
}

func TestContributions_GatewayRejection(t *testing.T) {
	caller := uuid.New()
	g := &group.Group{ID: uuid.New(), Name: "Umoja"}

	s := newServer(t)
	s.payGroups.EXPECT().RequireMember(gomock.Any(), g.ID, caller).Return(g, nil)
	s.payEngine.EXPECT().Prepare(gomock.Any(), g, caller).Return(&contribution.Due{Total: decimal.NewFromInt(1000)}, nil)
	s.payUsers.EXPECT().GetByPhone(gomock.Any(), "254712345678").Return(nil, user.ErrNotFound)
	s.payGateway.EXPECT().RequestCollection(gomock.Any(), gomock.Any()).Return(mpesa.Result{
		Operation:   "collection",
		Outcome:     mpesa.OutcomeTransient,
		Description: "System busy",
	})

	rec := s.do(t, http.MethodPost, "/api/v1/groups/"+g.ID.String()+"/contributions",
		`{"phone_number":"0712345678"}`, &caller)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestLoans_ApproveInsufficientBalance(t *testing.T) {
	creator := uuid.New()
	groupID, loanID := uuid.New(), uuid.New()

	s := newServer(t)
	s.loanGroups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID}, nil)
	s.loans.EXPECT().BeginDisbursement(gomock.Any()).Return(s.loanTx, nil)
	s.loanTx.EXPECT().LockGroupBalance(gomock.Any(), groupID).Return(decimal.NewFromInt(1000), nil)
	s.loanTx.EXPECT().LockLoan(gomock.Any(), groupID, loanID).Return(&loan.Loan{
		ID: loanID, GroupID: groupID, Amount: decimal.NewFromInt(1500), Status: loan.StatusPending,
	}, nil)
	s.loanTx.EXPECT().Rollback().Return(nil)

	rec := s.do(t, http.MethodPost,
		"/api/v1/groups/"+groupID.String()+"/loans/"+loanID.String()+"/approve", "", &creator)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient group balance")
}

func TestInvestments_CreateValidation(t *testing.T) {
	creator := uuid.New()
	groupID := uuid.New()

	s := newServer(t)
	s.invGroups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID}, nil)

	rec := s.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/investments",
		`{"name":"","amount":"100"}`, &creator)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReports_Dashboard(t *testing.T) {
	caller := uuid.New()

	s := newServer(t)
	s.reports.EXPECT().MonthlyContributionTotals(gomock.Any(), caller, gomock.Any()).Return([]report.MonthTotal{
		{Month: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(2000)},
	}, nil)
	s.reports.EXPECT().StatusCounts(gomock.Any(), caller).Return([]report.StatusCount{
		{Status: payment.StatusSuccess, Count: 2},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/reports/dashboard", "", &caller)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"trend": {"labels": ["May 2024"], "data": ["2000"]},
		"distribution": {"labels": ["success"], "data": [2]}
	}`, rec.Body.String())
}

func TestMe_Get(t *testing.T) {
	caller := uuid.New()

	s := newServer(t)
	s.users.EXPECT().GetUser(gomock.Any(), caller).Return(&user.User{
		ID: caller, Username: "akinyi", FirstName: "Akinyi", LastName: "Odhiambo",
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/me", "", &caller)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"full_name":"Akinyi Odhiambo"`)
}

func TestStatement_Download(t *testing.T) {
	s := newServer(t)
	caller, groupID := uuid.New(), uuid.New()

	s.repGroups.EXPECT().RequireMember(gomock.Any(), groupID, caller).Return(&group.Group{ID: groupID}, nil)
	s.reports.EXPECT().MemberTotals(gomock.Any(), groupID).Return([]report.MemberTotal{
		{UserID: caller, Username: "akinyi", Total: decimal.NewFromInt(500)},
	}, nil)
	s.reports.EXPECT().ListGroupContributions(gomock.Any(), groupID).Return([]*payment.Transaction{
		{
			UserID:        &caller,
			Amount:        decimal.NewFromInt(500),
			Status:        payment.StatusSuccess,
			PhoneNumber:   "254712345678",
			ReceiptNumber: "NLJ7RT61SV",
			CreatedAt:     time.Date(2024, 2, 5, 8, 0, 0, 0, time.UTC),
		},
	}, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String()+"/statement/download", "", &caller)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)
	assert.Equal(t, "contributions.csv", zr.File[0].Name)

	f, err := zr.File[0].Open()
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-02-05,akinyi,254712345678,NLJ7RT61SV,500.00")
}

func TestStatement_NotMember(t *testing.T) {
	s := newServer(t)
	caller, groupID := uuid.New(), uuid.New()

	s.repGroups.EXPECT().RequireMember(gomock.Any(), groupID, caller).Return(nil, group.ErrNotMember)

	rec := s.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String()+"/statement", "", &caller)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
