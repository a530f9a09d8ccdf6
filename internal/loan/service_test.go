package loan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/loan"
	"github.com/kuhlali/chamapro-extend/internal/mpesa"
	"github.com/kuhlali/chamapro-extend/internal/user"
)

var approvedAt = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

type mocks struct {
	repo    *loan.MockRepository
	tx      *loan.MockDisbursementTx
	groups  *loan.MockGroups
	users   *loan.MockUsers
	gateway *loan.MockGateway
}

func newMocks(ctrl *gomock.Controller) mocks {
	return mocks{
		repo:    loan.NewMockRepository(ctrl),
		tx:      loan.NewMockDisbursementTx(ctrl),
		groups:  loan.NewMockGroups(ctrl),
		users:   loan.NewMockUsers(ctrl),
		gateway: loan.NewMockGateway(ctrl),
	}
}

func (m mocks) service() *loan.Service {
	return loan.NewService(m.repo, m.groups, m.users, m.gateway,
		loan.WithClock(func() time.Time { return approvedAt }))
}

func TestService_Request(t *testing.T) {
	groupID := uuid.New()
	borrower := uuid.New()

	tests := []struct {
		name      string
		params    loan.RequestParams
		setupMock func(m mocks)
		wantErr   error
		check     func(t *testing.T, l *loan.Loan)
	}{
		{
			name:   "Defaults",
			params: loan.RequestParams{GroupID: groupID, BorrowerID: borrower, Amount: decimal.NewFromInt(1500)},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(&group.Group{ID: groupID}, nil)
				m.repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, l *loan.Loan) {
				assert.Equal(t, loan.StatusPending, l.Status)
				assert.True(t, l.InterestRate.Equal(decimal.NewFromInt(10)))
				assert.Equal(t, 1, l.DurationMonths)
			},
		},
		{
			name: "CustomTerms",
			params: loan.RequestParams{
				GroupID: groupID, BorrowerID: borrower, Amount: decimal.NewFromInt(2000),
				InterestRate: new(decimal.NewFromInt(5)), DurationMonths: 6,
			},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(&group.Group{ID: groupID}, nil)
				m.repo.EXPECT().CreateLoan(gomock.Any(), gomock.Any()).Return(nil)
			},
			check: func(t *testing.T, l *loan.Loan) {
				assert.True(t, l.InterestRate.Equal(decimal.NewFromInt(5)))
				assert.Equal(t, 6, l.DurationMonths)
			},
		},
		{
			name:   "ZeroAmount",
			params: loan.RequestParams{GroupID: groupID, BorrowerID: borrower},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(&group.Group{ID: groupID}, nil)
			},
			wantErr: loan.ErrValidation,
		},
		{
			name:   "FractionalAmount",
			params: loan.RequestParams{GroupID: groupID, BorrowerID: borrower, Amount: decimal.RequireFromString("99.50")},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(&group.Group{ID: groupID}, nil)
			},
			wantErr: loan.ErrValidation,
		},
		{
			name: "NegativeRate",
			params: loan.RequestParams{
				GroupID: groupID, BorrowerID: borrower, Amount: decimal.NewFromInt(100),
				InterestRate: new(decimal.NewFromInt(-1)),
			},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(&group.Group{ID: groupID}, nil)
			},
			wantErr: loan.ErrValidation,
		},
		{
			name:   "NotMember",
			params: loan.RequestParams{GroupID: groupID, BorrowerID: borrower, Amount: decimal.NewFromInt(100)},
			setupMock: func(m mocks) {
				m.groups.EXPECT().RequireMember(gomock.Any(), groupID, borrower).Return(nil, group.ErrForbidden)
			},
			wantErr: group.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(m)

			l, err := m.service().Request(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, l)
				return
			}

			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestService_Reject(t *testing.T) {
	groupID, loanID, creator := uuid.New(), uuid.New(), uuid.New()

	t.Run("Pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		m.groups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID}, nil)
		m.repo.EXPECT().GetLoan(gomock.Any(), groupID, loanID).
			Return(&loan.Loan{ID: loanID, GroupID: groupID, Status: loan.StatusPending}, nil)
		m.repo.EXPECT().Transition(gomock.Any(), gomock.Any(), loan.StatusPending).Return(nil)

		l, err := m.service().Reject(context.Background(), groupID, loanID, creator)
		require.NoError(t, err)

		assert.Equal(t, loan.StatusRejected, l.Status)
		assert.Equal(t, creator, *l.ActionBy)
		assert.Equal(t, approvedAt, *l.ActionAt)
	})

	t.Run("AlreadyDisbursed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		m.groups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID}, nil)
		m.repo.EXPECT().GetLoan(gomock.Any(), groupID, loanID).
			Return(&loan.Loan{ID: loanID, GroupID: groupID, Status: loan.StatusDisbursed}, nil)

		_, err := m.service().Reject(context.Background(), groupID, loanID, creator)
		assert.ErrorIs(t, err, loan.ErrInvalidTransition)
	})

	t.Run("NotCreator", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)

		m.groups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(nil, group.ErrForbidden)

		_, err := m.service().Reject(context.Background(), groupID, loanID, creator)
		assert.ErrorIs(t, err, group.ErrForbidden)
	})
}

func TestService_Approve(t *testing.T) {
	groupID, loanID, creator, borrowerID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	borrower := &user.User{ID: borrowerID, Username: "wanjiru", PhoneNumber: "0712345678"}

	pending := func() *loan.Loan {
		return &loan.Loan{
			ID:             loanID,
			GroupID:        groupID,
			BorrowerID:     borrowerID,
			Amount:         decimal.NewFromInt(1500),
			InterestRate:   decimal.NewFromInt(10),
			DurationMonths: 3,
			Status:         loan.StatusPending,
		}
	}

	begin := func(m mocks, balance int64, l *loan.Loan) {
		m.groups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID, CreatedBy: creator}, nil)
		m.repo.EXPECT().BeginDisbursement(gomock.Any()).Return(m.tx, nil)
		m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
		m.tx.EXPECT().LockGroupBalance(gomock.Any(), groupID).Return(decimal.NewFromInt(balance), nil)
		m.tx.EXPECT().LockLoan(gomock.Any(), groupID, loanID).Return(l, nil)
	}

	tests := []struct {
		name      string
		setupMock func(m mocks)
		wantErr   func(t *testing.T, err error)
		check     func(t *testing.T, l *loan.Loan)
	}{
		{
			name: "Disbursed",
			setupMock: func(m mocks) {
				begin(m, 5000, pending())
				m.users.EXPECT().Get(gomock.Any(), borrowerID).Return(borrower, nil)
				m.gateway.EXPECT().RequestDisbursement(gomock.Any(), mpesa.DisbursementRequest{
					Phone:    "254712345678",
					Amount:   1500,
					Remarks:  "Loan for wanjiru",
					Occasion: "Loan",
				}).Return(mpesa.Result{Outcome: mpesa.OutcomeAccepted, ResponseCode: "0", ConversationID: "AG_1"})

				gomock.InOrder(
					m.tx.EXPECT().MarkDisbursed(gomock.Any(), gomock.Any()).Return(nil),
					m.tx.EXPECT().DebitGroup(gomock.Any(), groupID, decimal.NewFromInt(1500)).Return(nil),
					m.tx.EXPECT().Commit().Return(nil),
				)
			},
			check: func(t *testing.T, l *loan.Loan) {
				assert.Equal(t, loan.StatusDisbursed, l.Status)
				assert.Equal(t, "AG_1", l.DisbursementRef)
				assert.Equal(t, creator, *l.ActionBy)
				require.NotNil(t, l.RepaymentDate)
				assert.Equal(t, time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC), *l.RepaymentDate)
			},
		},
		{
			name: "InsufficientBalance",
			setupMock: func(m mocks) {
				begin(m, 1000, pending())
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, loan.ErrInsufficientBalance)
				assert.Contains(t, err.Error(), "KES 1,000.00 available")
			},
		},
		{
			name: "GatewayRejects",
			setupMock: func(m mocks) {
				begin(m, 5000, pending())
				m.users.EXPECT().Get(gomock.Any(), borrowerID).Return(borrower, nil)
				m.gateway.EXPECT().RequestDisbursement(gomock.Any(), gomock.Any()).Return(mpesa.Result{
					Operation:   "disbursement",
					Outcome:     mpesa.OutcomePermanent,
					Description: "Initiator information is invalid",
				})
			},
			wantErr: func(t *testing.T, err error) {
				assert.True(t, mpesa.IsRejection(err))
			},
		},
		{
			name: "NotPending",
			setupMock: func(m mocks) {
				l := pending()
				l.Status = loan.StatusRejected
				begin(m, 5000, l)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, loan.ErrInvalidTransition)
			},
		},
		{
			name: "BorrowerWithoutPhone",
			setupMock: func(m mocks) {
				begin(m, 5000, pending())
				m.users.EXPECT().Get(gomock.Any(), borrowerID).Return(&user.User{ID: borrowerID}, nil)
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, loan.ErrValidation)
			},
		},
		{
			name: "DebitFailsAfterPayout",
			setupMock: func(m mocks) {
				begin(m, 5000, pending())
				m.users.EXPECT().Get(gomock.Any(), borrowerID).Return(borrower, nil)
				m.gateway.EXPECT().RequestDisbursement(gomock.Any(), gomock.Any()).
					Return(mpesa.Result{Outcome: mpesa.OutcomeAccepted, ResponseCode: "0", ConversationID: "AG_2"})
				m.tx.EXPECT().MarkDisbursed(gomock.Any(), gomock.Any()).Return(nil)
				m.tx.EXPECT().DebitGroup(gomock.Any(), groupID, gomock.Any()).Return(errors.New("connection reset"))
			},
			wantErr: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "record disbursement")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMock(m)

			l, err := m.service().Approve(context.Background(), groupID, loanID, creator)

			if tt.wantErr != nil {
				require.Error(t, err)
				tt.wantErr(t, err)
				assert.Nil(t, l)
				return
			}

			require.NoError(t, err)
			tt.check(t, l)
		})
	}
}

func TestService_Approve_RecordsPayoutAfterCallerLeaves(t *testing.T) {
	groupID, loanID, creator, borrowerID := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	notCancelled := func(ctx context.Context) {
		assert.NoError(t, ctx.Err())
	}

	m.groups.EXPECT().RequireCreator(gomock.Any(), groupID, creator).Return(&group.Group{ID: groupID, CreatedBy: creator}, nil)
	m.repo.EXPECT().BeginDisbursement(gomock.Any()).Return(m.tx, nil)
	m.tx.EXPECT().Rollback().Return(nil).AnyTimes()
	m.tx.EXPECT().LockGroupBalance(gomock.Any(), groupID).Return(decimal.NewFromInt(5000), nil)
	m.tx.EXPECT().LockLoan(gomock.Any(), groupID, loanID).Return(&loan.Loan{
		ID:             loanID,
		GroupID:        groupID,
		BorrowerID:     borrowerID,
		Amount:         decimal.NewFromInt(1500),
		InterestRate:   decimal.NewFromInt(10),
		DurationMonths: 1,
		Status:         loan.StatusPending,
	}, nil)
	m.users.EXPECT().Get(gomock.Any(), borrowerID).
		Return(&user.User{ID: borrowerID, Username: "wanjiru", PhoneNumber: "0712345678"}, nil)
	m.gateway.EXPECT().RequestDisbursement(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, mpesa.DisbursementRequest) mpesa.Result {
			cancel()
			return mpesa.Result{Outcome: mpesa.OutcomeAccepted, ResponseCode: "0", ConversationID: "AG_3"}
		})

	gomock.InOrder(
		m.tx.EXPECT().MarkDisbursed(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ *loan.Loan) error {
				notCancelled(ctx)
				return nil
			}),
		m.tx.EXPECT().DebitGroup(gomock.Any(), groupID, decimal.NewFromInt(1500)).
			DoAndReturn(func(ctx context.Context, _ uuid.UUID, _ decimal.Decimal) error {
				notCancelled(ctx)
				return nil
			}),
		m.tx.EXPECT().Commit().Return(nil),
	)

	l, err := m.service().Approve(ctx, groupID, loanID, creator)

	require.NoError(t, err)
	assert.Equal(t, loan.StatusDisbursed, l.Status)
	assert.Equal(t, "AG_3", l.DisbursementRef)
}

func TestLoan_TotalRepayment(t *testing.T) {
	l := loan.Loan{Amount: decimal.NewFromInt(1500), InterestRate: decimal.NewFromInt(10)}
	assert.Equal(t, "1650", l.TotalRepayment().String())

	l.InterestRate = decimal.RequireFromString("12.5")
	assert.Equal(t, "1687.5", l.TotalRepayment().String())
}
