package contribution_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kuhlali/chamapro-extend/internal/contribution"
	"github.com/kuhlali/chamapro-extend/internal/group"
)

// memPenalties keeps penalties in memory with the same uniqueness rule as
// the penalties table.
type memPenalties struct {
	mu        sync.Mutex
	penalties []*contribution.Penalty
	paid      bool
}

func (r *memPenalties) HasSuccessfulContribution(context.Context, uuid.UUID, uuid.UUID, time.Time, time.Time) (bool, error) {
	return r.paid, nil
}

func (r *memPenalties) CreatePenalty(_ context.Context, p *contribution.Penalty) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.penalties {
		if existing.UserID == p.UserID && existing.GroupID == p.GroupID && existing.Reason == p.Reason {
			*p = *existing
			return false, nil
		}
	}

	p.ID = uuid.New()
	cp := *p
	r.penalties = append(r.penalties, &cp)

	return true, nil
}

func (r *memPenalties) ListUnpaidPenalties(_ context.Context, groupID, userID uuid.UUID) ([]*contribution.Penalty, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*contribution.Penalty

	for _, p := range r.penalties {
		if p.GroupID == groupID && p.UserID == userID && !p.IsPaid {
			out = append(out, p)
		}
	}

	return out, nil
}

func monthlyGroup(day, grace int) *group.Group {
	return &group.Group{
		ID:                 uuid.New(),
		Name:               "Umoja",
		Frequency:          group.FrequencyMonthly,
		ContributionAmount: decimal.NewFromInt(1000),
		ContributionDay:    new(day),
		PenaltyAmount:      decimal.NewFromInt(100),
		PenaltyGraceDays:   grace,
	}
}

func fixedClock(t time.Time) contribution.Option {
	return contribution.WithClock(func() time.Time { return t })
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		day  int
		want time.Time
	}{
		{"FirstOfMonth", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"LeapFebruary", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 30, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"February", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), 30, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"ThirtyDayMonth", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), 31, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)},
		{"FitsMonth", time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 31, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contribution.DueDate(tt.now, tt.day))
		})
	}
}

func TestCutoffAndReason(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), contribution.Cutoff(due, 7))
	assert.Equal(t, "Late Contribution: January 2024", contribution.PenaltyReason(due))
}

func TestEngine_Assess_IsIdempotent(t *testing.T) {
	repo := &memPenalties{}
	g := monthlyGroup(1, 7)
	member := uuid.New()

	engine := contribution.NewEngine(repo,
		fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
		contribution.WithLocation(time.UTC),
	)

	first, err := engine.Assess(context.Background(), g, member)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := engine.Assess(context.Background(), g, member)
	require.NoError(t, err)
	require.NotNil(t, second)

	require.Len(t, repo.penalties, 1)

	p := repo.penalties[0]
	assert.Equal(t, "Late Contribution: January 2024", p.Reason)
	assert.True(t, p.Amount.Equal(g.PenaltyAmount))
	assert.Equal(t, member, p.UserID)
	assert.Equal(t, first.ID, second.ID)
}

func TestEngine_Assess(t *testing.T) {
	member := uuid.New()

	tests := []struct {
		name        string
		group       func() *group.Group
		now         time.Time
		setupMock   func(m *contribution.MockRepository)
		wantPenalty bool
		wantErr     bool
	}{
		{
			name:  "BeforeCutoff",
			group: func() *group.Group { return monthlyGroup(1, 7) },
			now:   time.Date(2024, 1, 8, 23, 0, 0, 0, time.UTC),
		},
		{
			name: "WeeklyGroupIsNotAssessed",
			group: func() *group.Group {
				g := monthlyGroup(1, 7)
				g.Frequency = group.FrequencyWeekly
				g.ContributionDay = nil
				g.ContributionWeekday = new(time.Monday)

				return g
			},
			now: time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "AlreadyContributed",
			group: func() *group.Group { return monthlyGroup(1, 7) },
			now:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			setupMock: func(m *contribution.MockRepository) {
				m.EXPECT().
					HasSuccessfulContribution(gomock.Any(), gomock.Any(), member,
						time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
						time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).
					Return(true, nil)
			},
		},
		{
			name:  "Late",
			group: func() *group.Group { return monthlyGroup(1, 7) },
			now:   time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
			setupMock: func(m *contribution.MockRepository) {
				m.EXPECT().HasSuccessfulContribution(gomock.Any(), gomock.Any(), member, gomock.Any(), gomock.Any()).Return(false, nil)
				m.EXPECT().CreatePenalty(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *contribution.Penalty) (bool, error) {
						assert.Equal(t, "Late Contribution: January 2024", p.Reason)
						assert.Equal(t, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), p.AssessedOn)
						return true, nil
					})
			},
			wantPenalty: true,
		},
		{
			name:  "LookupFails",
			group: func() *group.Group { return monthlyGroup(1, 7) },
			now:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			setupMock: func(m *contribution.MockRepository) {
				m.EXPECT().HasSuccessfulContribution(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := contribution.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			engine := contribution.NewEngine(repo, fixedClock(tt.now), contribution.WithLocation(time.UTC))

			p, err := engine.Assess(context.Background(), tt.group(), member)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPenalty, p != nil)
		})
	}
}

func TestEngine_AmountDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := contribution.NewMockRepository(ctrl)

	g := monthlyGroup(1, 7)
	member := uuid.New()

	repo.EXPECT().ListUnpaidPenalties(gomock.Any(), g.ID, member).Return([]*contribution.Penalty{
		{Amount: decimal.NewFromInt(100), Reason: "Late Contribution: November 2023"},
		{Amount: decimal.RequireFromString("50.50"), Reason: "Late Contribution: December 2023"},
	}, nil)

	due, err := contribution.NewEngine(repo).AmountDue(context.Background(), g, member)
	require.NoError(t, err)

	assert.True(t, due.Contribution.Equal(decimal.NewFromInt(1000)))
	assert.True(t, due.PenaltyTotal.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, due.Total.Equal(decimal.RequireFromString("1150.50")))
	assert.Len(t, due.Penalties, 2)
}

func TestEngine_Prepare(t *testing.T) {
	repo := &memPenalties{}
	g := monthlyGroup(1, 7)
	member := uuid.New()

	engine := contribution.NewEngine(repo,
		fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)),
		contribution.WithLocation(time.UTC),
	)

	due, err := engine.Prepare(context.Background(), g, member)
	require.NoError(t, err)

	assert.True(t, due.Total.Equal(decimal.NewFromInt(1100)))
	assert.Len(t, due.Penalties, 1)
}
