package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/payment"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	// MonthlyContributionTotals returns successful contribution totals per
	// calendar month since the given time, oldest month first.
	MonthlyContributionTotals(ctx context.Context, userID uuid.UUID, since time.Time) ([]MonthTotal, error)
	StatusCounts(ctx context.Context, userID uuid.UUID) ([]StatusCount, error)
	// ListUserTransactions returns the user's transactions newest first. A
	// limit of zero means no limit.
	ListUserTransactions(ctx context.Context, userID uuid.UUID, typ payment.Type, limit int) ([]*payment.Transaction, error)
	UserContributionTotal(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
	MemberTotals(ctx context.Context, groupID uuid.UUID) ([]MemberTotal, error)
	ListGroupContributions(ctx context.Context, groupID uuid.UUID) ([]*payment.Transaction, error)
	CountGroups(ctx context.Context, userID uuid.UUID) (int, error)
}

type Groups interface {
	RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*group.Group, error)
}

type Service struct {
	repo   Repository
	groups Groups
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, groups Groups, opts ...Option) *Service {
	s := &Service{repo: repo, groups: groups, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	months, err := s.repo.MonthlyContributionTotals(ctx, userID, s.now().Add(-TrendWindow))
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.StatusCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Trend:        Series[decimal.Decimal]{Labels: []string{}, Data: []decimal.Decimal{}},
		Distribution: Series[int64]{Labels: []string{}, Data: []int64{}},
	}

	for _, m := range months {
		d.Trend.Labels = append(d.Trend.Labels, m.Month.Format(monthLabel))
		d.Trend.Data = append(d.Trend.Data, m.Total)
	}

	for _, c := range counts {
		d.Distribution.Labels = append(d.Distribution.Labels, string(c.Status))
		d.Distribution.Data = append(d.Distribution.Data, c.Count)
	}

	return d, nil
}

// MyContributions lists every contribution the user has made, newest first,
// with the total of the successful ones.
func (s *Service) MyContributions(ctx context.Context, userID uuid.UUID) (*ContributionHistory, error) {
	txs, err := s.repo.ListUserTransactions(ctx, userID, payment.TypeContribution, 0)
	if err != nil {
		return nil, err
	}

	return &ContributionHistory{Transactions: txs, Total: successfulTotal(txs)}, nil
}

func (s *Service) GroupContributions(ctx context.Context, groupID, userID uuid.UUID) (*GroupContributions, error) {
	if _, err := s.groups.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	members, err := s.repo.MemberTotals(ctx, groupID)
	if err != nil {
		return nil, err
	}

	txs, err := s.repo.ListGroupContributions(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupContributions{Members: members, Contributions: txs, Total: successfulTotal(txs)}, nil
}

func (s *Service) Profile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	total, err := s.repo.UserContributionTotal(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListUserTransactions(ctx, userID, "", recentLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{TotalContributed: total, Recent: recent, GroupCount: count}, nil
}
