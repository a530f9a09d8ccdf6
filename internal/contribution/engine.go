package contribution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/metrics"
)

//go:generate mockgen -source=engine.go -destination=repository_mock.go -package=contribution
type Repository interface {
	HasSuccessfulContribution(ctx context.Context, groupID, userID uuid.UUID, from, to time.Time) (bool, error)
	// CreatePenalty inserts p unless a penalty with the same user, group and
	// reason exists. created reports whether a row was written.
	CreatePenalty(ctx context.Context, p *Penalty) (created bool, err error)
	ListUnpaidPenalties(ctx context.Context, groupID, userID uuid.UUID) ([]*Penalty, error)
}

// Nairobi is the default calendar for due dates.
var Nairobi = time.FixedZone("EAT", 3*60*60)

type Engine struct {
	repo Repository
	now  func() time.Time
	loc  *time.Location
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

func NewEngine(repo Repository, opts ...Option) *Engine {
	e := &Engine{repo: repo, now: time.Now, loc: Nairobi}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Assess charges the member a penalty when the current month's cutoff has
// passed without a successful contribution. It returns the period's penalty,
// or nil when none applies. Repeated calls in a period do not add penalties.
func (e *Engine) Assess(ctx context.Context, g *group.Group, userID uuid.UUID) (*Penalty, error) {
	if g.Frequency != group.FrequencyMonthly || g.ContributionDay == nil {
		return nil, nil
	}

	now := e.now().In(e.loc)
	today := truncateDay(now)

	cutoff := Cutoff(DueDate(now, *g.ContributionDay), g.PenaltyGraceDays)
	if !today.After(cutoff) {
		return nil, nil
	}

	from, to := monthBounds(now)

	paid, err := e.repo.HasSuccessfulContribution(ctx, g.ID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("checking contributions: %w", err)
	}

	if paid {
		return nil, nil
	}

	p := &Penalty{
		UserID:     userID,
		GroupID:    g.ID,
		Amount:     g.PenaltyAmount,
		Reason:     PenaltyReason(now),
		AssessedOn: today,
	}

	created, err := e.repo.CreatePenalty(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("assessing penalty: %w", err)
	}

	if created {
		metrics.PenaltiesAssessed.Inc()
		slog.Info("penalty assessed", "group_id", g.ID, "user_id", userID, "reason", p.Reason, "amount", p.Amount.String())
	}

	return p, nil
}

// AmountDue is the group's contribution plus the member's unpaid penalties.
func (e *Engine) AmountDue(ctx context.Context, g *group.Group, userID uuid.UUID) (*Due, error) {
	penalties, err := e.repo.ListUnpaidPenalties(ctx, g.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing penalties: %w", err)
	}

	due := &Due{
		Contribution: g.ContributionAmount,
		Penalties:    penalties,
		PenaltyTotal: decimal.Zero,
	}

	for _, p := range penalties {
		due.PenaltyTotal = due.PenaltyTotal.Add(p.Amount)
	}

	due.Total = due.Contribution.Add(due.PenaltyTotal)

	return due, nil
}

// Prepare runs Assess and then AmountDue. It is called before every
// contribution request.
func (e *Engine) Prepare(ctx context.Context, g *group.Group, userID uuid.UUID) (*Due, error) {
	if _, err := e.Assess(ctx, g, userID); err != nil {
		return nil, err
	}

	return e.AmountDue(ctx, g, userID)
}
