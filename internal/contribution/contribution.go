package contribution

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Penalty is a late-contribution charge. Reason identifies the period, so a
// member has at most one penalty per group and period.
type Penalty struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	GroupID    uuid.UUID
	Amount     decimal.Decimal
	Reason     string
	AssessedOn time.Time
	IsPaid     bool
	PaidAt     *time.Time
}

// Due is what a member owes for the current period.
type Due struct {
	Contribution decimal.Decimal
	Penalties    []*Penalty
	PenaltyTotal decimal.Decimal
	Total        decimal.Decimal
}

// DueDate returns the contribution due date in now's month. Days past the
// end of the month fall on its last day.
func DueDate(now time.Time, day int) time.Time {
	y, m, _ := now.Date()
	last := time.Date(y, m+1, 0, 0, 0, 0, 0, now.Location()).Day()

	return time.Date(y, m, max(1, min(day, last)), 0, 0, 0, 0, now.Location())
}

func Cutoff(due time.Time, graceDays int) time.Time {
	return due.AddDate(0, 0, graceDays)
}

// PenaltyReason names the period a penalty belongs to.
func PenaltyReason(period time.Time) string {
	return "Late Contribution: " + period.Format("January 2006")
}

func monthBounds(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())

	return start, start.AddDate(0, 1, 0)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
