package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kuhlali/chamapro-extend/internal/payment"
)

// TrendWindow is how far back the dashboard contribution trend reaches.
const TrendWindow = 180 * 24 * time.Hour

const (
	monthLabel  = "Jan 2006"
	recentLimit  = 5
)

type MonthTotal struct {
	Month time.Time
	Total decimal.Decimal
}

type StatusCount struct {
	Status payment.Status
	Count  int64
}

type MemberTotal struct {
	UserID    uuid.UUID
	Username  string
	FirstName string
	LastName  string
	Total     decimal.Decimal
}

type Series[T any] struct {
	Labels []string `json:"labels"`
	Data   []T      `json:"data"`
}

type Dashboard struct {
	Trend        Series[decimal.Decimal] `json:"trend"`
	Distribution Series[int64]           `json:"distribution"`
}

type ContributionHistory struct {
	Transactions []*payment.Transaction
	Total        decimal.Decimal
}

type GroupContributions struct {
	Members       []MemberTotal
	Contributions []*payment.Transaction
	Total         decimal.Decimal
}

type Profile struct {
	TotalContributed decimal.Decimal
	Recent           []*payment.Transaction
	GroupCount       int
}

// successfulTotal sums the successful contributions in txs.
func successfulTotal(txs []*payment.Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		if tx.Type == payment.TypeContribution && tx.Status == payment.StatusSuccess {
			total = total.Add(tx.Amount)
		}
	}

	return total
}
