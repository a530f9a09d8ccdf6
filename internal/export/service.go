package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/kuhlali/chamapro-extend/internal/money"
	"github.com/kuhlali/chamapro-extend/internal/report"
)

type Reports interface {
	GroupContributions(ctx context.Context, groupID, userID uuid.UUID) (*report.GroupContributions, error)
}

// Item is one settled contribution with the name of the member who paid it.
type Item struct {
	Date    string
	Member  string
	Phone   string
	Receipt string
	Amount  string
}

// Statement is a group's contribution history ready to be written out.
type Statement struct {
	Items []Item
	Total string
}

// Service builds contribution statements for a group.
type Service struct {
	reports Reports
}

func NewService(reports Reports) *Service {
	return &Service{reports: reports}
}

// Statement lists the group's successful contributions, newest first. Only
// members may export.
func (s *Service) Statement(ctx context.Context, groupID, userID uuid.UUID) (*Statement, error) {
	gc, err := s.reports.GroupContributions(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("loading contributions: %w", err)
	}

	names := make(map[uuid.UUID]string, len(gc.Members))
	for _, m := range gc.Members {
		name := strings.TrimSpace(m.FirstName + " " + m.LastName)
		if name == "" {
			name = m.Username
		}

		names[m.UserID] = name
	}

	st := &Statement{
		Items: make([]Item, 0, len(gc.Contributions)),
		Total: money.Format(gc.Total),
	}

	for _, tx := range gc.Contributions {
		member := "Unknown"
		if tx.UserID != nil {
			if name, ok := names[*tx.UserID]; ok {
				member = name
			}
		}

		st.Items = append(st.Items, Item{
			Date:    tx.CreatedAt.Format("2006-01-02"),
			Member:  member,
			Phone:   tx.PhoneNumber,
			Receipt: tx.ReceiptNumber,
			Amount:  tx.Amount.StringFixed(2),
		})
	}

	return st, nil
}

// WriteCSV writes the statement with a header row.
func WriteCSV(w io.Writer, st *Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"date", "member", "phone", "receipt", "amount"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range st.Items {
		if err := cw.Write([]string{item.Date, item.Member, item.Phone, item.Receipt, item.Amount}); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders the statement as plain text for sharing with members.
func Summary(st *Statement) string {
	var sb strings.Builder

	for _, item := range st.Items {
		receipt := item.Receipt
		if receipt == "" {
			receipt = "No receipt"
		}

		fmt.Fprintf(&sb, "* %s | %s | KES %s | %s\n", item.Date, item.Member, item.Amount, receipt)
	}

	fmt.Fprintf(&sb, "Total: %s\n", st.Total)

	return sb.String()
}
