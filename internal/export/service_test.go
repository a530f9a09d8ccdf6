package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuhlali/chamapro-extend/internal/export"
	"github.com/kuhlali/chamapro-extend/internal/group"
	"github.com/kuhlali/chamapro-extend/internal/payment"
	"github.com/kuhlali/chamapro-extend/internal/report"
)

type fakeReports struct {
	gc  *report.GroupContributions
	err error
}

func (f *fakeReports) GroupContributions(context.Context, uuid.UUID, uuid.UUID) (*report.GroupContributions, error) {
	return f.gc, f.err
}

func TestService_Statement(t *testing.T) {
	akinyi, otieno, stranger := uuid.New(), uuid.New(), uuid.New()

	reports := &fakeReports{gc: &report.GroupContributions{
		Members: []report.MemberTotal{
			{UserID: akinyi, Username: "akinyi", FirstName: "Akinyi", LastName: "Odhiambo"},
			{UserID: otieno, Username: "otieno"},
		},
		Contributions: []*payment.Transaction{
			{
				UserID:        &akinyi,
				Amount:        decimal.NewFromInt(1000),
				PhoneNumber:   "254712345678",
				ReceiptNumber: "NLJ7RT61SV",
				CreatedAt:     time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC),
			},
			{
				UserID:      &otieno,
				Amount:      decimal.RequireFromString("1150.5"),
				PhoneNumber: "254722000111",
				CreatedAt:   time.Date(2024, 1, 18, 9, 0, 0, 0, time.UTC),
			},
			{
				UserID:    &stranger,
				Amount:    decimal.NewFromInt(200),
				CreatedAt: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			},
		},
		Total: decimal.RequireFromString("2350.5"),
	}}

	st, err := export.NewService(reports).Statement(context.Background(), uuid.New(), akinyi)
	require.NoError(t, err)

	require.Len(t, st.Items, 3)
	assert.Equal(t, "Akinyi Odhiambo", st.Items[0].Member)
	assert.Equal(t, "otieno", st.Items[1].Member)
	assert.Equal(t, "Unknown", st.Items[2].Member)
	assert.Equal(t, "1150.50", st.Items[1].Amount)
	assert.Equal(t, "KES 2,350.50", st.Total)

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, st))
	assert.Equal(t, "date,member,phone,receipt,amount\n"+
		"2024-01-20,Akinyi Odhiambo,254712345678,NLJ7RT61SV,1000.00\n"+
		"2024-01-18,otieno,254722000111,,1150.50\n"+
		"2024-01-02,Unknown,,,200.00\n", buf.String())

	summary := export.Summary(st)
	assert.Contains(t, summary, "* 2024-01-18 | otieno | KES 1150.50 | No receipt\n")
	assert.Contains(t, summary, "Total: KES 2,350.50\n")
}

func TestService_Statement_NotMember(t *testing.T) {
	reports := &fakeReports{err: group.ErrForbidden}

	_, err := export.NewService(reports).Statement(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, group.ErrForbidden)
}
