package group_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/kuhlali/chamapro-extend/internal/group"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Umoja Investment Group", "umoja-investment-group"},
		{"  Vision 2030 -- Savers ", "vision-2030-savers"},
		{"Café Wanawake", "cafe-wanawake"},
		{"Jua Kali & Sons!", "jua-kali-sons"},
		{"互助会", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, group.Slugify(tt.in))
		})
	}
}

func TestPrepare(t *testing.T) {
	t.Run("FillsDerivedFields", func(t *testing.T) {
		g := &group.Group{
			Name:               "Umoja",
			County:             "Nairobi",
			ContributionAmount: decimal.NewFromInt(1000),
		}

		group.Prepare(g)

		assert.Equal(t, "umoja", g.Slug)
		assert.Equal(t, "Umoja - ChamaPro Investment Group", g.MetaTitle)
		assert.Equal(t, "Join Umoja chama in Nairobi. Monthly contribution: KSh 1000.00", g.MetaDescription)
		assert.Equal(t, "chama, investment group, Nairobi, savings, Kenya", g.MetaKeywords)
	})

	t.Run("ExcerptBecomesDescription", func(t *testing.T) {
		g := &group.Group{Name: "Umoja", Excerpt: "Saving together since 2019"}

		group.Prepare(g)

		assert.Equal(t, "Saving together since 2019", g.MetaDescription)
	})

	t.Run("KeepsExistingValues", func(t *testing.T) {
		g := &group.Group{Name: "Umoja", Slug: "custom", MetaTitle: "Mine"}

		group.Prepare(g)

		assert.Equal(t, "custom", g.Slug)
		assert.Equal(t, "Mine", g.MetaTitle)
	})

	t.Run("NonASCIINameGetsGeneratedSlug", func(t *testing.T) {
		first := &group.Group{Name: "互助会"}
		second := &group.Group{Name: "جمعية"}

		group.Prepare(first)
		group.Prepare(second)

		assert.Regexp(t, `^chama-[0-9a-f]{8}$`, first.Slug)
		assert.Regexp(t, `^chama-[0-9a-f]{8}$`, second.Slug)
		assert.NotEqual(t, first.Slug, second.Slug)
	})

	t.Run("TruncatesTitle", func(t *testing.T) {
		g := &group.Group{Name: "An Unreasonably Long Chama Name That Goes On"}

		group.Prepare(g)

		assert.Len(t, []rune(g.MetaTitle), 60)
	})
}

func TestExtendSubscription(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	future := now.Add(10 * 24 * time.Hour)
	past := now.Add(-5 * 24 * time.Hour)

	assert.Equal(t, now.Add(30*24*time.Hour), group.ExtendSubscription(nil, now))
	assert.Equal(t, now.Add(30*24*time.Hour), group.ExtendSubscription(&past, now))
	assert.Equal(t, future.Add(30*24*time.Hour), group.ExtendSubscription(&future, now))
}

func TestPlan_Price(t *testing.T) {
	price, ok := group.PlanStandard.Price()
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(500)))

	price, ok = group.PlanPremium.Price()
	assert.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(1200)))

	_, ok = group.PlanBasic.Price()
	assert.False(t, ok)
}
