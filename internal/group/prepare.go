package group

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	maxSlugLen      = 250
	maxMetaTitleLen = 60
	maxMetaDescLen  = 160
)

// Slugify folds name to lowercase ASCII words joined by hyphens.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder

	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}

			b.WriteRune(r)

			pendingHyphen = false
		case r == '-' || r == '_' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}

	return slug
}

// Prepare fills the derived fields of g before it is first stored. Values
// already set are left alone.
func Prepare(g *Group) {
	if g.Slug == "" {
		g.Slug = Slugify(g.Name)
	}

	// Names with no ASCII letters or digits fold to nothing.
	if g.Slug == "" {
		g.Slug = "chama-" + uuid.NewString()[:8]
	}

	if g.MetaTitle == "" {
		g.MetaTitle = truncate(fmt.Sprintf("%s - ChamaPro Investment Group", g.Name), maxMetaTitleLen)
	}

	if g.MetaDescription == "" {
		if g.Excerpt != "" {
			g.MetaDescription = g.Excerpt
		} else {
			g.MetaDescription = truncate(fmt.Sprintf("Join %s chama in %s. Monthly contribution: KSh %s",
				g.Name, g.County, g.ContributionAmount.StringFixed(2)), maxMetaDescLen)
		}
	}

	if g.MetaKeywords == "" {
		g.MetaKeywords = fmt.Sprintf("chama, investment group, %s, savings, Kenya", g.County)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
