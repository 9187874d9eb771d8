// Package extract converts fetched HTML into the canonical Recipe shape,
// preferring embedded ld+json structured data and falling back to per-site
// DOM heuristics.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"recipeparser/internal/domain"
)

// Extractor extracts a recipe for the sites it registers for. Extract never
// returns a nil recipe on heuristic misses; it returns at least the
// default-populated shell. Unexpected internal failures are returned as
// errors (or panic, which the dispatcher recovers).
type Extractor interface {
	Name() string
	CanHandle(rawURL string) bool
	Extract(html, rawURL string) (*domain.Recipe, error)
}

// Registry selects an extractor by first match in registration order.
type Registry struct {
	extractors []Extractor
}

func NewRegistry(extractors ...Extractor) *Registry {
	return &Registry{extractors: extractors}
}

// Find returns the first extractor that can handle the URL, or nil.
func (r *Registry) Find(rawURL string) Extractor {
	for _, e := range r.extractors {
		if e.CanHandle(rawURL) {
			return e
		}
	}
	return nil
}

// HostContains reports whether the URL's hostname contains the given
// domain substring. Malformed URLs match nothing.
func HostContains(rawURL, domainPart string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.Contains(u.Hostname(), domainPart)
}

var spaceRe = regexp.MustCompile(`\s+`)

// NodeText returns the flattened, whitespace-normalized text of a selection.
func NodeText(s *goquery.Selection) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s.Text(), " "))
}

var digitsRe = regexp.MustCompile(`\d+`)

// FirstInt extracts the first integer appearing in a string, or fallback.
func FirstInt(s string, fallback int) int {
	if m := digitsRe.FindString(s); m != "" {
		return leadingInt(m, fallback)
	}
	return fallback
}
