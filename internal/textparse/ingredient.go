package textparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"recipeparser/internal/domain"
)

var (
	// Leading number, decimal, or a simple a/b or a - b range-like token.
	amountRe = regexp.MustCompile(`^(\d+(?:\.\d+)?(?:\s*[-/]\s*\d+(?:\.\d+)?)?)`)
	// Fixed vocabulary of common cooking units, optional trailing "s".
	unitRe    = regexp.MustCompile(`(?i)\b(?:cup|tablespoon|teaspoon|pound|ounce|gram|ml|g|oz|lb|tbsp|tsp)s?\b`)
	leadNumRe = regexp.MustCompile(`^\d+(?:\.\d+)?`)
)

// ParseIngredient splits a raw ingredient line into amount, unit and name.
// Parsing is lossy and best-effort: an unparseable quantity leaves amount 0,
// an unrecognized unit leaves the literal "unit", and whatever text remains
// after stripping the matched tokens becomes the name.
func ParseIngredient(text string) domain.Ingredient {
	name := strings.TrimSpace(text)
	amount := 0.0
	unit := "unit"

	if m := amountRe.FindString(name); m != "" {
		// Range tokens like "1 - 2" or "1/2" keep only the leading number.
		if n := leadNumRe.FindString(m); n != "" {
			amount, _ = strconv.ParseFloat(n, 64)
		}
		name = strings.TrimSpace(name[len(m):])
	}

	if m := unitRe.FindString(name); m != "" {
		unit = strings.ToLower(strings.TrimSpace(m))
		name = strings.TrimSpace(strings.Replace(name, m, "", 1))
	}

	return domain.Ingredient{
		ID:     uuid.NewString(),
		Name:   name,
		Amount: amount,
		Unit:   unit,
	}
}

// ParseStep wraps trimmed instruction text into a 1-based ordered step.
func ParseStep(text string, order int) domain.Step {
	return domain.Step{
		ID:          uuid.NewString(),
		Order:       order,
		Description: strings.TrimSpace(text),
		Tips:        []string{},
	}
}
