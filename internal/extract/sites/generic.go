package sites

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/classifier"
	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
)

// Generic handles any supported site without a dedicated extractor. It
// relies on structured data only; there are no DOM heuristics that hold
// across arbitrary sites. Register it last.
type Generic struct {
	logger *zap.Logger
}

func NewGeneric(logger *zap.Logger) *Generic {
	return &Generic{logger: logger}
}

func (g *Generic) Name() string { return "Generic" }

func (g *Generic) CanHandle(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := classifier.SiteName(u.Hostname())
	return ok
}

func (g *Generic) Extract(html, rawURL string) (*domain.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	recipe := domain.NewRecipe()

	if sd := extract.StructuredRecipe(doc, g.logger); sd != nil {
		sd.Populate(recipe)
		return recipe, nil
	}

	g.logger.Debug("no structured data on generic site", zap.String("url", rawURL))

	// Best-effort title from the page itself so validation can report a
	// partial extraction rather than a fully empty one.
	if t := doc.Find("h1").First(); t.Length() > 0 {
		recipe.Title = extract.NodeText(t)
	}

	return recipe, nil
}

// DefaultRegistry returns the extractor registry in dispatch order.
func DefaultRegistry(logger *zap.Logger) *extract.Registry {
	return extract.NewRegistry(
		NewAllRecipes(logger),
		NewSeriousEats(logger),
		NewSimplyRecipes(logger),
		NewLoveAndLemons(logger),
		NewGeneric(logger),
	)
}
