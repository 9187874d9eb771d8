// Package sites holds the per-site extractors. Each one tries structured
// data first and falls back to DOM heuristics tuned to that site's markup.
// Heuristic misses are expected; required-field validation catches the gaps.
package sites

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
	"recipeparser/internal/textparse"
)

type AllRecipes struct {
	logger *zap.Logger
}

func NewAllRecipes(logger *zap.Logger) *AllRecipes {
	return &AllRecipes{logger: logger}
}

func (a *AllRecipes) Name() string { return "AllRecipes" }

func (a *AllRecipes) CanHandle(rawURL string) bool {
	return extract.HostContains(rawURL, "allrecipes.com")
}

func (a *AllRecipes) Extract(html, rawURL string) (*domain.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	recipe := domain.NewRecipe()

	if sd := extract.StructuredRecipe(doc, a.logger); sd != nil {
		sd.Populate(recipe)
		return recipe, nil
	}

	a.logger.Debug("no structured data, using DOM heuristics", zap.String("url", rawURL))

	if t := doc.Find(`[class*="headline heading-content"]`).First(); t.Length() > 0 {
		recipe.Title = extract.NodeText(t)
	}
	if d := doc.Find(`[class*="recipe-summary"]`).First(); d.Length() > 0 {
		recipe.Description = extract.NodeText(d)
	}

	doc.Find(`[class*="ingredients-item"]`).Each(func(_ int, s *goquery.Selection) {
		if text := extract.NodeText(s); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, textparse.ParseIngredient(text))
		}
	})

	doc.Find(`[class*="instructions-section"]`).Each(func(_ int, s *goquery.Selection) {
		if text := extract.NodeText(s); text != "" {
			recipe.Steps = append(recipe.Steps, textparse.ParseStep(text, len(recipe.Steps)+1))
		}
	})

	if img := doc.Find(`[class*="recipe-image"]`).First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			recipe.ImageURL = src
		}
	}

	doc.Find(`[class*="recipe-meta-item-body"]`).Each(func(_ int, s *goquery.Selection) {
		text := strings.ToLower(extract.NodeText(s))
		if strings.Contains(text, "cook") {
			recipe.CookTime = extract.FirstInt(text, recipe.CookTime)
		}
	})

	if sv := doc.Find(`[class*="recipe-meta-item-body"]`).First(); sv.Length() > 0 {
		recipe.Servings = extract.FirstInt(extract.NodeText(sv), recipe.Servings)
	}

	return recipe, nil
}
