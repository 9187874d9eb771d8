package sites

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
	"recipeparser/internal/textparse"
)

type SeriousEats struct {
	logger *zap.Logger
}

func NewSeriousEats(logger *zap.Logger) *SeriousEats {
	return &SeriousEats{logger: logger}
}

func (s *SeriousEats) Name() string { return "Serious Eats" }

func (s *SeriousEats) CanHandle(rawURL string) bool {
	return extract.HostContains(rawURL, "seriouseats.com")
}

func (s *SeriousEats) Extract(html, rawURL string) (*domain.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	recipe := domain.NewRecipe()

	if sd := extract.StructuredRecipe(doc, s.logger); sd != nil {
		sd.Populate(recipe)
		return recipe, nil
	}

	if t := doc.Find("h1.recipe-title").First(); t.Length() > 0 {
		recipe.Title = extract.NodeText(t)
	}
	if d := doc.Find(".recipe-introduction").First(); d.Length() > 0 {
		recipe.Description = extract.NodeText(d)
	}
	if img := doc.Find(".primary-image img").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			recipe.ImageURL = src
		}
	}

	doc.Find(".ingredient-list li").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, textparse.ParseIngredient(text))
		}
	})

	doc.Find(".recipe-procedure-text").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Steps = append(recipe.Steps, textparse.ParseStep(text, len(recipe.Steps)+1))
		}
	})

	if ct := doc.Find(".recipe-meta-item--cook-time .recipe-meta-item-body").First(); ct.Length() > 0 {
		recipe.CookTime = textparse.ParseDuration(extract.NodeText(ct))
	}
	if sv := doc.Find(".recipe-meta-item--yield .recipe-meta-item-body").First(); sv.Length() > 0 {
		recipe.Servings = extract.FirstInt(extract.NodeText(sv), recipe.Servings)
	}

	return recipe, nil
}
