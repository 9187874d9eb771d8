package sites

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
	"recipeparser/internal/textparse"
)

// LoveAndLemons covers the WP Recipe Maker markup used by the site.
type LoveAndLemons struct {
	logger *zap.Logger
}

func NewLoveAndLemons(logger *zap.Logger) *LoveAndLemons {
	return &LoveAndLemons{logger: logger}
}

func (l *LoveAndLemons) Name() string { return "Love and Lemons" }

func (l *LoveAndLemons) CanHandle(rawURL string) bool {
	return extract.HostContains(rawURL, "loveandlemons.com")
}

func (l *LoveAndLemons) Extract(html, rawURL string) (*domain.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	recipe := domain.NewRecipe()

	if sd := extract.StructuredRecipe(doc, l.logger); sd != nil {
		sd.Populate(recipe)
		return recipe, nil
	}

	if t := doc.Find(".entry-title").First(); t.Length() > 0 {
		recipe.Title = extract.NodeText(t)
	}
	if d := doc.Find(".recipe-description").First(); d.Length() > 0 {
		recipe.Description = extract.NodeText(d)
	}
	if img := doc.Find(".recipe-image img").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			recipe.ImageURL = src
		}
	}

	doc.Find(".wprm-recipe-ingredient").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, textparse.ParseIngredient(text))
		}
	})

	doc.Find(".wprm-recipe-instruction").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Steps = append(recipe.Steps, textparse.ParseStep(text, len(recipe.Steps)+1))
		}
	})

	if ct := doc.Find(".wprm-recipe-total-time").First(); ct.Length() > 0 {
		recipe.CookTime = textparse.ParseDuration(extract.NodeText(ct))
	}
	if sv := doc.Find(".wprm-recipe-servings").First(); sv.Length() > 0 {
		recipe.Servings = extract.FirstInt(extract.NodeText(sv), recipe.Servings)
	}

	return recipe, nil
}
