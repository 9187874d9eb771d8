package sites

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/extract"
	"recipeparser/internal/textparse"
)

type SimplyRecipes struct {
	logger *zap.Logger
}

func NewSimplyRecipes(logger *zap.Logger) *SimplyRecipes {
	return &SimplyRecipes{logger: logger}
}

func (s *SimplyRecipes) Name() string { return "Simply Recipes" }

func (s *SimplyRecipes) CanHandle(rawURL string) bool {
	return extract.HostContains(rawURL, "simplyrecipes.com")
}

func (s *SimplyRecipes) Extract(html, rawURL string) (*domain.Recipe, error) {
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
	if d := doc.Find(".recipe-description").First(); d.Length() > 0 {
		recipe.Description = extract.NodeText(d)
	}
	if img := doc.Find(".primary-image img").First(); img.Length() > 0 {
		if src, ok := img.Attr("src"); ok {
			recipe.ImageURL = src
		}
	}

	doc.Find(".structured-ingredients__list-item").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Ingredients = append(recipe.Ingredients, textparse.ParseIngredient(text))
		}
	})

	doc.Find(".structured-project__step").Each(func(_ int, sel *goquery.Selection) {
		if text := extract.NodeText(sel); text != "" {
			recipe.Steps = append(recipe.Steps, textparse.ParseStep(text, len(recipe.Steps)+1))
		}
	})

	if ct := doc.Find(".total-time .meta-text__data").First(); ct.Length() > 0 {
		recipe.CookTime = textparse.ParseDuration(extract.NodeText(ct))
	}
	if sv := doc.Find(".recipe-serving .meta-text__data").First(); sv.Length() > 0 {
		recipe.Servings = extract.FirstInt(extract.NodeText(sv), recipe.Servings)
	}

	return recipe, nil
}
