package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

const recipeLDJSON = `{
	"@type": "Recipe",
	"name": "Chocolate Cake",
	"description": "Rich and moist.",
	"image": ["https://img.example.com/cake.jpg", "https://img.example.com/alt.jpg"],
	"recipeYield": "8 servings",
	"cookTime": "PT45M",
	"recipeIngredient": ["2 cups flour", "1 cup sugar"],
	"recipeInstructions": [
		"Preheat the oven.",
		{"@type": "HowToStep", "text": "Mix and bake."}
	],
	"nutrition": {
		"calories": "320 calories",
		"proteinContent": "5 g",
		"carbohydrateContent": "40 g",
		"fatContent": "12 g"
	}
}`

func TestStructuredRecipe(t *testing.T) {
	html := `<html><head><script type="application/ld+json">` + recipeLDJSON + `</script></head><body></body></html>`
	sd := StructuredRecipe(docFrom(t, html), zap.NewNop())
	if sd == nil {
		t.Fatal("expected structured data")
	}
	if sd.Name != "Chocolate Cake" {
		t.Errorf("name = %q", sd.Name)
	}

	recipe := domain.NewRecipe()
	sd.Populate(recipe)

	if recipe.Title != "Chocolate Cake" || recipe.Description != "Rich and moist." {
		t.Errorf("unexpected title/description: %q / %q", recipe.Title, recipe.Description)
	}
	if recipe.ImageURL != "https://img.example.com/cake.jpg" {
		t.Errorf("image = %q, want first of array", recipe.ImageURL)
	}
	if recipe.CookTime != 45 {
		t.Errorf("cookTime = %d, want 45", recipe.CookTime)
	}
	if recipe.Servings != 8 {
		t.Errorf("servings = %d, want 8", recipe.Servings)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("ingredients = %d, want 2", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].Amount != 2 || recipe.Ingredients[0].Name != "flour" {
		t.Errorf("first ingredient = %+v", recipe.Ingredients[0])
	}
	if len(recipe.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(recipe.Steps))
	}
	if recipe.Steps[0].Order != 1 || recipe.Steps[1].Order != 2 {
		t.Errorf("step order = %d, %d", recipe.Steps[0].Order, recipe.Steps[1].Order)
	}
	if recipe.Steps[1].Description != "Mix and bake." {
		t.Errorf("HowToStep text = %q", recipe.Steps[1].Description)
	}
	if recipe.NutritionInfo.Calories != 320 || recipe.NutritionInfo.Fat != 12 {
		t.Errorf("nutrition = %+v", recipe.NutritionInfo)
	}
}

func TestStructuredRecipeSkipsMalformedBlocks(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{not json at all</script>
		<script type="application/ld+json">[{"@type": "Article"}, {"@type": "Recipe", "name": "Found"}]</script>
	</head></html>`
	sd := StructuredRecipe(docFrom(t, html), zap.NewNop())
	if sd == nil || sd.Name != "Found" {
		t.Fatalf("expected recipe from second block, got %+v", sd)
	}
}

func TestStructuredRecipeGraph(t *testing.T) {
	html := `<html><head><script type="application/ld+json">
		{"@context": "https://schema.org", "@graph": [
			{"@type": "WebPage"},
			{"@type": ["Recipe", "NewsArticle"], "name": "Graph Recipe"}
		]}
	</script></head></html>`
	sd := StructuredRecipe(docFrom(t, html), zap.NewNop())
	if sd == nil || sd.Name != "Graph Recipe" {
		t.Fatalf("expected recipe from @graph, got %+v", sd)
	}
}

func TestStructuredRecipeNone(t *testing.T) {
	html := `<html><head><script type="application/ld+json">{"@type": "Article"}</script></head></html>`
	if sd := StructuredRecipe(docFrom(t, html), zap.NewNop()); sd != nil {
		t.Fatalf("expected nil, got %+v", sd)
	}
}

func TestPopulateDefaults(t *testing.T) {
	sd := &StructuredData{Name: "Bare"}
	recipe := domain.NewRecipe()
	sd.Populate(recipe)
	if recipe.Servings != 4 {
		t.Errorf("servings = %d, want default 4", recipe.Servings)
	}
	if recipe.CookTime != 0 {
		t.Errorf("cookTime = %d, want 0", recipe.CookTime)
	}
	if recipe.Ingredients == nil || recipe.Steps == nil {
		t.Error("ingredient/step slices must stay non-nil")
	}
}
