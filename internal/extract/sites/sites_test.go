package sites

import (
	"testing"

	"go.uber.org/zap"
)

const structuredPage = `<html><head><script type="application/ld+json">
	{"@type": "Recipe", "name": "Lasagna", "recipeYield": "6",
	 "recipeIngredient": ["1 pound ground beef"],
	 "recipeInstructions": ["Layer and bake."], "cookTime": "PT1H"}
</script></head><body></body></html>`

const allRecipesDOMPage = `<html><body>
	<h1 class="headline heading-content">Meat Lasagna</h1>
	<div class="recipe-summary">A family classic.</div>
	<li class="ingredients-item">1 pound ground beef</li>
	<li class="ingredients-item">2 cups mozzarella</li>
	<div class="instructions-section">Brown the beef.</div>
	<div class="instructions-section">Assemble and bake.</div>
	<img class="recipe-image" src="https://img.example.com/lasagna.jpg"/>
	<div class="recipe-meta-item-body">cook: 45 mins</div>
</body></html>`

func TestAllRecipesStructuredDataWins(t *testing.T) {
	e := NewAllRecipes(zap.NewNop())
	recipe, err := e.Extract(structuredPage, "https://www.allrecipes.com/recipe/1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Lasagna" {
		t.Errorf("title = %q", recipe.Title)
	}
	if recipe.CookTime != 60 {
		t.Errorf("cookTime = %d, want 60", recipe.CookTime)
	}
	if recipe.Servings != 6 {
		t.Errorf("servings = %d, want 6", recipe.Servings)
	}
}

func TestAllRecipesDOMFallback(t *testing.T) {
	e := NewAllRecipes(zap.NewNop())
	recipe, err := e.Extract(allRecipesDOMPage, "https://www.allrecipes.com/recipe/1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Meat Lasagna" {
		t.Errorf("title = %q", recipe.Title)
	}
	if recipe.Description != "A family classic." {
		t.Errorf("description = %q", recipe.Description)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("ingredients = %d, want 2", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].Name != "ground beef" || recipe.Ingredients[0].Amount != 1 {
		t.Errorf("first ingredient = %+v", recipe.Ingredients[0])
	}
	if len(recipe.Steps) != 2 || recipe.Steps[1].Order != 2 {
		t.Fatalf("steps = %+v", recipe.Steps)
	}
	if recipe.ImageURL != "https://img.example.com/lasagna.jpg" {
		t.Errorf("image = %q", recipe.ImageURL)
	}
	if recipe.CookTime != 45 {
		t.Errorf("cookTime = %d, want 45", recipe.CookTime)
	}
}

func TestAllRecipesEmptyPageKeepsDefaults(t *testing.T) {
	e := NewAllRecipes(zap.NewNop())
	recipe, err := e.Extract("<html><body></body></html>", "https://www.allrecipes.com/x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe == nil {
		t.Fatal("extract must return a shell, never nil")
	}
	if recipe.Servings != 4 || recipe.Difficulty != "medium" {
		t.Errorf("defaults not preserved: %+v", recipe)
	}
}

func TestExtractionIsIdempotent(t *testing.T) {
	e := NewAllRecipes(zap.NewNop())
	a, _ := e.Extract(allRecipesDOMPage, "https://www.allrecipes.com/recipe/1/")
	b, _ := e.Extract(allRecipesDOMPage, "https://www.allrecipes.com/recipe/1/")
	if a.Title != b.Title || len(a.Ingredients) != len(b.Ingredients) ||
		a.CookTime != b.CookTime || a.Servings != b.Servings {
		t.Error("repeated extraction produced different field values")
	}
}

func TestSeriousEatsDOMFallback(t *testing.T) {
	page := `<html><body>
		<h1 class="recipe-title">French Omelette</h1>
		<ul class="ingredient-list"><li>3 eggs</li><li>1 tbsp butter</li></ul>
		<div class="recipe-procedure-text">Beat the eggs.</div>
		<div class="recipe-meta-item--yield"><span class="recipe-meta-item-body">Serves 2</span></div>
	</body></html>`
	e := NewSeriousEats(zap.NewNop())
	recipe, err := e.Extract(page, "https://www.seriouseats.com/omelette")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "French Omelette" {
		t.Errorf("title = %q", recipe.Title)
	}
	if len(recipe.Ingredients) != 2 {
		t.Errorf("ingredients = %d, want 2", len(recipe.Ingredients))
	}
	if recipe.Servings != 2 {
		t.Errorf("servings = %d, want 2", recipe.Servings)
	}
}

func TestLoveAndLemonsDOMFallback(t *testing.T) {
	page := `<html><body>
		<h1 class="entry-title">Chocolate Chip Cookies</h1>
		<li class="wprm-recipe-ingredient">2 cups flour</li>
		<div class="wprm-recipe-instruction">Cream the butter.</div>
		<span class="wprm-recipe-total-time">25 minutes</span>
		<span class="wprm-recipe-servings">24</span>
	</body></html>`
	e := NewLoveAndLemons(zap.NewNop())
	recipe, err := e.Extract(page, "https://www.loveandlemons.com/cookies/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if recipe.Title != "Chocolate Chip Cookies" {
		t.Errorf("title = %q", recipe.Title)
	}
	if recipe.CookTime != 25 {
		t.Errorf("cookTime = %d, want 25", recipe.CookTime)
	}
	if recipe.Servings != 24 {
		t.Errorf("servings = %d, want 24", recipe.Servings)
	}
}

func TestRegistryDispatchOrder(t *testing.T) {
	reg := DefaultRegistry(zap.NewNop())

	tests := []struct {
		url  string
		name string
	}{
		{"https://www.allrecipes.com/recipe/1/", "AllRecipes"},
		{"https://www.seriouseats.com/omelette", "Serious Eats"},
		{"https://www.simplyrecipes.com/chili/", "Simply Recipes"},
		{"https://www.loveandlemons.com/cookies/", "Love and Lemons"},
		{"https://www.delish.com/some-recipe", "Generic"},
	}
	for _, tt := range tests {
		e := reg.Find(tt.url)
		if e == nil {
			t.Errorf("no extractor for %q", tt.url)
			continue
		}
		if e.Name() != tt.name {
			t.Errorf("Find(%q) = %q, want %q", tt.url, e.Name(), tt.name)
		}
	}

	if e := reg.Find("https://unsupported.example.com/"); e != nil {
		t.Errorf("expected no extractor, got %q", e.Name())
	}
}
