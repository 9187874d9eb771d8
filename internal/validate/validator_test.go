package validate

import (
	"testing"

	"recipeparser/internal/domain"
)

func completeRecipe() domain.Recipe {
	r := domain.NewRecipe()
	r.Title = "Pancakes"
	r.Description = "Fluffy."
	r.ImageURL = "https://img.example.com/p.jpg"
	r.CookTime = 20
	r.Ingredients = []domain.Ingredient{{ID: "1", Name: "flour", Amount: 2, Unit: "cups"}}
	r.Steps = []domain.Step{{ID: "1", Order: 1, Description: "Mix.", Tips: []string{}}}
	return *r
}

func TestValidateCompleteRecipe(t *testing.T) {
	res := ValidateRecipe(completeRecipe())
	if !res.IsValid {
		t.Fatalf("expected valid, errors: %+v", res.Errors)
	}
	if len(res.Errors) != 0 || len(res.Warnings) != 0 {
		t.Errorf("expected clean result, got %+v", res)
	}
}

func TestValidateEmptyRecipe(t *testing.T) {
	res := ValidateRecipe(domain.Recipe{})
	if res.IsValid {
		t.Fatal("empty recipe must be invalid")
	}

	codes := map[string]bool{}
	for _, e := range res.Errors {
		codes[e.Code] = true
	}
	for _, want := range []string{CodeMissingTitle, CodeNoIngredients, CodeNoSteps} {
		if !codes[want] {
			t.Errorf("missing error code %s", want)
		}
	}

	warnCodes := map[string]bool{}
	for _, w := range res.Warnings {
		warnCodes[w.Code] = true
	}
	for _, want := range []string{CodeMissingDescription, CodeMissingImage, CodeMissingCookTime} {
		if !warnCodes[want] {
			t.Errorf("missing warning code %s", want)
		}
	}
}

func TestValidatePerItemFieldPaths(t *testing.T) {
	r := completeRecipe()
	r.Ingredients = append(r.Ingredients, domain.Ingredient{ID: "2", Unit: "unit"})
	r.Steps = append(r.Steps, domain.Step{ID: "2", Order: 2})

	res := ValidateRecipe(r)
	if res.IsValid {
		t.Fatal("expected invalid")
	}

	fields := map[string]string{}
	for _, e := range res.Errors {
		fields[e.Field] = e.Code
	}
	if fields["ingredients[1].name"] != CodeInvalidIngredient {
		t.Errorf("expected INVALID_INGREDIENT at ingredients[1].name, got %v", fields)
	}
	if fields["steps[1].description"] != CodeInvalidStep {
		t.Errorf("expected INVALID_STEP at steps[1].description, got %v", fields)
	}
}

func TestWarningsNeverAffectValidity(t *testing.T) {
	r := completeRecipe()
	r.Description = ""
	r.ImageURL = ""
	r.CookTime = 0

	res := ValidateRecipe(r)
	if !res.IsValid {
		t.Fatal("warnings must not invalidate a recipe")
	}
	if len(res.Warnings) != 3 {
		t.Errorf("warnings = %d, want 3", len(res.Warnings))
	}
}

func TestValidatorTotality(t *testing.T) {
	pathological := []domain.Recipe{
		{},
		{Title: "x", Ingredients: []domain.Ingredient{{Amount: -5}}, Steps: []domain.Step{{Order: -1}}},
		{Title: "x", Ingredients: make([]domain.Ingredient, 0), Steps: nil, CookTime: -10, Servings: -4},
	}
	for i, r := range pathological {
		res := ValidateRecipe(r)
		if res.IsValid != (len(res.Errors) == 0) {
			t.Errorf("case %d: isValid/errors partition violated", i)
		}
	}
}

func TestErrorWarningFieldsDisjoint(t *testing.T) {
	res := ValidateRecipe(domain.Recipe{})
	errFields := map[string]bool{}
	for _, e := range res.Errors {
		errFields[e.Field] = true
	}
	for _, w := range res.Warnings {
		if errFields[w.Field] {
			t.Errorf("field %q appears in both errors and warnings", w.Field)
		}
	}
}
