// Package validate is the post-extraction quality gate. Errors block a
// save; warnings are advisory quality hints and never do.
package validate

import (
	"fmt"

	"recipeparser/internal/domain"
)

const (
	CodeMissingTitle       = "MISSING_TITLE"
	CodeNoIngredients      = "NO_INGREDIENTS"
	CodeNoSteps            = "NO_STEPS"
	CodeInvalidIngredient  = "INVALID_INGREDIENT"
	CodeInvalidStep        = "INVALID_STEP"
	CodeMissingDescription = "MISSING_DESCRIPTION"
	CodeMissingImage       = "MISSING_IMAGE"
	CodeMissingCookTime    = "MISSING_COOK_TIME"
)

// ValidateRecipe checks a recipe's shape. Total over any Recipe value:
// it terminates and never panics, whatever the input.
func ValidateRecipe(recipe domain.Recipe) domain.ValidationResult {
	errors := []domain.ValidationError{}
	warnings := []domain.ValidationWarning{}

	if recipe.Title == "" {
		errors = append(errors, domain.ValidationError{
			Field:   "title",
			Message: "Recipe title is required",
			Code:    CodeMissingTitle,
		})
	}

	if len(recipe.Ingredients) == 0 {
		errors = append(errors, domain.ValidationError{
			Field:   "ingredients",
			Message: "Recipe must have at least one ingredient",
			Code:    CodeNoIngredients,
		})
	}

	if len(recipe.Steps) == 0 {
		errors = append(errors, domain.ValidationError{
			Field:   "steps",
			Message: "Recipe must have at least one step",
			Code:    CodeNoSteps,
		})
	}

	for i, ingredient := range recipe.Ingredients {
		if ingredient.Name == "" {
			errors = append(errors, domain.ValidationError{
				Field:   fmt.Sprintf("ingredients[%d].name", i),
				Message: "Ingredient name is required",
				Code:    CodeInvalidIngredient,
			})
		}
	}

	for i, step := range recipe.Steps {
		if step.Description == "" {
			errors = append(errors, domain.ValidationError{
				Field:   fmt.Sprintf("steps[%d].description", i),
				Message: "Step description is required",
				Code:    CodeInvalidStep,
			})
		}
	}

	if recipe.Description == "" {
		warnings = append(warnings, domain.ValidationWarning{
			Field:   "description",
			Message: "Recipe description is recommended",
			Code:    CodeMissingDescription,
		})
	}

	if recipe.ImageURL == "" {
		warnings = append(warnings, domain.ValidationWarning{
			Field:   "imageUrl",
			Message: "Recipe image is recommended",
			Code:    CodeMissingImage,
		})
	}

	if recipe.CookTime == 0 {
		warnings = append(warnings, domain.ValidationWarning{
			Field:   "cookTime",
			Message: "Cook time should be specified",
			Code:    CodeMissingCookTime,
		})
	}

	return domain.ValidationResult{
		IsValid:  len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}
