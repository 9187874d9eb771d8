package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"recipeparser/internal/domain"
	"recipeparser/internal/textparse"
)

// StructuredData is the subset of the schema.org Recipe vocabulary consumed
// from application/ld+json script tags.
type StructuredData struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Image              any             `json:"image"`       // string or array
	RecipeYield        any             `json:"recipeYield"` // string, number or array
	RecipeIngredient   []string        `json:"recipeIngredient"`
	RecipeInstructions []instructionEl `json:"recipeInstructions"`
	CookTime           string          `json:"cookTime"`
	Nutrition          *nutritionData  `json:"nutrition"`
}

type nutritionData struct {
	Calories            string `json:"calories"`
	ProteinContent      string `json:"proteinContent"`
	CarbohydrateContent string `json:"carbohydrateContent"`
	FatContent          string `json:"fatContent"`
}

// instructionEl accepts either a plain string or a {text: ...} object
// (HowToStep entries included).
type instructionEl struct {
	Text string
}

func (e *instructionEl) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = s
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		e.Text = obj.Text
		return nil
	}
	// Unrecognized shapes become empty steps rather than aborting the scan.
	e.Text = ""
	return nil
}

// StructuredRecipe scans the document for ld+json payloads and returns the
// first entry typed "Recipe", or nil if none exists. Malformed JSON in one
// script tag is logged and skipped, never fatal.
func StructuredRecipe(doc *goquery.Document, logger *zap.Logger) *StructuredData {
	var found *StructuredData

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := strings.TrimSpace(s.Text())
		if content == "" {
			return true
		}

		var payload any
		if err := json.Unmarshal([]byte(content), &payload); err != nil {
			logger.Debug("skipping malformed ld+json block", zap.Error(err))
			return true
		}

		for _, item := range flatten(payload) {
			obj, ok := item.(map[string]any)
			if !ok || !isRecipeType(obj["@type"]) {
				continue
			}
			raw, err := json.Marshal(obj)
			if err != nil {
				continue
			}
			var sd StructuredData
			if err := json.Unmarshal(raw, &sd); err != nil {
				logger.Debug("skipping undecodable recipe payload", zap.Error(err))
				continue
			}
			found = &sd
			return false
		}
		return true
	})

	return found
}

// flatten normalizes a payload to a flat list of candidate objects: a bare
// object, a top-level array, or an object carrying a @graph array.
func flatten(payload any) []any {
	switch v := payload.(type) {
	case []any:
		return v
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return append([]any{v}, graph...)
		}
		return []any{v}
	default:
		return nil
	}
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

var leadingIntRe = regexp.MustCompile(`^\s*(\d+)`)

func leadingInt(s string, fallback int) int {
	if m := leadingIntRe.FindStringSubmatch(s); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return fallback
}

func (sd *StructuredData) imageURL() string {
	switch v := sd.Image.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	case map[string]any:
		if s, ok := v["url"].(string); ok {
			return s
		}
	}
	return ""
}

func (sd *StructuredData) servings() int {
	switch v := sd.RecipeYield.(type) {
	case string:
		return leadingInt(v, 4)
	case float64:
		return int(v)
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return leadingInt(s, 4)
			}
			if n, ok := v[0].(float64); ok {
				return int(n)
			}
		}
	}
	return 4
}

// Populate fills a recipe shell from structured data. Every field is
// best-effort; absent values keep the shell's defaults.
func (sd *StructuredData) Populate(r *domain.Recipe) {
	r.Title = sd.Name
	r.Description = sd.Description
	r.ImageURL = sd.imageURL()
	r.CookTime = textparse.ParseDuration(sd.CookTime)
	r.Servings = sd.servings()

	if len(sd.RecipeIngredient) > 0 {
		r.Ingredients = make([]domain.Ingredient, 0, len(sd.RecipeIngredient))
		for _, line := range sd.RecipeIngredient {
			r.Ingredients = append(r.Ingredients, textparse.ParseIngredient(line))
		}
	}

	if len(sd.RecipeInstructions) > 0 {
		r.Steps = make([]domain.Step, 0, len(sd.RecipeInstructions))
		for i, ins := range sd.RecipeInstructions {
			r.Steps = append(r.Steps, textparse.ParseStep(ins.Text, i+1))
		}
	}

	if sd.Nutrition != nil {
		r.NutritionInfo = domain.NutritionInfo{
			Calories: leadingInt(sd.Nutrition.Calories, 0),
			Protein:  leadingInt(sd.Nutrition.ProteinContent, 0),
			Carbs:    leadingInt(sd.Nutrition.CarbohydrateContent, 0),
			Fat:      leadingInt(sd.Nutrition.FatContent, 0),
		}
	}
}
