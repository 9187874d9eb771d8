package domain

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty is a placeholder classification; it is not derived from page
// content and defaults to "medium".
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Ingredient is one parsed ingredient line. Amount 0 means no leading
// quantity could be parsed; Unit is the literal "unit" when no known unit
// token was found.
type Ingredient struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Step is one instruction, ordered 1..N in source order.
type Step struct {
	ID          string   `json:"id"`
	Order       int      `json:"order"`
	Description string   `json:"description"`
	Tips        []string `json:"tips"`
}

type DietaryInfo struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"glutenFree"`
	DairyFree  bool `json:"dairyFree"`
}

type NutritionInfo struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Recipe is the canonical extraction target. Extractors always return a
// fully-populated shape: unknown values are represented by the defaults
// below (cook time 0, servings 4, difficulty medium), never by nil.
type Recipe struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"imageUrl"`
	CookTime      int           `json:"cookTime"` // minutes, 0 = unknown
	Servings      int           `json:"servings"`
	Ingredients   []Ingredient  `json:"ingredients"`
	Steps         []Step        `json:"steps"`
	Difficulty    Difficulty    `json:"difficulty"`
	Cuisine       []string      `json:"cuisine"`
	DietaryInfo   DietaryInfo   `json:"dietaryInfo"`
	NutritionInfo NutritionInfo `json:"nutritionInfo"`
	CreatorID     string        `json:"creatorId"`
	Rating        Rating        `json:"rating"`
	Tags          []string      `json:"tags"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// NewRecipe returns a default-populated recipe shell.
func NewRecipe() *Recipe {
	now := time.Now()
	return &Recipe{
		ID:          uuid.NewString(),
		Servings:    4,
		Ingredients: []Ingredient{},
		Steps:       []Step{},
		Difficulty:  DifficultyMedium,
		Cuisine:     []string{},
		Tags:        []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationResult separates blocking errors from advisory warnings.
// IsValid is true iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	IsValid  bool                `json:"isValid"`
	Errors   []ValidationError   `json:"errors"`
	Warnings []ValidationWarning `json:"warnings"`
}

type ParseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ParseResult is the dispatcher's typed result. Failures are values, not
// errors; the dispatcher never fails across its public boundary.
type ParseResult struct {
	Success bool        `json:"success"`
	Recipe  *Recipe     `json:"recipe,omitempty"`
	Error   *ParseError `json:"error,omitempty"`
}

// ScrapingResult is one extraction attempt, immutable once logged.
type ScrapingResult struct {
	URL              string           `json:"url"`
	ParserName       string           `json:"parserName"`
	Timestamp        time.Time        `json:"timestamp"`
	Duration         int64            `json:"duration"` // milliseconds
	Success          bool             `json:"success"`
	ValidationResult ValidationResult `json:"validationResult"`
	Error            string           `json:"error,omitempty"`
}

type ErrorCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// ParserStats is a rolling aggregate, recomputed from the previous row plus
// one new ScrapingResult. Rows are append-only; the latest by LastRun wins.
type ParserStats struct {
	ParserName      string       `json:"parserName"`
	TotalAttempts   int          `json:"totalAttempts"`
	SuccessRate     float64      `json:"successRate"`     // percentage
	AverageDuration float64      `json:"averageDuration"` // milliseconds
	CommonErrors    []ErrorCount `json:"commonErrors"`
	LastRun         time.Time    `json:"lastRun"`
}
