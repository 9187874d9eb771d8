package textparse

import "testing"

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		amount float64
		unit   string
		want   string
	}{
		{"amount and unit", "2 cups flour", 2, "cups", "flour"},
		{"no amount", "Salt to taste", 0, "unit", "Salt to taste"},
		{"decimal amount", "1.5 tbsp olive oil", 1.5, "tbsp", "olive oil"},
		{"metric unit", "200 g butter", 200, "g", "butter"},
		{"singular unit", "1 pound ground beef", 1, "pound", "ground beef"},
		{"range keeps leading number", "1 - 2 tsp vanilla", 1, "tsp", "vanilla"},
		{"fraction keeps numerator", "1/2 cup sugar", 1, "cup", "sugar"},
		{"bare number", "2 eggs", 2, "unit", "eggs"},
		{"empty", "", 0, "unit", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIngredient(tt.text)
			if got.Amount != tt.amount {
				t.Errorf("amount = %v, want %v", got.Amount, tt.amount)
			}
			if got.Unit != tt.unit {
				t.Errorf("unit = %q, want %q", got.Unit, tt.unit)
			}
			if got.Name != tt.want {
				t.Errorf("name = %q, want %q", got.Name, tt.want)
			}
			if got.ID == "" {
				t.Error("expected generated id")
			}
		})
	}
}

func TestParseIngredientIDsDiffer(t *testing.T) {
	a := ParseIngredient("1 cup sugar")
	b := ParseIngredient("1 cup sugar")
	if a.ID == b.ID {
		t.Error("expected distinct ids per call")
	}
}

func TestParseStep(t *testing.T) {
	s := ParseStep("  Mix the dry ingredients.  ", 3)
	if s.Description != "Mix the dry ingredients." {
		t.Errorf("description = %q", s.Description)
	}
	if s.Order != 3 {
		t.Errorf("order = %d, want 3", s.Order)
	}
	if s.Tips == nil || len(s.Tips) != 0 {
		t.Errorf("tips should be empty, got %v", s.Tips)
	}
}
