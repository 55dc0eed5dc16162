package lexicon

import "testing"

func TestCategorize(t *testing.T) {
	lex := New()

	tests := []struct {
		name string
		want string
	}{
		{"almond milk", "nuts_seeds"}, // nuts_seeds wins over dairy by table order
		{"red lentil", "legumes"},
		{"chicken broth", "meat"}, // meat wins over beverages by table order
		{"smoked salmon", "seafood"},
		{"egg white", "eggs"},
		{"cheddar cheese", "dairy"},
		{"baby spinach", "vegetables"},
		{"granny smith apple", "fruits"},
		{"basmati rice", "grains"},
		{"ground cumin", "spices"},
		{"sunflower oil", "oils_fats"},
		{"brown sugar", "sweeteners"},
		{"orange juice", "fruits"}, // fruit keyword precedes the beverage tier
		{"gelatin sheets", "hidden_animal"},
	}
	for _, tt := range tests {
		if got := lex.Categorize(tt.name, nil); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCategorize_Fallbacks(t *testing.T) {
	lex := New()

	tests := []struct {
		name string
		want string
	}{
		{"madagascar bourbon extract", "flavoring"},
		{"rose essence", "flavoring"},
		{"citric acid", "additive"},
		{"vitamin b12", "additive"},
		{"arrowroot powder", "grains"},
		{"tapioca starch", "grains"},
		{"xyzzyqq", "other"},
	}
	for _, tt := range tests {
		if got := lex.Categorize(tt.name, nil); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
