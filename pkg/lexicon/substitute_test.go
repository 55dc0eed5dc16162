package lexicon

import (
	"slices"
	"testing"
)

func TestSubstitutes(t *testing.T) {
	lex := New()

	tests := []struct {
		name  string
		vegan bool
		want  []string
	}{
		{"milk", false, []string{"oatmilk", "soymilk", "almond drink", "coconut drink"}},
		{"butter", false, []string{"margarine", "coconut oil", "olive oil"}},
		{"tofu", true, nil},
		// substring containment against table keys, table order tie-break
		{"sour cream", false, []string{"coconut yogurt", "cashew sour cream", "silken tofu blend"}},
		{"whole cow milk", false, []string{"oatmilk", "soymilk", "almond drink", "coconut drink"}},
		// non-vegan with no known alternative: empty, not an error
		{"mystery carcass extract", false, nil},
	}
	for _, tt := range tests {
		got := lex.Substitutes(tt.name, tt.vegan)
		if !slices.Equal(got, tt.want) {
			t.Errorf("Substitutes(%q, %v) = %v, want %v", tt.name, tt.vegan, got, tt.want)
		}
	}
}

func TestSubstitutes_ExactBeforeContainment(t *testing.T) {
	lex := New()

	// "sour cream" contains the key "cream" too; the exact entry must win.
	got := lex.Substitutes("sour cream", false)
	if len(got) == 0 || got[0] != "coconut yogurt" {
		t.Errorf("exact key lost to containment: got %v", got)
	}
}

func TestBestSubstitute(t *testing.T) {
	lex := New()

	tests := []struct {
		candidates []string
		original   string
		want       string
	}{
		// preference intersection, preference-table order preserved
		{[]string{"soymilk", "oatmilk"}, "milk", "oatmilk"},
		// no preference entry: first declared candidate
		{[]string{"agar agar", "pectin"}, "gelatin", "agar agar"},
		// preference entry with no intersection: first candidate
		{[]string{"cashew cream"}, "milk", "cashew cream"},
		{nil, "milk", ""},
	}
	for _, tt := range tests {
		if got := lex.BestSubstitute(tt.candidates, tt.original); got != tt.want {
			t.Errorf("BestSubstitute(%v, %q) = %q, want %q", tt.candidates, tt.original, got, tt.want)
		}
	}
}

func TestReload_Overlay(t *testing.T) {
	lex := New()

	overlay := `
non_vegan:
  - ambergris
substitutions:
  - name: ambergris
    substitutes: ["labdanum"]
`
	path := writeTempFile(t, "overlay.yaml", overlay)
	if err := lex.Reload(path); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if got := lex.Classify("ambergris", nil); got.Status != StatusNonVegan {
		t.Errorf("overlay keyword not applied: %s", got.Status)
	}
	if got := lex.Substitutes("ambergris", false); !slices.Equal(got, []string{"labdanum"}) {
		t.Errorf("overlay substitution not applied: %v", got)
	}

	// Built-ins must survive the overlay.
	if got := lex.Classify("milk", nil); got.Status != StatusNonVegan {
		t.Errorf("built-in keyword lost after overlay: %s", got.Status)
	}

	// Empty path resets to built-ins alone.
	if err := lex.Reload(""); err != nil {
		t.Fatalf("Reload reset: %v", err)
	}
	if got := lex.Classify("ambergris", nil); got.Status != StatusUnknown {
		t.Errorf("overlay survived reset: %s", got.Status)
	}
}
