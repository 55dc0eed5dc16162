package veganize

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
)

func testVeganizer(t *testing.T) (*Veganizer, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ingredients.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	seed := []*store.Record{
		{Name: "milk", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"oatmilk", "soymilk", "almond drink"}},
		{Name: "egg", Category: "eggs", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"flaxseed meal", "applesauce", "silken tofu"}},
		{Name: "butter", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"margarine", "coconut oil"}},
		{Name: "sour cream", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"coconut yogurt", "cashew sour cream"}},
		{Name: "cream", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"coconut cream", "cashew cream"}},
		{Name: "brown rice", Vegan: true, Category: "grains", Source: store.SourceCurated, Confidence: 0.8},
	}
	ctx := context.Background()
	for _, rec := range seed {
		if _, err := st.Upsert(ctx, rec); err != nil {
			t.Fatalf("seed %s: %v", rec.Name, err)
		}
	}
	return New(st, lexicon.New(), slog.Default()), st
}

func TestVeganize_Recipe(t *testing.T) {
	v, _ := testVeganizer(t)

	text := "2 cups milk\n3 eggs\n1/2 cup butter, softened\n2 cups flour"
	res, err := v.Veganize(context.Background(), text)
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}

	if len(res.Substitutions) != 3 {
		t.Fatalf("expected 3 substitutions, got %d: %+v", len(res.Substitutions), res.Substitutions)
	}
	if leftover := regexp.MustCompile(`(?i)\b(milk|eggs?|butter)\b`); leftover.MatchString(res.RewrittenText) {
		t.Errorf("original ingredient survives rewrite: %q", res.RewrittenText)
	}
	if !strings.Contains(res.RewrittenText, "2 cups flour") {
		t.Errorf("untouched line was altered: %q", res.RewrittenText)
	}

	// The milk preference table makes oatmilk the first pick.
	if res.Substitutions[0].From != "milk" || res.Substitutions[0].To != "oatmilk" {
		t.Errorf("milk substitution wrong: %+v", res.Substitutions[0])
	}
	if got := res.Substitutions[0].Alternatives; len(got) != 2 {
		t.Errorf("alternatives should exclude the pick: %v", got)
	}
	if len(res.DetectedMentions) != 4 {
		t.Errorf("DetectedMentions = %v, want 4 mentions", res.DetectedMentions)
	}
}

func TestVeganize_Prose(t *testing.T) {
	v, _ := testVeganizer(t)

	// No ingredient-list structure at all: the direct scan must still find
	// every non-vegan word.
	res, err := v.Veganize(context.Background(), "Mix 2 cups milk with 3 eggs and 1/2 cup butter")
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	if len(res.Substitutions) != 3 {
		t.Fatalf("expected 3 substitutions, got %+v", res.Substitutions)
	}
	if leftover := regexp.MustCompile(`(?i)\b(milk|eggs?|butter)\b`); leftover.MatchString(res.RewrittenText) {
		t.Errorf("original ingredient survives rewrite: %q", res.RewrittenText)
	}
}

func TestVeganize_NoOp(t *testing.T) {
	v, _ := testVeganizer(t)

	for _, text := range []string{
		"1 cup brown rice\n2 cups water",
		"2 cups rice, 1 cup lentils, olive oil",
	} {
		res, err := v.Veganize(context.Background(), text)
		if err != nil {
			t.Fatalf("Veganize(%q): %v", text, err)
		}
		if len(res.Substitutions) != 0 {
			t.Errorf("unexpected substitutions for %q: %+v", text, res.Substitutions)
		}
		if res.RewrittenText != text {
			t.Errorf("vegan recipe was altered: %q", res.RewrittenText)
		}
	}
}

func TestVeganize_Deterministic(t *testing.T) {
	v, _ := testVeganizer(t)
	ctx := context.Background()

	text := "2 cups milk\n3 eggs"
	first, err := v.Veganize(ctx, text)
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	second, err := v.Veganize(ctx, text)
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	if first.RewrittenText != second.RewrittenText || len(first.Substitutions) != len(second.Substitutions) {
		t.Errorf("veganize not deterministic: %q vs %q", first.RewrittenText, second.RewrittenText)
	}
}

func TestVeganize_OverlappingTargets(t *testing.T) {
	v, _ := testVeganizer(t)

	res, err := v.Veganize(context.Background(), "1 cup sour cream")
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	if len(res.Substitutions) != 1 || res.Substitutions[0].From != "sour cream" {
		t.Fatalf("expected a single sour cream substitution, got %+v", res.Substitutions)
	}
	if res.RewrittenText != "1 cup coconut yogurt" {
		t.Errorf("RewrittenText = %q", res.RewrittenText)
	}
}

func TestVeganize_CompoundMention(t *testing.T) {
	v, st := testVeganizer(t)
	ctx := context.Background()

	// A specific compound record must win over the record for its last word.
	seed := []*store.Record{
		{Name: "cheese", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"nutritional yeast", "cashew cheese"}},
		{Name: "goat cheese", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"almond feta"}},
	}
	for _, rec := range seed {
		if _, err := st.Upsert(ctx, rec); err != nil {
			t.Fatalf("seed %s: %v", rec.Name, err)
		}
	}

	res, err := v.Veganize(ctx, "Crumble the goat cheese over the salad.")
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	if len(res.Substitutions) == 0 || res.Substitutions[0].From != "goat cheese" || res.Substitutions[0].To != "almond feta" {
		t.Fatalf("compound ingredient not resolved whole: %+v", res.Substitutions)
	}
	if res.RewrittenText != "Crumble the almond feta over the salad." {
		t.Errorf("RewrittenText = %q", res.RewrittenText)
	}
}

func TestVeganize_CasePreserved(t *testing.T) {
	v, _ := testVeganizer(t)

	res, err := v.Veganize(context.Background(), "Milk makes the sauce rich.")
	if err != nil {
		t.Fatalf("Veganize: %v", err)
	}
	if !strings.HasPrefix(res.RewrittenText, "Oatmilk ") {
		t.Errorf("leading capital lost: %q", res.RewrittenText)
	}
}

func TestVeganize_StoreUnavailable(t *testing.T) {
	v, st := testVeganizer(t)
	st.Close()

	_, err := v.Veganize(context.Background(), "2 cups milk")
	if !errors.Is(err, store.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
