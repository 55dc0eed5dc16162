package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
	"github.com/vwap/veganizer/pkg/veganize"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "ingredients.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	seed := []*store.Record{
		{Name: "milk", Category: "dairy", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"oatmilk", "soymilk"}},
		{Name: "egg", Category: "eggs", Source: store.SourceCurated, Confidence: 0.9,
			Substitutes: []string{"flaxseed meal", "applesauce"}},
		{Name: "lentils", Vegan: true, Category: "legumes", Source: store.SourceCurated, Confidence: 0.8},
	}
	for _, rec := range seed {
		if _, err := st.Upsert(ctx, rec); err != nil {
			t.Fatalf("seed %s: %v", rec.Name, err)
		}
	}

	lex := lexicon.New()
	return NewRouter(veganize.New(st, lex, slog.Default()), st, lex, slog.Default())
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("%s %s: invalid JSON response %q", method, path, w.Body.String())
		}
	}
	return w, decoded
}

func TestHandleVeganize(t *testing.T) {
	h := testRouter(t)

	w, resp := doJSON(t, h, "POST", "/v1/veganize", `{"recipe": "2 cups milk\n1 cup lentils"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if got := resp["rewritten_text"].(string); !strings.Contains(got, "oatmilk") {
		t.Errorf("rewritten_text = %q, want oatmilk substitution", got)
	}
	subs := resp["substitutions"].([]any)
	if len(subs) != 1 {
		t.Errorf("expected 1 substitution, got %v", subs)
	}
}

func TestHandleVeganize_BadBody(t *testing.T) {
	h := testRouter(t)

	w, _ := doJSON(t, h, "POST", "/v1/veganize", "not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	w, _ = doJSON(t, h, "POST", "/v1/veganize", `{"text": ""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty text: status = %d, want 400", w.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	h := testRouter(t)

	w, resp := doJSON(t, h, "GET", "/v1/ingredients/search?q=milk", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	results := resp["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %v", results)
	}

	w, _ = doJSON(t, h, "GET", "/v1/ingredients/search", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing term: status = %d, want 400", w.Code)
	}

	// No match is an empty list, not an error.
	w, resp = doJSON(t, h, "GET", "/v1/ingredients/search?q=zzz", "")
	if w.Code != http.StatusOK || len(resp["results"].([]any)) != 0 {
		t.Errorf("no-match search: status %d, body %s", w.Code, w.Body.String())
	}
}

func TestHandleList(t *testing.T) {
	h := testRouter(t)

	w, resp := doJSON(t, h, "GET", "/v1/ingredients?vegan=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if total := resp["total"].(float64); total != 1 {
		t.Errorf("vegan filter total = %v, want 1", total)
	}

	w, resp = doJSON(t, h, "GET", "/v1/ingredients?page_size=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if pages := resp["total_pages"].(float64); pages != 2 {
		t.Errorf("total_pages = %v, want 2", pages)
	}
}

func TestHandleUpsert(t *testing.T) {
	h := testRouter(t)

	w, resp := doJSON(t, h, "POST", "/v1/ingredients", `{"name": "Gelatin"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp["id"] != "gelatin" {
		t.Errorf("id = %v, want normalized name", resp["id"])
	}
	rec := resp["record"].(map[string]any)
	if rec["name"] != "gelatin" || rec["vegan"] != false || rec["source"] != "manual" {
		t.Errorf("stored record wrong: %v", rec)
	}
	if subs := rec["substitutes"].([]any); len(subs) == 0 {
		t.Error("gelatin got no substitutes from the lexicon")
	}

	// Unclassifiable without an explicit flag.
	w, _ = doJSON(t, h, "POST", "/v1/ingredients", `{"name": "xyzzyqq"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unclassifiable: status = %d, want 422", w.Code)
	}

	// Explicit flag makes it storable.
	w, resp = doJSON(t, h, "POST", "/v1/ingredients", `{"name": "xyzzyqq", "vegan": true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("flagged: status = %d, body %s", w.Code, w.Body.String())
	}
	rec = resp["record"].(map[string]any)
	if rec["vegan"] != true || rec["confidence"].(float64) != 1.0 {
		t.Errorf("flagged record wrong: %v", rec)
	}
}

func TestHandleStatsAndHealth(t *testing.T) {
	h := testRouter(t)

	w, resp := doJSON(t, h, "GET", "/v1/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	if resp["total"].(float64) != 3 || resp["vegan"].(float64) != 1 {
		t.Errorf("stats = %v", resp)
	}

	w, resp = doJSON(t, h, "GET", "/v1/health", "")
	if w.Code != http.StatusOK || resp["status"] != "ok" {
		t.Errorf("health: status %d, body %v", w.Code, resp)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/veganize", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}
}
