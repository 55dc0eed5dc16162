package lexicon

import "strings"

// CategoryOther is the terminal fallback label.
const CategoryOther = "other"

// Categorize assigns one category label from the taxonomy. The category table
// is scanned in declaration order and the first category with a matching
// keyword wins. Names that miss the whole table go through a small set of
// fallback heuristics before defaulting to "other".
func (l *Lexicon) Categorize(name string, sctx *SourceContext) string {
	t := l.tables()

	haystack := name
	if sctx != nil && sctx.Description != "" {
		haystack = name + " " + fold(sctx.Description)
	}

	for _, ck := range t.Categories {
		if _, ok := firstMatch(haystack, ck.Keywords); ok {
			return ck.Category
		}
	}

	switch {
	case strings.Contains(name, "extract") || strings.Contains(name, "essence"):
		return "flavoring"
	case strings.Contains(name, "acid") || strings.Contains(name, "vitamin"):
		return "additive"
	case strings.Contains(name, "powder") || strings.Contains(name, "flour") || strings.Contains(name, "starch"):
		return "grains"
	}
	return CategoryOther
}
