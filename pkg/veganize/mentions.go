package veganize

import (
	"regexp"
	"strings"
)

// Mention extraction is three passes. Recipe lines that open with a quantity
// (optionally behind a list marker) yield the text after the unit as one
// candidate. Prose is then scanned for a qualifying word directly in front of
// a high-signal noun ("goat cheese", "fish sauce") so compound names are
// looked up whole before their suffix word alone, and finally for direct
// whole-word hits against the substitution target list, plural forms
// included. Results keep first-seen order and are deduplicated
// case-insensitively.

var (
	listMarkerRe = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	quantityRe   = regexp.MustCompile(`^\s*(?:\d+(?:[./]\d+)?(?:\s*(?:-|to)\s*\d+(?:[./]\d+)?)?|[¼½¾⅓⅔⅛⅜⅝⅞])\s*`)
	unitRe       = regexp.MustCompile(`(?i)^(?:cups?|tablespoons?|tbsp|teaspoons?|tsp|ounces?|oz|pounds?|lbs?|grams?|g|kilograms?|kg|milliliters?|ml|liters?|l|pinch(?:es)?|dash(?:es)?|cloves?|slices?|sticks?|cans?|packages?|handfuls?)\.?\s+`)
	// suffixNounRe pairs a qualifying word with an ingredient head noun that
	// usually names a compound ("oat milk", "chicken broth").
	suffixNounRe = regexp.MustCompile(`(?i)\b([a-z]+)\s+(milk|cheese|cream|butter|yogurt|yoghurt|sauce|broth|stock)\b`)
)

// suffixSkipWords are qualifiers that carry no ingredient identity; the noun
// is left to the direct scan instead of forming a bogus compound.
var suffixSkipWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "and": true, "or": true,
	"with": true, "some": true, "more": true, "any": true, "no": true,
	"in": true, "to": true, "add": true, "your": true,
}

// buildScanRegexp compiles the direct-scan alternation from the substitution
// targets. Targets are quoted verbatim in table order, which already places
// longer keys before keys they contain, so "sour cream" wins over "cream".
func buildScanRegexp(targets []string) *regexp.Regexp {
	quoted := make([]string, 0, len(targets))
	for _, t := range targets {
		if t == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if len(quoted) == 0 {
		return regexp.MustCompile(`\b\z`)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)(?:es|s)?\b`)
}

// extractMentions returns the candidate ingredient mentions of a recipe text.
func extractMentions(text string, scan *regexp.Regexp) []string {
	seen := make(map[string]bool)
	var mentions []string
	add := func(m string) {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" || seen[m] {
			return
		}
		seen[m] = true
		mentions = append(mentions, m)
	}

	for _, line := range strings.Split(text, "\n") {
		line = listMarkerRe.ReplaceAllString(line, "")
		if rest, ok := trimQuantity(line); ok {
			add(trimIngredient(rest))
		}
	}
	for _, m := range suffixNounRe.FindAllStringSubmatch(text, -1) {
		qualifier := strings.ToLower(m[1])
		if suffixSkipWords[qualifier] || unitRe.MatchString(qualifier+" ") {
			continue
		}
		add(m[1] + " " + m[2])
	}
	for _, m := range scan.FindAllString(text, -1) {
		add(m)
	}
	return mentions
}

// trimQuantity strips a leading amount and optional unit. Lines without a
// leading amount are not ingredient lines and report false.
func trimQuantity(line string) (string, bool) {
	loc := quantityRe.FindStringIndex(line)
	if loc == nil || loc[1] == len(line) {
		return "", false
	}
	rest := line[loc[1]:]
	if uloc := unitRe.FindStringIndex(rest); uloc != nil {
		rest = rest[uloc[1]:]
	}
	rest = strings.TrimPrefix(rest, "of ")
	return rest, strings.TrimSpace(rest) != ""
}

// trimIngredient cuts preparation notes off an ingredient phrase: everything
// from the first comma, parenthesis or joining word onward is dropped.
func trimIngredient(s string) string {
	for _, sep := range []string{",", "(", " for ", " or ", " plus "} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
