package lexicon

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	langPrefixRe = regexp.MustCompile(`^[a-z]{2}:\s*`)
	asideRe      = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]`)
	spaceRe      = regexp.MustCompile(`\s+`)
	// UPC/GTIN/NDB style identifiers that leak in from product exports.
	codeRe = regexp.MustCompile(`^(?:upc|gtin|ean|ndb)?\s*#?\d[\d\s-]*$`)
)

// MinNameLen is the lower bound on a normalized name; anything shorter is
// treated as parsing garbage.
const MinNameLen = 2

// fold lowercases and strips accents (Crème fraîche -> creme fraiche).
func fold(s string) string {
	result, _, _ := transform.String(stripAccents, strings.ToLower(s))
	return result
}

// Normalize cleans a raw ingredient string into its canonical store key.
// The second return is false when the input does not reduce to a plausible
// ingredient name. Normalize is pure and idempotent.
func (l *Lexicon) Normalize(raw string) (string, bool) {
	t := l.tables()

	s := fold(raw)
	s = langPrefixRe.ReplaceAllString(s, "")
	s = asideRe.ReplaceAllString(s, " ")

	// Comma-separated qualifiers are discarded; the first clause is the name.
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}

	s = stripModifiers(s, t.Modifiers)
	s = spaceRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, " -.")

	if len(s) < MinNameLen || len(s) > t.MaxNameLen {
		return "", false
	}
	if codeRe.MatchString(s) || !strings.ContainsFunc(s, unicode.IsLetter) {
		return "", false
	}
	return s, true
}

// stripModifiers removes descriptive qualifiers as whole words, multi-word
// modifiers first so "reduced fat" goes before "fat" could split it.
func stripModifiers(s string, modifiers []string) string {
	words := strings.Fields(s)
	for _, m := range modifiers {
		mw := strings.Fields(m)
		if len(mw) == 0 {
			continue
		}
		words = dropRun(words, mw)
	}
	return strings.Join(words, " ")
}

// dropRun removes every occurrence of the word run from words.
func dropRun(words, run []string) []string {
	out := words[:0:0]
	for i := 0; i < len(words); {
		if matchesRun(words[i:], run) {
			i += len(run)
			continue
		}
		out = append(out, words[i])
		i++
	}
	return out
}

func matchesRun(words, run []string) bool {
	if len(words) < len(run) {
		return false
	}
	for i, w := range run {
		if words[i] != w {
			return false
		}
	}
	return true
}
