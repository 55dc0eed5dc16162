// Package veganize rewrites recipe text by swapping detected non-vegan
// ingredients for plant-based substitutes backed by the record store.
package veganize

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
)

// searchLimit bounds the store lookup per mention; the first non-vegan record
// with substitutes within this window wins.
const searchLimit = 5

// Substitution is one applied ingredient swap.
type Substitution struct {
	From         string   `json:"from"`
	To           string   `json:"to"`
	Alternatives []string `json:"alternatives,omitempty"`
	Category     string   `json:"category"`
	Confidence   float64  `json:"confidence"`
}

// Result is the outcome of one Veganize call.
type Result struct {
	RewrittenText    string         `json:"rewritten_text"`
	Substitutions    []Substitution `json:"substitutions"`
	DetectedMentions []string       `json:"detected_mentions"`
	ElapsedMS        int64          `json:"elapsed_ms"`
}

// Veganizer resolves recipe mentions against the record store and applies
// substitutions from the lexicon tables.
type Veganizer struct {
	store  *store.Store
	lex    *lexicon.Lexicon
	logger *slog.Logger
}

// New wires a veganizer over a record store and a lexicon.
func New(st *store.Store, lex *lexicon.Lexicon, logger *slog.Logger) *Veganizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Veganizer{store: st, lex: lex, logger: logger}
}

// Veganize extracts ingredient mentions from text, resolves each against the
// store and rewrites the text with the best substitute for every non-vegan
// hit. Mentions that resolve to nothing, or to vegan or substitute-less
// records, are silently left alone; only store unavailability fails the call.
// The same input against the same store and tables always yields the same
// output.
func (v *Veganizer) Veganize(ctx context.Context, text string) (*Result, error) {
	start := time.Now()

	// The scan regexp is rebuilt per call so lexicon overlay reloads take
	// effect without restarting.
	mentions := extractMentions(text, buildScanRegexp(v.lex.SubstitutionTargets()))
	res := &Result{RewrittenText: text, DetectedMentions: mentions}

	resolved := make(map[string]bool)
	for _, m := range mentions {
		name, ok := v.lex.Normalize(m)
		if !ok {
			continue
		}
		records, err := v.store.Search(ctx, name, searchLimit)
		if err != nil {
			return nil, fmt.Errorf("resolve mention %q: %w", name, err)
		}

		var hit *store.Record
		for _, r := range records {
			if !r.Vegan && len(r.Substitutes) > 0 {
				hit = r
				break
			}
		}
		if hit == nil || resolved[hit.Name] {
			continue
		}
		resolved[hit.Name] = true

		best := v.lex.BestSubstitute(hit.Substitutes, hit.Name)
		var alts []string
		for _, s := range hit.Substitutes {
			if s != best {
				alts = append(alts, s)
			}
		}
		res.Substitutions = append(res.Substitutions, Substitution{
			From:         hit.Name,
			To:           best,
			Alternatives: alts,
			Category:     hit.Category,
			Confidence:   hit.Confidence,
		})
	}

	res.RewrittenText = rewrite(text, res.Substitutions)
	res.ElapsedMS = time.Since(start).Milliseconds()
	v.logger.Debug("veganize complete", "mentions", len(res.DetectedMentions),
		"substitutions", len(res.Substitutions), "elapsed_ms", res.ElapsedMS)
	return res, nil
}

// rewrite applies all substitutions to text in one left-to-right pass. The
// alternation lists longer From terms first so "sour cream" is replaced before
// a bare "cream" could match, and replacements are never rescanned, so a
// substitute containing a target word is safe.
func rewrite(text string, subs []Substitution) string {
	if len(subs) == 0 {
		return text
	}

	ordered := append([]Substitution{}, subs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].From) > len(ordered[j].From)
	})

	byFrom := make(map[string]string, len(ordered))
	quoted := make([]string, 0, len(ordered))
	for _, s := range ordered {
		byFrom[strings.ToLower(s.From)] = s.To
		quoted = append(quoted, regexp.QuoteMeta(s.From))
	}
	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)(?:es|s)?\b`)

	return re.ReplaceAllStringFunc(text, func(m string) string {
		key := strings.ToLower(m)
		to, ok := byFrom[key]
		if !ok {
			to, ok = byFrom[strings.TrimSuffix(key, "s")]
		}
		if !ok {
			to, ok = byFrom[strings.TrimSuffix(key, "es")]
		}
		if !ok {
			return m
		}
		return matchCase(m, to)
	})
}

// matchCase carries a leading capital from the replaced text over to the
// replacement.
func matchCase(original, replacement string) string {
	first, _ := utf8.DecodeRuneInString(original)
	if !unicode.IsUpper(first) {
		return replacement
	}
	r, size := utf8.DecodeRuneInString(replacement)
	if r == utf8.RuneError {
		return replacement
	}
	return string(unicode.ToUpper(r)) + replacement[size:]
}
