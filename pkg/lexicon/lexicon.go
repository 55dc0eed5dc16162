// Package lexicon holds the keyword tables behind ingredient classification:
// vegan/non-vegan keyword sets, the category taxonomy, and the substitution
// and preference tables. Tables are ordered; every matcher is first-match-wins
// so results are deterministic for a given table set.
package lexicon

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// UnknownIsNonVegan is the safety policy for unclassifiable ingredients:
// callers that must choose a boolean treat unknown as non-vegan, never vegan.
const UnknownIsNonVegan = true

// CategoryKeywords maps one category label to its ordered keyword list.
type CategoryKeywords struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// SubstitutionEntry maps a non-vegan ingredient to its ordered substitutes.
type SubstitutionEntry struct {
	Name        string   `yaml:"name"`
	Substitutes []string `yaml:"substitutes"`
}

// PreferenceEntry overrides the default first-substitute rule for one
// ingredient with an ordered preferred list.
type PreferenceEntry struct {
	Name      string   `yaml:"name"`
	Preferred []string `yaml:"preferred"`
}

// Tables is one complete, ordered table set. Order is significant everywhere:
// the first listed matching keyword wins, never a longest or best match.
type Tables struct {
	NonVegan      []string            `yaml:"non_vegan"`
	Vegan         []string            `yaml:"vegan"`
	Categories    []CategoryKeywords  `yaml:"categories"`
	Substitutions []SubstitutionEntry `yaml:"substitutions"`
	Preferences   []PreferenceEntry   `yaml:"preferences"`
	Modifiers     []string            `yaml:"modifiers"`
	MaxNameLen    int                 `yaml:"max_name_len"`
}

// Lexicon serves classification queries against one table set. The table set
// is replaced wholesale by Reload; individual tables are never mutated.
type Lexicon struct {
	mu sync.RWMutex
	t  *Tables
}

// New returns a Lexicon over the built-in tables.
func New() *Lexicon {
	return &Lexicon{t: builtinTables()}
}

// Reload rebuilds the table set from the built-ins plus the overlay file at
// path. An empty path resets to the built-ins alone.
func (l *Lexicon) Reload(path string) error {
	t := builtinTables()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read lexicon overlay %s: %w", path, err)
		}
		var overlay Tables
		if err := yaml.Unmarshal(data, &overlay); err != nil {
			return fmt.Errorf("parse lexicon overlay %s: %w", path, err)
		}
		merge(t, &overlay)
	}

	l.mu.Lock()
	l.t = t
	l.mu.Unlock()
	return nil
}

// tables returns the current table set under a read lock.
func (l *Lexicon) tables() *Tables {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.t
}

// merge appends overlay keywords and table entries to the base set. Overlay
// entries for a name already in a base table take precedence by being
// prepended, keeping first-match-wins semantics.
func merge(base, overlay *Tables) {
	base.NonVegan = append(prependCopy(overlay.NonVegan), base.NonVegan...)
	base.Vegan = append(prependCopy(overlay.Vegan), base.Vegan...)
	base.Modifiers = append(prependCopy(overlay.Modifiers), base.Modifiers...)
	base.Categories = append(append([]CategoryKeywords{}, overlay.Categories...), base.Categories...)
	base.Substitutions = append(append([]SubstitutionEntry{}, overlay.Substitutions...), base.Substitutions...)
	base.Preferences = append(append([]PreferenceEntry{}, overlay.Preferences...), base.Preferences...)
	if overlay.MaxNameLen > 0 {
		base.MaxNameLen = overlay.MaxNameLen
	}
}

func prependCopy(s []string) []string {
	return append([]string{}, s...)
}
