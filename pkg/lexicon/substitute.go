package lexicon

import "strings"

// Substitutes returns the ordered substitute list for a non-vegan ingredient.
// Lookup is exact key first, then substring containment against table keys in
// table order. Vegan ingredients and unknown non-vegan ingredients both get an
// empty list; neither is an error.
func (l *Lexicon) Substitutes(name string, vegan bool) []string {
	if vegan {
		return nil
	}
	t := l.tables()

	for _, e := range t.Substitutions {
		if e.Name == name {
			return append([]string{}, e.Substitutes...)
		}
	}
	for _, e := range t.Substitutions {
		if strings.Contains(name, e.Name) {
			return append([]string{}, e.Substitutes...)
		}
	}
	return nil
}

// SubstitutionTargets returns the substitution-table keys in table order.
// Recipe scanning uses these as its direct-match word list.
func (l *Lexicon) SubstitutionTargets() []string {
	t := l.tables()
	targets := make([]string, 0, len(t.Substitutions))
	for _, e := range t.Substitutions {
		targets = append(targets, e.Name)
	}
	return targets
}

// BestSubstitute picks the single best candidate for an ingredient. If the
// preference table has an entry for the original name whose preferred items
// intersect the candidates, the first intersecting preferred item wins in
// preference-table order; otherwise the first declared candidate. Empty
// candidates yield "".
func (l *Lexicon) BestSubstitute(candidates []string, originalName string) string {
	if len(candidates) == 0 {
		return ""
	}
	t := l.tables()

	if pref := l.preferencesFor(t, originalName); pref != nil {
		for _, p := range pref {
			for _, c := range candidates {
				if p == c {
					return p
				}
			}
		}
	}
	return candidates[0]
}

func (l *Lexicon) preferencesFor(t *Tables, name string) []string {
	for _, e := range t.Preferences {
		if e.Name == name {
			return e.Preferred
		}
	}
	for _, e := range t.Preferences {
		if strings.Contains(name, e.Name) {
			return e.Preferred
		}
	}
	return nil
}
