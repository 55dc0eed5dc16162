package lexicon

import "strings"

// VeganStatus is the tri-state classification outcome.
type VeganStatus string

const (
	StatusVegan    VeganStatus = "vegan"
	StatusNonVegan VeganStatus = "non_vegan"
	StatusUnknown  VeganStatus = "unknown"
)

// SourceContext carries optional provenance hints alongside a name: the raw
// source's description text, an explicit vegan flag if the source provides
// one, and whether the source is authoritative enough to trust that flag fully.
type SourceContext struct {
	Description string
	VeganFlag   *bool
	Trusted     bool
}

// Classification is the result of one vegan/non-vegan decision.
type Classification struct {
	Status     VeganStatus `json:"status"`
	Confidence float64     `json:"confidence"`
	Reason     string      `json:"reason"`
}

// Classify decides vegan/non-vegan/unknown for a normalized name, checking in
// order: explicit source flag, non-vegan keywords, vegan keywords. Non-vegan
// keywords go first because they are the safety-critical signal: a name
// containing both kinds of token must resolve non-vegan.
func (l *Lexicon) Classify(name string, sctx *SourceContext) Classification {
	t := l.tables()

	haystack := name
	if sctx != nil && sctx.Description != "" {
		haystack = name + " " + fold(sctx.Description)
	}

	if sctx != nil && sctx.VeganFlag != nil {
		conf := 0.9
		if sctx.Trusted {
			conf = 1.0
		}
		if *sctx.VeganFlag {
			return Classification{Status: StatusVegan, Confidence: conf, Reason: "source flag"}
		}
		return Classification{Status: StatusNonVegan, Confidence: conf, Reason: "source flag"}
	}

	if kw, ok := firstMatch(haystack, t.NonVegan); ok {
		return Classification{Status: StatusNonVegan, Confidence: 0.9, Reason: kw}
	}
	if kw, ok := firstMatch(haystack, t.Vegan); ok {
		return Classification{Status: StatusVegan, Confidence: 0.8, Reason: kw}
	}
	return Classification{
		Status:     StatusUnknown,
		Confidence: 0.3,
		Reason:     "unclassifiable, treated as non-vegan for safety",
	}
}

// firstMatch scans keywords in declaration order and returns the first one
// contained in s. Ties are resolved purely by table order, never by length.
func firstMatch(s string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return kw, true
		}
	}
	return "", false
}

// ClampConfidence bounds a computed confidence to [0.1, 1.0]. Applied once,
// after any additive scoring, so stored confidences are never exactly zero.
func ClampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}
