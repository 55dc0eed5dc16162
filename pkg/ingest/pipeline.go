package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
)

// defaultChunkSize bounds per-chunk memory; chunks run sequentially so upsert
// ordering stays reproducible.
const defaultChunkSize = 500

// Result counts the outcome of one pipeline run. Skipped counts candidates
// whose vegan status stayed unknown; those are never persisted.
type Result struct {
	Processed int `json:"processed"`
	Inserted  int `json:"inserted"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Pipeline runs raw source records through the classification chain and
// upserts the survivors. Re-running the same input yields the same store
// state: dedup and upsert depend only on computed name and confidence.
type Pipeline struct {
	lex       *lexicon.Lexicon
	store     *store.Store
	logger    *slog.Logger
	chunkSize int
}

// NewPipeline wires a pipeline over a lexicon and a record store.
func NewPipeline(lex *lexicon.Lexicon, st *store.Store, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{lex: lex, store: st, logger: logger, chunkSize: defaultChunkSize}
}

// candidate is one ingredient mention expanded from a raw record.
type candidate struct {
	name string
	sctx lexicon.SourceContext
}

// Run ingests a batch of raw records under the given provenance kind.
// Individual record failures are counted, logged and skipped; only store
// unavailability or cancellation aborts the run. Cancellation is honored
// between chunks, never mid-chunk, so applied upserts stay intact.
func (p *Pipeline) Run(ctx context.Context, records []RawRecord, kind string) (Result, error) {
	var res Result
	switch kind {
	case store.SourceCurated, store.SourceUSDA, store.SourceOpenFoodFacts, store.SourceManual:
	default:
		return res, fmt.Errorf("unknown source kind %q", kind)
	}

	for start := 0; start < len(records); start += p.chunkSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+p.chunkSize, len(records))

		batch := make(map[string]*store.Record)
		var order []string
		for _, raw := range records[start:end] {
			for _, cand := range expand(kind, raw) {
				p.process(cand, raw, kind, batch, &order, &res)
			}
		}

		chunk := make([]*store.Record, 0, len(order))
		for _, name := range order {
			chunk = append(chunk, batch[name])
		}
		bres, err := p.store.BulkUpsert(ctx, chunk)
		res.Inserted += bres.Inserted
		res.Errors += bres.Errors
		if err != nil {
			return res, fmt.Errorf("ingest chunk at %d: %w", start, err)
		}
	}

	p.logger.Info("ingest run complete", "kind", kind,
		"processed", res.Processed, "inserted", res.Inserted,
		"skipped", res.Skipped, "errors", res.Errors)
	return res, nil
}

// process classifies one candidate and folds it into the batch-local dedup
// map, keeping the higher-confidence version before it ever reaches the store.
func (p *Pipeline) process(cand candidate, raw RawRecord, kind string,
	batch map[string]*store.Record, order *[]string, res *Result) {

	res.Processed++

	name, ok := p.lex.Normalize(cand.name)
	if !ok {
		res.Errors++
		p.logger.Warn("rejected ingredient name", "kind", kind, "raw", cand.name)
		return
	}

	cls := p.lex.Classify(name, &cand.sctx)
	if cls.Status == lexicon.StatusUnknown {
		res.Skipped++
		return
	}
	vegan := cls.Status == lexicon.StatusVegan

	category := p.lex.Categorize(name, &cand.sctx)
	if category == lexicon.CategoryOther && raw.CategoryHint != "" {
		if hinted := p.lex.Categorize(strings.ToLower(raw.CategoryHint), nil); hinted != lexicon.CategoryOther {
			category = hinted
		}
	}

	rec := &store.Record{
		Name:        name,
		Vegan:       vegan,
		Category:    category,
		Substitutes: p.lex.Substitutes(name, vegan),
		CommonUses:  raw.CommonUses,
		Source:      kind,
		Confidence:  lexicon.ClampConfidence(cls.Confidence),
	}

	prev, seen := batch[name]
	if !seen {
		*order = append(*order, name)
	}
	if !seen || rec.Confidence > prev.Confidence {
		batch[name] = rec
	}
}

// expand turns one raw record into its candidate mentions. Curated and USDA
// entries are one mention each; a product with an ingredients_text field
// expands into one mention per listed ingredient, with the product name kept
// as classification context.
func expand(kind string, raw RawRecord) []candidate {
	trusted := kind == store.SourceCurated

	if raw.IngredientsText != "" {
		parts := strings.FieldsFunc(raw.IngredientsText, func(r rune) bool {
			return r == ',' || r == ';'
		})
		cands := make([]candidate, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			cands = append(cands, candidate{
				name: part,
				sctx: lexicon.SourceContext{VeganFlag: raw.VeganFlag, Trusted: trusted},
			})
		}
		return cands
	}

	if strings.TrimSpace(raw.Name) == "" {
		return []candidate{{name: "", sctx: lexicon.SourceContext{}}}
	}
	return []candidate{{
		name: raw.Name,
		sctx: lexicon.SourceContext{
			Description: raw.Description,
			VeganFlag:   raw.VeganFlag,
			Trusted:     trusted,
		},
	}}
}
