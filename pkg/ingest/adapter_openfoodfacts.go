package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/vwap/veganizer/pkg/store"
)

func init() {
	Register(&openFoodFactsAdapter{})
}

// openFoodFactsAdapter reads crowdsourced product dumps. A single product may
// expand into many ingredient mentions via its ingredients_text field; that
// expansion happens in the pipeline, keyed off IngredientsText.
type openFoodFactsAdapter struct{}

func (a *openFoodFactsAdapter) ID() string   { return "openfoodfacts-products" }
func (a *openFoodFactsAdapter) Kind() string { return store.SourceOpenFoodFacts }
func (a *openFoodFactsAdapter) Description() string {
	return "Open Food Facts product dump (JSON)"
}

type offProduct struct {
	ProductName     string   `json:"product_name"`
	IngredientsText string   `json:"ingredients_text"`
	LabelsTags      []string `json:"labels_tags"`
	Code            string   `json:"code"`
}

type offDump struct {
	Products []offProduct `json:"products"`
}

func (a *openFoodFactsAdapter) Parse(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts source: %w", err)
	}

	var dump offDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("parse openfoodfacts source: %w", err)
	}

	records := make([]RawRecord, 0, len(dump.Products))
	for _, p := range dump.Products {
		rec := RawRecord{
			Name:            p.ProductName,
			IngredientsText: p.IngredientsText,
		}
		// Label tags are crowd-sourced, so the flag is a hint, not authority;
		// the pipeline never marks this source as trusted.
		if slices.Contains(p.LabelsTags, "en:vegan") {
			v := true
			rec.VeganFlag = &v
		} else if slices.Contains(p.LabelsTags, "en:non-vegan") {
			v := false
			rec.VeganFlag = &v
		}
		records = append(records, rec)
	}
	return records, nil
}
