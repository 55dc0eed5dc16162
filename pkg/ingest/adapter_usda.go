package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vwap/veganizer/pkg/store"
)

func init() {
	Register(&usdaAdapter{})
}

// usdaAdapter reads FoodData-Central-style JSON exports: a food list where
// each food carries a free-text description and an optional category.
type usdaAdapter struct{}

func (a *usdaAdapter) ID() string   { return "usda-fooddata" }
func (a *usdaAdapter) Kind() string { return store.SourceUSDA }
func (a *usdaAdapter) Description() string {
	return "USDA FoodData Central food export (JSON)"
}

type usdaFood struct {
	Description  string `json:"description"`
	NDBNumber    any    `json:"ndbNumber"`
	FoodCategory struct {
		Description string `json:"description"`
	} `json:"foodCategory"`
}

// usdaExport matches both the official wrapped layouts and a bare food array.
type usdaExport struct {
	FoundationFoods []usdaFood `json:"FoundationFoods"`
	SRLegacyFoods   []usdaFood `json:"SRLegacyFoods"`
}

func (a *usdaAdapter) Parse(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read usda source: %w", err)
	}

	var foods []usdaFood
	var export usdaExport
	if err := json.Unmarshal(data, &export); err == nil &&
		(len(export.FoundationFoods) > 0 || len(export.SRLegacyFoods) > 0) {
		foods = append(export.FoundationFoods, export.SRLegacyFoods...)
	} else if err := json.Unmarshal(data, &foods); err != nil {
		return nil, fmt.Errorf("parse usda source: %w", err)
	}

	records := make([]RawRecord, 0, len(foods))
	for _, f := range foods {
		records = append(records, RawRecord{
			Name:         f.Description,
			CategoryHint: f.FoodCategory.Description,
		})
	}
	return records, nil
}
