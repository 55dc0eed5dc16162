package ingest

import (
	"fmt"
	"io"

	"github.com/vwap/veganizer/pkg/store"
	"gopkg.in/yaml.v3"
)

func init() {
	Register(&curatedAdapter{})
}

// curatedAdapter reads the hand-maintained YAML seed format: one entry per
// ingredient, already one-mention-per-entry, with an authoritative vegan flag.
type curatedAdapter struct{}

func (a *curatedAdapter) ID() string   { return "curated-yaml" }
func (a *curatedAdapter) Kind() string { return store.SourceCurated }
func (a *curatedAdapter) Description() string {
	return "hand-curated ingredient seed list (YAML)"
}

type curatedEntry struct {
	Name       string   `yaml:"name"`
	Vegan      *bool    `yaml:"vegan"`
	Category   string   `yaml:"category"`
	CommonUses []string `yaml:"common_uses"`
	Notes      string   `yaml:"notes"`
}

func (a *curatedAdapter) Parse(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read curated source: %w", err)
	}

	var entries []curatedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse curated source: %w", err)
	}

	records := make([]RawRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, RawRecord{
			Name:         e.Name,
			Description:  e.Notes,
			VeganFlag:    e.Vegan,
			CategoryHint: e.Category,
			CommonUses:   e.CommonUses,
		})
	}
	return records, nil
}
