// Package ingest turns raw source exports into classified ingredient records:
// per-source adapters parse payloads into RawRecords, and the Pipeline runs
// each candidate through normalization, classification, categorization and
// substitute resolution before upserting into the record store.
package ingest

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// RawRecord is one source entry before normalization. Field presence depends
// on the source kind; adapters fill what their format provides.
type RawRecord struct {
	Name            string
	Description     string
	IngredientsText string
	VeganFlag       *bool
	CategoryHint    string
	CommonUses      []string
}

// Adapter parses one source format into RawRecords.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "curated-yaml").
	ID() string
	// Kind returns the provenance tag records from this adapter carry.
	Kind() string
	// Description returns a human-readable description.
	Description() string
	// Parse reads a complete source payload and returns its raw records.
	Parse(r io.Reader) ([]RawRecord, error)
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown ingest source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
