package store

import (
	"context"
	"fmt"
	"strings"
)

// Search matches names case-insensitively in three tiers: prefix matches
// first, then substring matches, then matches of the singular form of the
// term (trailing "s" stripped). Within a tier, order is descending confidence
// then name. Results are truncated to limit; an empty result is not an error.
func (s *Store) Search(ctx context.Context, term string, limit int) ([]*Record, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || limit <= 0 {
		return nil, nil
	}
	singular := strings.TrimSuffix(term, "s")

	const q = `SELECT name, vegan, category, substitutes, common_uses, source, confidence, created_at, updated_at
		FROM ingredients
		WHERE instr(name, ?) > 0 OR instr(name, ?) > 0
		ORDER BY CASE
			WHEN substr(name, 1, length(?)) = ? THEN 0
			WHEN instr(name, ?) > 0 THEN 1
			ELSE 2 END,
			confidence DESC, name ASC
		LIMIT ?`

	var rs []row
	err := s.db.SelectContext(ctx, &rs, q, term, singular, term, term, term, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: search %q: %v", ErrUnavailable, term, err)
	}
	return decodeRows(rs)
}

// Filters narrows a List call. Zero values mean "no filter".
type Filters struct {
	Category string
	Vegan    *bool
	Search   string
}

// Page is one page of List results with pagination totals.
type Page struct {
	Records    []*Record `json:"records"`
	Total      int       `json:"total"`
	TotalPages int       `json:"total_pages"`
}

// List returns a page of records matching the filters, ordered by name.
// Pages are 1-based.
func (s *Store) List(ctx context.Context, f Filters, page, pageSize int) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	where := []string{"1=1"}
	var args []any
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if f.Vegan != nil {
		where = append(where, "vegan = ?")
		args = append(args, *f.Vegan)
	}
	if f.Search != "" {
		where = append(where, "instr(name, ?) > 0")
		args = append(args, strings.ToLower(strings.TrimSpace(f.Search)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ingredients WHERE `+cond, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: count records: %v", ErrUnavailable, err)
	}

	var rs []row
	q := `SELECT name, vegan, category, substitutes, common_uses, source, confidence, created_at, updated_at
		FROM ingredients WHERE ` + cond + ` ORDER BY name ASC LIMIT ? OFFSET ?`
	err = s.db.SelectContext(ctx, &rs, q, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, fmt.Errorf("%w: list records: %v", ErrUnavailable, err)
	}

	recs, err := decodeRows(rs)
	if err != nil {
		return nil, err
	}
	return &Page{
		Records:    recs,
		Total:      total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// Count returns the total number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ingredients`); err != nil {
		return 0, fmt.Errorf("%w: count: %v", ErrUnavailable, err)
	}
	return n, nil
}

// Stats are aggregate counts over the whole store.
type Stats struct {
	Total      int `json:"total"`
	Vegan      int `json:"vegan"`
	NonVegan   int `json:"non_vegan"`
	Categories int `json:"categories"`
	Sources    int `json:"sources"`
}

// Stats returns aggregate record counts.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var st struct {
		Total      int `db:"total"`
		Vegan      int `db:"vegan"`
		Categories int `db:"categories"`
		Sources    int `db:"sources"`
	}
	const q = `SELECT COUNT(*) AS total,
		COALESCE(SUM(vegan), 0) AS vegan,
		COUNT(DISTINCT category) AS categories,
		COUNT(DISTINCT source) AS sources
		FROM ingredients`
	if err := s.db.GetContext(ctx, &st, q); err != nil {
		return nil, fmt.Errorf("%w: stats: %v", ErrUnavailable, err)
	}
	return &Stats{
		Total:      st.Total,
		Vegan:      st.Vegan,
		NonVegan:   st.Total - st.Vegan,
		Categories: st.Categories,
		Sources:    st.Sources,
	}, nil
}
