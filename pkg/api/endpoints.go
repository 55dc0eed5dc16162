package api

import (
	"context"
	"fmt"

	"github.com/vwap/veganizer/pkg/kit"
	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
	"github.com/vwap/veganizer/pkg/veganize"
)

// Shared request/response types used by both HTTP and MCP transports.

type veganizeReq struct {
	Text string
}

type searchReq struct {
	Term  string
	Limit int
}

type listReq struct {
	Filters  store.Filters
	Page     int
	PageSize int
}

type upsertReq struct {
	Name        string
	Vegan       *bool
	Category    string
	Substitutes []string
	CommonUses  []string
	Confidence  float64
}

type searchResponse struct {
	Results []*store.Record `json:"results"`
}

// upsertResponse reports the stored record under its registry id. The id is
// the normalized name, which is the store's primary key.
type upsertResponse struct {
	ID      string        `json:"id"`
	Applied bool          `json:"applied"`
	Record  *store.Record `json:"record"`
}

const maxSearchLimit = 50

// Endpoints are the transport-agnostic actions backed by the veganizer,
// the record store and the lexicon.

func veganizeEndpoint(v *veganize.Veganizer) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*veganizeReq)
		if req.Text == "" {
			return nil, fmt.Errorf("recipe text is empty")
		}
		return v.Veganize(ctx, req.Text)
	}
}

func searchEndpoint(st *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*searchReq)
		if req.Term == "" {
			return nil, fmt.Errorf("search term is empty")
		}
		limit := req.Limit
		if limit <= 0 || limit > maxSearchLimit {
			limit = 10
		}
		records, err := st.Search(ctx, req.Term, limit)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = []*store.Record{}
		}
		return searchResponse{Results: records}, nil
	}
}

func listEndpoint(st *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*listReq)
		return st.List(ctx, req.Filters, req.Page, req.PageSize)
	}
}

func statsEndpoint(st *store.Store) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		return st.Stats(ctx)
	}
}

// upsertEndpoint accepts a manual ingredient record. The name goes through
// the same normalization as ingested records; missing fields are filled from
// the lexicon so a bare name is enough.
func upsertEndpoint(st *store.Store, lex *lexicon.Lexicon) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*upsertReq)

		name, ok := lex.Normalize(req.Name)
		if !ok {
			return nil, fmt.Errorf("%w: unusable ingredient name %q", store.ErrInvalidRecord, req.Name)
		}

		var vegan bool
		confidence := req.Confidence
		if req.Vegan != nil {
			vegan = *req.Vegan
			if confidence == 0 {
				confidence = 1.0
			}
		} else {
			cls := lex.Classify(name, nil)
			if cls.Status == lexicon.StatusUnknown {
				return nil, fmt.Errorf("%w: %q is unclassifiable, submit an explicit vegan flag", store.ErrInvalidRecord, name)
			}
			vegan = cls.Status == lexicon.StatusVegan
			if confidence == 0 {
				confidence = cls.Confidence
			}
		}

		category := req.Category
		if category == "" {
			category = lex.Categorize(name, nil)
		}
		substitutes := req.Substitutes
		if len(substitutes) == 0 {
			substitutes = lex.Substitutes(name, vegan)
		}

		rec := &store.Record{
			Name:        name,
			Vegan:       vegan,
			Category:    category,
			Substitutes: substitutes,
			CommonUses:  req.CommonUses,
			Source:      store.SourceManual,
			Confidence:  lexicon.ClampConfidence(confidence),
		}
		applied, err := st.Upsert(ctx, rec)
		if err != nil {
			return nil, err
		}
		stored, err := st.Get(ctx, rec.Name)
		if err != nil {
			return nil, err
		}
		return upsertResponse{ID: rec.Name, Applied: applied, Record: stored}, nil
	}
}
