package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vwap/veganizer/pkg/kit"
	"github.com/vwap/veganizer/pkg/lexicon"
	"github.com/vwap/veganizer/pkg/store"
	"github.com/vwap/veganizer/pkg/veganize"
)

// NewRouter returns an http.Handler with all veganizer API routes.
func NewRouter(v *veganize.Veganizer, st *store.Store, lex *lexicon.Lexicon, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	wrap := instrument(logger)
	h := &handler{
		veganize: wrap("veganize")(veganizeEndpoint(v)),
		search:   wrap("search")(searchEndpoint(st)),
		list:     wrap("list")(listEndpoint(st)),
		stats:    wrap("stats")(statsEndpoint(st)),
		upsert:   wrap("upsert")(upsertEndpoint(st, lex)),
		store:    st,
	}

	mux.HandleFunc("POST /v1/veganize", h.handleVeganize)
	mux.HandleFunc("GET /v1/ingredients/search", h.handleSearch)
	mux.HandleFunc("GET /v1/ingredients", h.handleList)
	mux.HandleFunc("POST /v1/ingredients", h.handleUpsert)
	mux.HandleFunc("GET /v1/stats", h.handleStats)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	veganize kit.Endpoint
	search   kit.Endpoint
	list     kit.Endpoint
	stats    kit.Endpoint
	upsert   kit.Endpoint
	store    *store.Store
}

// --- veganize ---

type httpVeganizeRequest struct {
	Recipe string `json:"recipe"`
	// Text is accepted as an alias for recipe.
	Text string `json:"text"`
}

func (h *handler) handleVeganize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req httpVeganizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	text := req.Recipe
	if text == "" {
		text = req.Text
	}

	ctx := reqCtx(r)
	resp, err := h.veganize(ctx, &veganizeReq{Text: text})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- search ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	ctx := reqCtx(r)
	resp, err := h.search(ctx, &searchReq{Term: term, Limit: limit})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list ---

func (h *handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &listReq{
		Filters: store.Filters{
			Category: q.Get("category"),
			Search:   q.Get("search"),
		},
	}
	if v := q.Get("vegan"); v != "" {
		vegan := v == "true" || v == "1"
		req.Filters.Vegan = &vegan
	}
	req.Page, _ = strconv.Atoi(q.Get("page"))
	req.PageSize, _ = strconv.Atoi(q.Get("page_size"))

	ctx := reqCtx(r)
	resp, err := h.list(ctx, req)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- upsert ---

type httpUpsertRequest struct {
	Name        string   `json:"name"`
	Vegan       *bool    `json:"vegan"`
	Category    string   `json:"category"`
	Substitutes []string `json:"substitutes"`
	CommonUses  []string `json:"common_uses"`
	Confidence  float64  `json:"confidence"`
}

func (h *handler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
	var req httpUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := reqCtx(r)
	resp, err := h.upsert(ctx, &upsertReq{
		Name:        req.Name,
		Vegan:       req.Vegan,
		Category:    req.Category,
		Substitutes: req.Substitutes,
		CommonUses:  req.CommonUses,
		Confidence:  req.Confidence,
	})
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// --- stats ---

func (h *handler) handleStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats(reqCtx(r), nil)
	if err != nil {
		writeEndpointError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status      string `json:"status"`
	Ingredients int    `json:"ingredients"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	n, err := h.store.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Ingredients: n})
}

// --- helpers ---

// reqCtx tags the request context with the transport and any caller-supplied
// request ID so middleware can log them.
func reqCtx(r *http.Request) context.Context {
	ctx := kit.WithTransport(r.Context(), "http")
	if id := r.Header.Get("X-Request-ID"); id != "" {
		ctx = kit.WithRequestID(ctx, id)
	}
	return ctx
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeEndpointError maps endpoint errors to HTTP status codes: invalid
// records are the caller's fault, store unavailability is a 503, recovered
// endpoint failures a 500, everything else a 400.
func writeEndpointError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidRecord):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, errInternal):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
