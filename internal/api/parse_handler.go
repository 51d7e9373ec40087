package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/infiniv/luqum/internal/cache"
	"github.com/infiniv/luqum/internal/naming"
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/internal/printer"
	"github.com/infiniv/luqum/internal/validation"
)

// parseCacheSchema is the schema-name slot ParseHandler uses when keying the
// parse cache, since /parse and /print have no schema of their own.
const parseCacheSchema = ""

// ParseRequest is the body of POST /api/v1/parse and /api/v1/print.
type ParseRequest struct {
	Query string `json:"query"`
}

// ParseResponse describes the parsed tree's shape and its auto-assigned
// names, without leaking the internal Node representation.
type ParseResponse struct {
	Kind  string   `json:"kind"`
	Names []string `json:"names"`
}

// PrintResponse reports the reprinted query alongside whether it round-trips
// byte-for-byte with the input.
type PrintResponse struct {
	Query      string `json:"query"`
	RoundTrips bool   `json:"roundTrips"`
}

// ParseHandler exposes parsing and naming for manual exercising of C1/C2/C6.
type ParseHandler struct {
	validator  *validation.Validator
	parseCache *cache.ParseCache
}

// NewParseHandler creates a new parse handler. validator and parseCache may
// both be nil, in which case queries are handed to the parser unchecked and
// uncached.
func NewParseHandler(validator *validation.Validator, parseCache *cache.ParseCache) *ParseHandler {
	return &ParseHandler{validator: validator, parseCache: parseCache}
}

func (h *ParseHandler) decode(w http.ResponseWriter, r *http.Request) (parser.Node, string, bool) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return nil, "", false
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body")
		return nil, "", false
	}
	if req.Query == "" {
		h.sendError(w, http.StatusBadRequest, "query is required")
		return nil, "", false
	}

	if h.validator != nil {
		if err := h.validator.ValidateQuery(req.Query); err != nil {
			h.sendError(w, http.StatusBadRequest, err.Error())
			return nil, "", false
		}
	}

	if h.parseCache != nil {
		if tree, found := h.parseCache.Get(req.Query, parseCacheSchema); found {
			return tree, req.Query, true
		}
	}

	tree, err := parser.Parse(req.Query)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse query: %s", err.Error()))
		return nil, "", false
	}

	if h.parseCache != nil {
		h.parseCache.Set(req.Query, parseCacheSchema, tree)
	}

	return tree, req.Query, true
}

// Parse handles POST /api/v1/parse: parses the query and auto-names it,
// returning the root kind and the assigned names in document order.
func (h *ParseHandler) Parse(w http.ResponseWriter, r *http.Request) {
	tree, _, ok := h.decode(w, r)
	if !ok {
		return
	}

	names := naming.AutoName(tree)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ParseResponse{
		Kind:  tree.Kind().String(),
		Names: names.Names(),
	})
}

// Print handles POST /api/v1/print: parses the query, reprints it, and
// reports whether the reprint matches the original text.
func (h *ParseHandler) Print(w http.ResponseWriter, r *http.Request) {
	tree, original, ok := h.decode(w, r)
	if !ok {
		return
	}

	printed := printer.Print(tree)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(PrintResponse{
		Query:      printed,
		RoundTrips: printed == original,
	})
}

func (h *ParseHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: http.StatusText(statusCode), Message: message})
}
