package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/infiniv/luqum/internal/cache"
	"github.com/infiniv/luqum/internal/naming"
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/internal/schema"
	"github.com/infiniv/luqum/internal/translator"
	"github.com/infiniv/luqum/internal/validation"
)

// TranslateRequest represents the request body for the translate endpoint.
type TranslateRequest struct {
	Schema          string `json:"schema"`
	Engine          string `json:"engine"`
	Query           string `json:"query"`
	DefaultField    string `json:"defaultField,omitempty"`
	DefaultOperator string `json:"defaultOperator,omitempty"`
}

// TranslateResponse represents the response body for the translate endpoint.
type TranslateResponse struct {
	Query map[string]interface{} `json:"query"`
}

// TranslateHandler parses a Lucene query and lowers it to a target engine's
// query body, driven by a registered schema.
type TranslateHandler struct {
	schemaRegistry     *schema.Registry
	translatorRegistry *translator.Registry
	validator          *validation.Validator
	parseCache         *cache.ParseCache
}

// NewTranslateHandler creates a new translate handler. validator and
// parseCache may both be nil, in which case queries are handed to the
// parser unchecked and uncached.
func NewTranslateHandler(schemaRegistry *schema.Registry, translatorRegistry *translator.Registry, validator *validation.Validator, parseCache *cache.ParseCache) *TranslateHandler {
	return &TranslateHandler{
		schemaRegistry:     schemaRegistry,
		translatorRegistry: translatorRegistry,
		validator:          validator,
		parseCache:         parseCache,
	}
}

// ServeHTTP handles HTTP requests.
func (h *TranslateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.sendError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Schema == "" {
		h.sendError(w, http.StatusBadRequest, "schema is required")
		return
	}
	if req.Query == "" {
		h.sendError(w, http.StatusBadRequest, "query is required")
		return
	}
	engine := req.Engine
	if engine == "" {
		engine = "elasticsearch"
	}

	sch, err := h.schemaRegistry.Get(req.Schema)
	if err != nil {
		h.sendError(w, http.StatusNotFound, fmt.Sprintf("schema not found: %s", req.Schema))
		return
	}

	trans, err := h.translatorRegistry.Get(engine)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("engine not supported: %s", engine))
		return
	}

	if h.validator != nil {
		if err := h.validator.ValidateQuery(req.Query); err != nil {
			h.sendError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	var tree parser.Node
	cached := false
	if h.parseCache != nil {
		if t, found := h.parseCache.Get(req.Query, req.Schema); found {
			tree = t
			cached = true
		}
	}
	if !cached {
		t, err := parser.Parse(req.Query)
		if err != nil {
			h.sendError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse query: %s", err.Error()))
			return
		}
		tree = t
		if h.parseCache != nil {
			h.parseCache.Set(req.Query, req.Schema, tree)
		}
	}

	names := naming.AutoName(tree)

	opts := &translator.Options{
		Schema:          sch,
		DefaultField:    req.DefaultField,
		DefaultOperator: req.DefaultOperator,
	}

	body, err := trans.Translate(tree, opts, names)
	if err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("translation failed: %s", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(TranslateResponse{Query: body})
}

// sendError sends an error response.
func (h *TranslateHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: http.StatusText(statusCode), Message: message})
}
