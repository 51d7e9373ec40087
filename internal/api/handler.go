package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/infiniv/luqum/internal/schema"
)

// Handler handles HTTP API requests for schema management.
type Handler struct {
	registry *schema.Registry
}

// NewHandler creates a new API handler with the given registry.
func NewHandler(registry *schema.Registry) *Handler {
	return &Handler{
		registry: registry,
	}
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SuccessResponse represents a successful API response.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// registerSchemaRequest is the POST /api/v1/schemas body: a name plus the
// raw Elasticsearch index mapping to analyze.
type registerSchemaRequest struct {
	Name    string         `json:"name"`
	Mapping schema.Mapping `json:"mapping"`
}

// RegisterSchema handles POST /api/v1/schemas: it runs schema.Analyze over
// the supplied mapping and stores the result under the given name.
func (h *Handler) RegisterSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req registerSchemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	if req.Name == "" {
		h.writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	opts, err := schema.Analyze(req.Name, req.Mapping)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.registry.Register(opts); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Message: "schema registered successfully",
		Data:    opts,
	})
}

// GetSchema handles GET /api/v1/schemas/{name}.
func (h *Handler) GetSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schemaName := schemaNameFromPath(r.URL.Path)
	if schemaName == "" {
		h.writeError(w, http.StatusBadRequest, "schema name is required")
		return
	}

	opts, err := h.registry.Get(schemaName)
	if err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(opts)
}

// DeleteSchema handles DELETE /api/v1/schemas/{name}.
func (h *Handler) DeleteSchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schemaName := schemaNameFromPath(r.URL.Path)
	if schemaName == "" {
		h.writeError(w, http.StatusBadRequest, "schema name is required")
		return
	}

	if err := h.registry.Delete(schemaName); err != nil {
		h.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSchemas handles GET /api/v1/schemas.
func (h *Handler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	schemas := h.registry.List()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Data: schemas,
	})
}

func schemaNameFromPath(path string) string {
	path = strings.TrimPrefix(path, "/api/v1/schemas/")
	return strings.TrimSpace(path)
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
