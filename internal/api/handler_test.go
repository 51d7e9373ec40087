package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/infiniv/luqum/internal/schema"
)

func sampleMappingJSON() string {
	return `{
		"name": "users",
		"mapping": {
			"mappings": {
				"properties": {
					"userName": {"type": "text"},
					"userAge": {"type": "integer"}
				}
			}
		}
	}`
}

func TestRegisterSchema_Success(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(sampleMappingJSON()))
	rec := httptest.NewRecorder()

	handler.RegisterSchema(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("RegisterSchema() status = %v, want %v", rec.Code, http.StatusCreated)
	}

	opts, err := registry.Get("users")
	if err != nil {
		t.Fatalf("Get() unexpected error = %v", err)
	}
	if opts.Name != "users" {
		t.Errorf("schema name = %v, want %v", opts.Name, "users")
	}
	if !opts.NotAnalyzedFields["userAge"] {
		t.Errorf("expected userAge to be classified not-analyzed")
	}
}

func TestRegisterSchema_InvalidJSON(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(`{invalid json`))
	rec := httptest.NewRecorder()

	handler.RegisterSchema(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("RegisterSchema() status = %v, want %v", rec.Code, http.StatusBadRequest)
	}
}

func TestRegisterSchema_MissingName(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(`{"mapping": {}}`))
	rec := httptest.NewRecorder()

	handler.RegisterSchema(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("RegisterSchema() status = %v, want %v", rec.Code, http.StatusBadRequest)
	}
}

func TestRegisterSchema_DuplicateName(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req1 := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(sampleMappingJSON()))
	rec1 := httptest.NewRecorder()
	handler.RegisterSchema(rec1, req1)
	if rec1.Code != http.StatusCreated {
		t.Fatalf("first RegisterSchema() status = %v, want %v", rec1.Code, http.StatusCreated)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(sampleMappingJSON()))
	rec2 := httptest.NewRecorder()
	handler.RegisterSchema(rec2, req2)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("second RegisterSchema() status = %v, want %v", rec2.Code, http.StatusBadRequest)
	}
}

func TestGetSchema_Success(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	opts := schema.NewOptions("products")
	opts.NotAnalyzedFields["productCode"] = true
	if err := registry.Register(opts); err != nil {
		t.Fatalf("Register() unexpected error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas/products", nil)
	rec := httptest.NewRecorder()

	handler.GetSchema(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GetSchema() status = %v, want %v", rec.Code, http.StatusOK)
	}

	var result schema.Options
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Name != "products" {
		t.Errorf("schema name = %v, want %v", result.Name, "products")
	}
}

func TestGetSchema_NotFound(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas/nonexistent", nil)
	rec := httptest.NewRecorder()

	handler.GetSchema(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GetSchema() status = %v, want %v", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteSchema_Success(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	opts := schema.NewOptions("orders")
	if err := registry.Register(opts); err != nil {
		t.Fatalf("Register() unexpected error = %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schemas/orders", nil)
	rec := httptest.NewRecorder()

	handler.DeleteSchema(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("DeleteSchema() status = %v, want %v", rec.Code, http.StatusNoContent)
	}
	if _, err := registry.Get("orders"); err == nil {
		t.Error("expected schema to be deleted")
	}
}

func TestDeleteSchema_NotFound(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/schemas/nonexistent", nil)
	rec := httptest.NewRecorder()

	handler.DeleteSchema(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("DeleteSchema() status = %v, want %v", rec.Code, http.StatusNotFound)
	}
}

func TestListSchemas_Success(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	for _, name := range []string{"users", "products"} {
		if err := registry.Register(schema.NewOptions(name)); err != nil {
			t.Fatalf("Register() unexpected error = %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas", nil)
	rec := httptest.NewRecorder()

	handler.ListSchemas(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ListSchemas() status = %v, want %v", rec.Code, http.StatusOK)
	}

	var result SuccessResponse
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Data == nil {
		t.Error("ListSchemas() expected data, got nil")
	}
}

func TestRegisterSchema_MethodNotAllowed(t *testing.T) {
	registry := schema.NewRegistry()
	handler := NewHandler(registry)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas", nil)
	rec := httptest.NewRecorder()

	handler.RegisterSchema(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("RegisterSchema() with GET status = %v, want %v", rec.Code, http.StatusMethodNotAllowed)
	}
}
