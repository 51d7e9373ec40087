package internal

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/infiniv/luqum/internal/api"
	"github.com/infiniv/luqum/internal/schema"
	"github.com/infiniv/luqum/internal/translator"
)

// TestIntegration_CompleteWorkflow registers a schema through the HTTP API,
// retrieves and lists it, translates a query against it, then deletes it.
func TestIntegration_CompleteWorkflow(t *testing.T) {
	registry := schema.NewRegistry()
	handler := api.NewHandler(registry)

	schemaJSON := `{
		"name": "products",
		"mapping": {
			"mappings": {
				"properties": {
					"productCode": { "type": "keyword" },
					"productName": { "type": "text" },
					"price": { "type": "float" },
					"inStock": { "type": "boolean" }
				}
			},
			"settings": { "query": { "default_field": "productName" } }
		}
	}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(schemaJSON))
	rec := httptest.NewRecorder()
	handler.RegisterSchema(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Failed to register schema: status = %v, body = %s", rec.Code, rec.Body.String())
	}
	t.Log("Step 1: Schema registered successfully")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/schemas/products", nil)
	rec = httptest.NewRecorder()
	handler.GetSchema(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to get schema: status = %v", rec.Code)
	}

	var retrieved schema.Options
	if err := json.NewDecoder(rec.Body).Decode(&retrieved); err != nil {
		t.Fatalf("Failed to decode schema: %v", err)
	}
	if retrieved.DefaultField != "productName" {
		t.Errorf("Expected default field 'productName', got %q", retrieved.DefaultField)
	}
	t.Log("Step 2: Schema retrieved successfully")

	opts, err := registry.Get("products")
	if err != nil {
		t.Fatalf("Failed to get schema from registry: %v", err)
	}
	if !opts.NotAnalyzedFields["productCode"] {
		t.Error("Expected productCode to be classified not-analyzed")
	}
	if opts.NotAnalyzedFields["productName"] {
		t.Error("Expected productName to remain analyzed")
	}

	translatorRegistry := translator.NewRegistry()
	translatorRegistry.Register("elasticsearch", translator.NewElasticsearchTranslator())
	translateHandler := api.NewTranslateHandler(registry, translatorRegistry, nil, nil)

	translateBody, _ := json.Marshal(api.TranslateRequest{
		Schema: "products",
		Query:  "productCode:13w42 AND price:[10 TO 20]",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/translate", bytes.NewReader(translateBody))
	rec = httptest.NewRecorder()
	translateHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to translate query: status = %v, body = %s", rec.Code, rec.Body.String())
	}
	t.Log("Step 3: Query translated successfully")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/schemas", nil)
	rec = httptest.NewRecorder()
	handler.ListSchemas(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to list schemas: status = %v", rec.Code)
	}
	t.Log("Step 4: Schema list retrieved successfully")

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/schemas/products", nil)
	rec = httptest.NewRecorder()
	handler.DeleteSchema(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("Failed to delete schema: status = %v", rec.Code)
	}
	t.Log("Step 5: Schema deleted successfully")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/schemas/products", nil)
	rec = httptest.NewRecorder()
	handler.GetSchema(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected schema to be deleted, got status = %v", rec.Code)
	}
	t.Log("Step 6: Verified schema deletion")
}

// TestIntegration_MultipleSchemas exercises registering and resolving
// fields across several independently registered schemas.
func TestIntegration_MultipleSchemas(t *testing.T) {
	registry := schema.NewRegistry()
	handler := api.NewHandler(registry)

	schemas := []string{
		`{"name":"users","mapping":{"mappings":{"properties":{"userId":{"type":"integer"},"userName":{"type":"text"}}}}}`,
		`{"name":"orders","mapping":{"mappings":{"properties":{"orderId":{"type":"integer"},"orderDate":{"type":"date"}}}}}`,
		`{"name":"inventory","mapping":{"mappings":{"properties":{"itemCode":{"type":"keyword"},"quantity":{"type":"integer"}}}}}`,
	}

	for i, schemaJSON := range schemas {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/schemas", bytes.NewBufferString(schemaJSON))
		rec := httptest.NewRecorder()
		handler.RegisterSchema(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("Failed to register schema %d: status = %v, body = %s", i+1, rec.Code, rec.Body.String())
		}
	}
	t.Logf("Registered %d schemas", len(schemas))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/schemas", nil)
	rec := httptest.NewRecorder()
	handler.ListSchemas(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Failed to list schemas: status = %v", rec.Code)
	}

	var listResponse api.SuccessResponse
	if err := json.NewDecoder(rec.Body).Decode(&listResponse); err != nil {
		t.Fatalf("Failed to decode list response: %v", err)
	}

	testCases := []struct {
		schemaName     string
		queryField     string
		wantNotAnalyzd bool
	}{
		{"users", "userId", true},
		{"orders", "orderDate", true},
		{"inventory", "itemCode", true},
	}

	for _, tc := range testCases {
		t.Run(tc.schemaName+"/"+tc.queryField, func(t *testing.T) {
			opts, err := registry.Get(tc.schemaName)
			if err != nil {
				t.Fatalf("Failed to get schema %q: %v", tc.schemaName, err)
			}

			if opts.NotAnalyzedFields[tc.queryField] != tc.wantNotAnalyzd {
				t.Errorf("field %q: not-analyzed = %v, want %v", tc.queryField, opts.NotAnalyzedFields[tc.queryField], tc.wantNotAnalyzd)
			}
		})
	}
}

// TestIntegration_ConcurrentSchemaOperations tests concurrent read access to
// a registered schema's field classifications.
func TestIntegration_ConcurrentSchemaOperations(t *testing.T) {
	registry := schema.NewRegistry()

	opts := schema.NewOptions("concurrent_test")
	opts.NotAnalyzedFields["field1"] = true
	opts.NotAnalyzedFields["field2"] = true

	if err := registry.Register(opts); err != nil {
		t.Fatalf("Failed to register schema: %v", err)
	}

	const numGoroutines = 100
	const numOperations = 50

	errCh := make(chan error, numGoroutines)
	doneCh := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer func() { doneCh <- true }()

			for j := 0; j < numOperations; j++ {
				got, err := registry.Get("concurrent_test")
				if err != nil {
					errCh <- err
					return
				}
				if !got.NotAnalyzedFields["field1"] {
					errCh <- err
					return
				}
			}
		}()
	}

	for i := 0; i < numGoroutines; i++ {
		<-doneCh
	}
	close(errCh)

	for err := range errCh {
		if err != nil {
			t.Errorf("Concurrent operation error: %v", err)
		}
	}
}
