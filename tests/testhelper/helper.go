// Package testhelper loads JSON fixtures shared by the integration and
// benchmark suites: named schema mappings and worked parse/translate cases.
package testhelper

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/infiniv/luqum/internal/schema"
	"github.com/stretchr/testify/require"
)

// TestCase represents one worked example from testcases.json: a query
// against a named schema, and the ES query body it must translate to.
type TestCase struct {
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Query       string                 `json:"query"`
	Schema      string                 `json:"schema"`
	Expected    Expected               `json:"expected"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Expected represents the expected translation output: the Elasticsearch
// Query DSL body, plus the reprinted query text for round-trip cases.
type Expected struct {
	Query map[string]interface{} `json:"query,omitempty"`
	Print string                 `json:"print,omitempty"`
	Names []string               `json:"names,omitempty"`
}

// LoadTestCases loads worked test cases from a JSON file.
func LoadTestCases(t *testing.T, path string) []TestCase {
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read test cases file")

	var cases []TestCase
	err = json.Unmarshal(data, &cases)
	require.NoError(t, err, "Failed to parse test cases JSON")

	return cases
}

// rawSchema mirrors the on-disk fixture shape: a name plus the raw ES
// mapping to run through schema.Analyze.
type rawSchema struct {
	Name    string         `json:"name"`
	Mapping schema.Mapping `json:"mapping"`
}

// LoadSchemas loads named schema mappings from a JSON file and analyzes each
// one via schema.Analyze.
func LoadSchemas(t *testing.T, path string) map[string]*schema.Options {
	data, err := os.ReadFile(path)
	require.NoError(t, err, "Failed to read schemas file")

	var raw map[string]rawSchema
	err = json.Unmarshal(data, &raw)
	require.NoError(t, err, "Failed to parse schemas JSON")

	opts := make(map[string]*schema.Options, len(raw))
	for key, r := range raw {
		analyzed, err := schema.Analyze(r.Name, r.Mapping)
		require.NoError(t, err, "Failed to analyze schema %q", key)
		opts[key] = analyzed
	}

	return opts
}

// SetupTestRegistry creates a schema registry populated from schemas.json.
func SetupTestRegistry(t *testing.T) *schema.Registry {
	registry := schema.NewRegistry()
	schemas := LoadSchemas(t, "../schemas.json")

	for _, opts := range schemas {
		err := registry.Register(opts)
		require.NoError(t, err, "Failed to register test schema")
	}

	return registry
}
