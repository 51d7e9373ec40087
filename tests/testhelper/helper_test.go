package testhelper

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTestCases(t *testing.T) {
	testCasesPath := filepath.Join("..", "testcases.json")
	if _, err := os.Stat(testCasesPath); os.IsNotExist(err) {
		t.Skip("testcases.json not found, skipping")
	}

	cases := LoadTestCases(t, testCasesPath)
	if len(cases) == 0 {
		t.Error("expected at least one test case")
	}

	for i, tc := range cases {
		if tc.Category == "" {
			t.Errorf("test case %d: Category is empty", i)
		}
		if tc.Description == "" {
			t.Errorf("test case %d: Description is empty", i)
		}
		if tc.Query == "" {
			t.Errorf("test case %d: Query is empty", i)
		}
		if tc.Schema == "" {
			t.Errorf("test case %d: Schema is empty", i)
		}
		if tc.Expected.Query == nil && tc.Expected.Print == "" && tc.Expected.Names == nil {
			t.Errorf("test case %d: Expected has neither Query, Print, nor Names", i)
		}
	}
}

func TestLoadSchemas(t *testing.T) {
	schemasPath := filepath.Join("..", "schemas.json")
	if _, err := os.Stat(schemasPath); os.IsNotExist(err) {
		t.Skip("schemas.json not found, skipping")
	}

	schemas := LoadSchemas(t, schemasPath)
	if len(schemas) == 0 {
		t.Error("expected at least one schema")
	}

	for name, opts := range schemas {
		if name == "" {
			t.Error("schema name is empty")
		}
		if opts == nil {
			t.Errorf("schema %q is nil", name)
		}
	}
}

func TestTestCaseStruct(t *testing.T) {
	tc := TestCase{
		Category:    "match",
		Description: "analyzed word becomes a match query",
		Query:       "title:hello",
		Schema:      "products",
		Expected: Expected{
			Query: map[string]interface{}{
				"query": map[string]interface{}{
					"match": map[string]interface{}{"title": "hello"},
				},
			},
		},
	}

	if tc.Category != "match" {
		t.Error("Category not set correctly")
	}
	if tc.Description == "" {
		t.Error("Description not set correctly")
	}
	if tc.Query != "title:hello" {
		t.Error("Query not set correctly")
	}
	if tc.Schema != "products" {
		t.Error("Schema not set correctly")
	}
	if tc.Expected.Query == nil {
		t.Error("Expected.Query not set correctly")
	}
}

func TestExpectedStruct(t *testing.T) {
	expected := Expected{
		Print: "title:hello AND region:ca",
		Names: []string{"q0", "q1"},
	}

	if expected.Print != "title:hello AND region:ca" {
		t.Error("Print not set correctly")
	}
	if len(expected.Names) != 2 {
		t.Error("Names length incorrect")
	}
}
