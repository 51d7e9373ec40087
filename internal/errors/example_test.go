package errors_test

import (
	stderrors "errors"
	"fmt"

	"github.com/infiniv/luqum/internal/errors"
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/pkg/luqum"
)

// Example demonstrates a translation-time semantic error.
func ExampleNewNestedSearchFieldException() {
	err := errors.NewNestedSearchFieldException("comments.rating", "comments")
	fmt.Println(err.Error())
	// Output: field "comments.rating" is not declared under nested path "comments"
}

// Example demonstrates error wrapping.
func ExampleInconsistentQueryException_Wrap() {
	underlying := stderrors.New("schema analysis failed")
	err := errors.NewInconsistentQueryException("nested field queried without declaration", nil).Wrap(underlying)

	if stderrors.Is(err, underlying) {
		fmt.Println("Error contains underlying cause")
	}
	if unwrapped := stderrors.Unwrap(err); unwrapped != nil {
		fmt.Println("Unwrapped:", unwrapped.Error())
	}

	// Output:
	// Error contains underlying cause
	// Unwrapped: schema analysis failed
}

// Example demonstrates converting a parser error to an API response detail.
func ExampleFromParseError() {
	err := &parser.ParseSyntaxError{Position: parser.Position{Line: 1, Column: 15}, AtEOF: true}
	detail := errors.FromParseError(err)

	fmt.Printf("Code: %s\n", detail.Code)
	fmt.Printf("Position: %d\n", detail.Details[0].Column)

	// Output:
	// Code: PARSE_ERROR
	// Position: 15
}

// Example demonstrates validation error with field.
func ExampleNewValidationError() {
	err := errors.NewValidationError("query exceeds max depth", "q")
	fmt.Println(err.Error())
	// Output: validation error: query exceeds max depth (field: q)
}

// Example demonstrates schema error.
func ExampleNewSchemaError() {
	err := errors.NewSchemaError("schema not found", "products", luqum.ErrorCodeSchemaNotFound)
	fmt.Println(err.Error())
	fmt.Println("Code:", err.Code)

	// Output:
	// schema error: schema not found (schema: products)
	// Code: SCHEMA_NOT_FOUND
}

// Example demonstrates rate limit error.
func ExampleNewRateLimitError() {
	err := errors.NewRateLimitError("too many requests", 60)
	fmt.Println(err.Error())
	fmt.Println("Retry after:", err.RetryAfter, "seconds")

	// Output:
	// rate limit error: too many requests (retry after: 60s)
	// Retry after: 60 seconds
}

// Example demonstrates translation error.
func ExampleNewTranslationError() {
	err := errors.NewTranslationError("unsupported operator", "status")
	fmt.Println(err.Error())
	// Output: translation error: unsupported operator (field: status)
}

// Example demonstrates using errors.As for type assertion.
func ExampleNestedSearchFieldException_errorsAs() {
	var nsf *errors.NestedSearchFieldException

	err := errors.NewNestedSearchFieldException("comments.rating", "comments")

	if stderrors.As(err, &nsf) {
		fmt.Printf("Nested search field error on %s\n", nsf.Field)
	}

	// Output: Nested search field error on comments.rating
}
