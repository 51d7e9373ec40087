// Package errors holds the library's error taxonomy beyond the lexer/parser
// errors that already live in internal/parser (IllegalCharacterError,
// ParseSyntaxError): the semantic errors raised during checking and
// translation, plus the ambient errors the demo HTTP surface projects them
// into.
package errors

import (
	"fmt"

	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/pkg/luqum"
)

// InconsistentQueryException is raised by the consistency checker (C9) or
// the translator when a tree is structurally well-formed but semantically
// contradictory (e.g. a nested field queried without declaring it).
type InconsistentQueryException struct {
	Code     string
	Message  string
	Position *parser.Position
	Cause    error
}

func NewInconsistentQueryException(msg string, pos *parser.Position) *InconsistentQueryException {
	return &InconsistentQueryException{Code: luqum.ErrorCodeInconsistentQuery, Message: msg, Position: pos}
}

func (e *InconsistentQueryException) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("inconsistent query: %s at %s", e.Message, e.Position)
	}
	return fmt.Sprintf("inconsistent query: %s", e.Message)
}

func (e *InconsistentQueryException) Unwrap() error { return e.Cause }

func (e *InconsistentQueryException) Wrap(cause error) *InconsistentQueryException {
	e.Cause = cause
	return e
}

func (e *InconsistentQueryException) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{Code: e.Code, Message: e.Message}
}

// NestedSearchFieldException is raised by the translator when a search field
// under a nested path targets a sub-field not declared under that nested
// parent.
type NestedSearchFieldException struct {
	Code       string
	Message    string
	Field      string
	NestedPath string
	Cause      error
}

func NewNestedSearchFieldException(field, nestedPath string) *NestedSearchFieldException {
	return &NestedSearchFieldException{
		Code:       luqum.ErrorCodeNestedSearchField,
		Message:    fmt.Sprintf("field %q is not declared under nested path %q", field, nestedPath),
		Field:      field,
		NestedPath: nestedPath,
	}
}

func (e *NestedSearchFieldException) Error() string { return e.Message }

func (e *NestedSearchFieldException) Unwrap() error { return e.Cause }

func (e *NestedSearchFieldException) Wrap(cause error) *NestedSearchFieldException {
	e.Cause = cause
	return e
}

func (e *NestedSearchFieldException) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{
		Code:    e.Code,
		Message: e.Message,
		Details: []luqum.ErrorInfo{{Message: fmt.Sprintf("field: %s, nested path: %s", e.Field, e.NestedPath)}},
	}
}

// ObjectSearchFieldException is raised by the translator when a search path
// crosses a declared object field incorrectly (e.g. targets the object
// container itself rather than one of its leaves).
type ObjectSearchFieldException struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func NewObjectSearchFieldException(field string) *ObjectSearchFieldException {
	return &ObjectSearchFieldException{
		Code:    luqum.ErrorCodeObjectSearchField,
		Message: fmt.Sprintf("field %q is an object container, not a queryable leaf", field),
		Field:   field,
	}
}

func (e *ObjectSearchFieldException) Error() string { return e.Message }

func (e *ObjectSearchFieldException) Unwrap() error { return e.Cause }

func (e *ObjectSearchFieldException) Wrap(cause error) *ObjectSearchFieldException {
	e.Cause = cause
	return e
}

func (e *ObjectSearchFieldException) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{
		Code:    e.Code,
		Message: e.Message,
		Details: []luqum.ErrorInfo{{Message: fmt.Sprintf("field: %s", e.Field)}},
	}
}

// OrAndAndOnSameLevel is raised by the consistency checker when AND and OR
// appear in the same UnknownOperation-free logical level without explicit
// grouping to disambiguate precedence.
type OrAndAndOnSameLevel struct {
	Code     string
	Message  string
	Position *parser.Position
	Cause    error
}

func NewOrAndAndOnSameLevel(pos *parser.Position) *OrAndAndOnSameLevel {
	return &OrAndAndOnSameLevel{
		Code:    luqum.ErrorCodeAmbiguousPrecedence,
		Message: "AND and OR mixed at the same level without explicit grouping",
		Position: pos,
	}
}

func (e *OrAndAndOnSameLevel) Error() string {
	if e.Position != nil {
		return fmt.Sprintf("%s at %s", e.Message, e.Position)
	}
	return e.Message
}

func (e *OrAndAndOnSameLevel) Unwrap() error { return e.Cause }

func (e *OrAndAndOnSameLevel) Wrap(cause error) *OrAndAndOnSameLevel {
	e.Cause = cause
	return e
}

func (e *OrAndAndOnSameLevel) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{Code: e.Code, Message: e.Message}
}

// ValidationError represents an error in request-level validation on the
// ambient demo surface (query length/depth/term-count limits).
type ValidationError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func NewValidationError(msg string, field string) *ValidationError {
	return &ValidationError{Code: luqum.ErrorCodeValidationFailed, Message: msg, Field: field}
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.Message, e.Field)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func (e *ValidationError) Wrap(cause error) *ValidationError {
	e.Cause = cause
	return e
}

func (e *ValidationError) ToErrorDetail() luqum.ErrorDetail {
	details := []luqum.ErrorInfo{}
	if e.Field != "" {
		details = append(details, luqum.ErrorInfo{Message: fmt.Sprintf("field: %s", e.Field)})
	}
	return luqum.ErrorDetail{Code: e.Code, Message: e.Message, Details: details}
}

// SchemaError represents an error analyzing or registering an index mapping
// (C7), retargeted from the teacher's SQL-schema error to ES-mapping
// analysis.
type SchemaError struct {
	Code       string
	Message    string
	SchemaName string
	Cause      error
}

func NewSchemaError(msg string, schemaName string, code string) *SchemaError {
	return &SchemaError{Code: code, Message: msg, SchemaName: schemaName}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s (schema: %s)", e.Message, e.SchemaName)
}

func (e *SchemaError) Unwrap() error { return e.Cause }

func (e *SchemaError) Wrap(cause error) *SchemaError {
	e.Cause = cause
	return e
}

func (e *SchemaError) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{
		Code:    e.Code,
		Message: e.Message,
		Details: []luqum.ErrorInfo{{Message: fmt.Sprintf("schema: %s", e.SchemaName)}},
	}
}

// TranslationError wraps one of the C8 translation exceptions
// (NestedSearchFieldException, ObjectSearchFieldException,
// InconsistentQueryException) for HTTP projection on the demo surface.
type TranslationError struct {
	Code    string
	Message string
	Field   string
	Cause   error
}

func NewTranslationError(msg string, field string) *TranslationError {
	return &TranslationError{Code: luqum.ErrorCodeTranslationFailed, Message: msg, Field: field}
}

func (e *TranslationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("translation error: %s (field: %s)", e.Message, e.Field)
	}
	return fmt.Sprintf("translation error: %s", e.Message)
}

func (e *TranslationError) Unwrap() error { return e.Cause }

func (e *TranslationError) Wrap(cause error) *TranslationError {
	e.Cause = cause
	return e
}

func (e *TranslationError) ToErrorDetail() luqum.ErrorDetail {
	details := []luqum.ErrorInfo{}
	if e.Field != "" {
		details = append(details, luqum.ErrorInfo{Message: fmt.Sprintf("field: %s", e.Field)})
	}
	return luqum.ErrorDetail{Code: e.Code, Message: e.Message, Details: details}
}

// RateLimitError represents a rate-limiting rejection on the demo surface.
type RateLimitError struct {
	Code       string
	Message    string
	RetryAfter int
	Cause      error
}

func NewRateLimitError(msg string, retryAfter int) *RateLimitError {
	return &RateLimitError{Code: luqum.ErrorCodeRateLimited, Message: msg, RetryAfter: retryAfter}
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit error: %s (retry after: %ds)", e.Message, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error { return e.Cause }

func (e *RateLimitError) Wrap(cause error) *RateLimitError {
	e.Cause = cause
	return e
}

func (e *RateLimitError) ToErrorDetail() luqum.ErrorDetail {
	return luqum.ErrorDetail{
		Code:    e.Code,
		Message: e.Message,
		Details: []luqum.ErrorInfo{{Message: fmt.Sprintf("retry after %d seconds", e.RetryAfter)}},
	}
}

// FromParseError adapts an internal/parser error (IllegalCharacterError or
// ParseSyntaxError) into a luqum.ErrorDetail for the demo HTTP surface.
func FromParseError(err error) luqum.ErrorDetail {
	switch e := err.(type) {
	case *parser.IllegalCharacterError:
		return luqum.ErrorDetail{
			Code:    luqum.ErrorCodeIllegalCharacter,
			Message: e.Error(),
			Details: []luqum.ErrorInfo{{Line: e.Position.Line, Column: e.Position.Column, Position: e.Position.Offset}},
		}
	case *parser.ParseSyntaxError:
		return luqum.ErrorDetail{
			Code:    luqum.ErrorCodeParseError,
			Message: e.Error(),
			Details: []luqum.ErrorInfo{{Line: e.Position.Line, Column: e.Position.Column, Position: e.Position.Offset}},
		}
	default:
		return luqum.ErrorDetail{Code: luqum.ErrorCodeInternalError, Message: err.Error()}
	}
}
