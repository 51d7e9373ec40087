package validation

import (
	"fmt"
	"strings"

	"github.com/infiniv/luqum/internal/config"
)

// Validator enforces structural guardrails on an incoming query string and
// on the identifiers (schema/field names) supplied alongside it, before the
// query ever reaches the parser.
type Validator struct {
	allowedSpecialChars string
	maxQueryLength      int
	maxFieldNameLength  int
	maxDepth            int
	maxTerms            int
}

// NewValidator creates a new validator with the given configuration
func NewValidator(cfg *config.SecurityConfig, limits *config.LimitsConfig) *Validator {
	return &Validator{
		allowedSpecialChars: cfg.AllowedSpecialChars,
		maxQueryLength:      limits.MaxQueryLength,
		maxFieldNameLength:  limits.MaxFieldNameLength,
		maxDepth:            limits.MaxParseDepth,
		maxTerms:            limits.MaxTerms,
	}
}

// ValidateQuery rejects a query that would be expensive or unsafe to parse:
// too long, too deeply nested, too many terms, or containing bytes the
// lexer was never meant to see.
func (v *Validator) ValidateQuery(query string) error {
	if query == "" {
		return nil
	}

	if v.maxQueryLength > 0 && len(query) > v.maxQueryLength {
		return fmt.Errorf("query exceeds maximum length of %d characters", v.maxQueryLength)
	}

	if strings.ContainsRune(query, '\x00') {
		return fmt.Errorf("query contains null byte")
	}

	for _, r := range query {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return fmt.Errorf("query contains control character")
		}
	}

	if v.maxDepth > 0 {
		if depth := calculateNestingDepth(query); depth > v.maxDepth {
			return fmt.Errorf("query too complex: nesting depth %d exceeds maximum of %d", depth, v.maxDepth)
		}
	}

	if v.maxTerms > 0 {
		if terms := countTerms(query); terms > v.maxTerms {
			return fmt.Errorf("query too large: %d terms exceeds maximum of %d", terms, v.maxTerms)
		}
	}

	return nil
}

// calculateNestingDepth tracks the deepest level of (), [], or {} grouping,
// ignoring delimiters inside a quoted phrase.
func calculateNestingDepth(query string) int {
	maxDepth := 0
	currentDepth := 0
	inQuotes := false

	for i := 0; i < len(query); i++ {
		c := query[i]

		if c == '\\' && i+1 < len(query) {
			i++
			continue
		}
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		switch c {
		case '(', '[', '{':
			currentDepth++
			if currentDepth > maxDepth {
				maxDepth = currentDepth
			}
		case ')', ']', '}':
			currentDepth--
		}
	}

	return maxDepth
}

// countTerms counts search terms (field:value pairs, bare words, quoted
// phrases) in a query, excluding AND/OR/NOT keywords and grouping
// punctuation, as a cheap proxy for how expensive the query is to evaluate.
func countTerms(query string) int {
	if query == "" {
		return 0
	}

	terms := 0
	inQuotes := false
	inRange := false
	currentTerm := false

	flush := func() {
		if currentTerm {
			terms++
			currentTerm = false
		}
	}

	for i := 0; i < len(query); i++ {
		c := query[i]

		if c == '\\' && i+1 < len(query) {
			i++
			currentTerm = true
			continue
		}

		if c == '"' {
			flush()
			currentTerm = !inQuotes
			inQuotes = !inQuotes
			if !inQuotes {
				flush()
			}
			continue
		}
		if inQuotes {
			continue
		}

		switch {
		case c == '[' || c == '{':
			inRange = true
			flush()
			continue
		case c == ']' || c == '}':
			inRange = false
			flush()
			continue
		}
		if inRange {
			continue
		}

		if c == ' ' || c == '(' || c == ')' {
			flush()
			continue
		}

		if !currentTerm {
			remaining := query[i:]
			matched := false
			for _, kw := range []string{"AND ", "OR ", "NOT ", "and ", "or ", "not "} {
				if strings.HasPrefix(remaining, kw) {
					flush()
					i += len(kw) - 1
					matched = true
					break
				}
			}
			if matched {
				continue
			}
		}

		currentTerm = true
	}
	flush()

	return terms
}

// ValidateSchemaName validates a schema name for security and format
func (v *Validator) ValidateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("schema name cannot be empty")
	}

	if len(name) > v.maxFieldNameLength {
		return fmt.Errorf("schema name exceeds maximum length of %d characters", v.maxFieldNameLength)
	}

	if strings.ContainsRune(name, '\x00') {
		return fmt.Errorf("schema name contains null byte")
	}

	for i, r := range name {
		if !isAlphanumeric(r) && !strings.ContainsRune(v.allowedSpecialChars, r) {
			return fmt.Errorf("schema name contains invalid character '%c' at position %d", r, i)
		}
	}

	return nil
}

// ValidateFieldName validates a field name for security and format
func (v *Validator) ValidateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("field name cannot be empty")
	}

	if len(name) > v.maxFieldNameLength {
		return fmt.Errorf("field name exceeds maximum length of %d characters", v.maxFieldNameLength)
	}

	if strings.ContainsRune(name, '\x00') {
		return fmt.Errorf("field name contains null byte")
	}

	for i, r := range name {
		if !isAlphanumeric(r) && !strings.ContainsRune(v.allowedSpecialChars, r) {
			return fmt.Errorf("field name contains invalid character '%c' at position %d", r, i)
		}
	}

	return nil
}

// isAlphanumeric checks if a rune is alphanumeric (a-z, A-Z, 0-9)
func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
