package validation

import (
	"strings"
)

// SanitizeQuery strips bytes the lexer was never meant to see (null bytes,
// control characters) and trims surrounding whitespace. It does not alter
// query syntax — Lucene operators, quoting, and escapes are left intact for
// the parser to interpret.
func SanitizeQuery(query string) string {
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, "\x00", "")

	var sanitized strings.Builder
	sanitized.Grow(len(query))
	for _, r := range query {
		if r >= 32 || r == '\t' || r == '\n' || r == '\r' {
			sanitized.WriteRune(r)
		}
	}

	return strings.TrimSpace(sanitized.String())
}

// SanitizeFieldName normalizes a field name by removing invalid characters.
// Only allows alphanumeric characters and the specified special characters.
func SanitizeFieldName(name string, allowedSpecialChars string) string {
	if name == "" {
		return ""
	}

	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\x00", "")

	var sanitized strings.Builder
	sanitized.Grow(len(name))
	for _, r := range name {
		if isAlphanumeric(r) || strings.ContainsRune(allowedSpecialChars, r) {
			sanitized.WriteRune(r)
		}
	}

	return sanitized.String()
}
