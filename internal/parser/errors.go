package parser

import (
	"fmt"
	"strings"
)

// String renders a Position the way diagnostics in this package report it.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// IllegalCharacterError is raised by the lexer when it encounters a
// character that starts none of the recognized token kinds.
type IllegalCharacterError struct {
	Position Position
	Char     rune
}

func (e *IllegalCharacterError) Error() string {
	return fmt.Sprintf("illegal character %q at %s", e.Char, e.Position)
}

// ParseError is the base of every parser-raised error; it always carries a
// position.
type ParseError struct {
	Message  string
	Position Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

// NewParseError builds a bare ParseError (used internally by the lexer for
// conditions, like an unterminated phrase, that aren't syntax errors in the
// grammar sense but still need a position-carrying error).
func NewParseError(message string, pos Position) *ParseError {
	return &ParseError{Message: message, Position: pos}
}

// ParseSyntaxError is raised when the parser cannot match the grammar at the
// current token. It carries the offending token's position, a one-line
// excerpt of the surrounding input and the set of token kinds that would
// have been accepted instead.
type ParseSyntaxError struct {
	Position Position
	Excerpt  string
	Got      string
	Expected []TokenType
	AtEOF    bool
}

func (e *ParseSyntaxError) Error() string {
	var sb strings.Builder
	if e.AtEOF {
		sb.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&sb, "unexpected %s", e.Got)
	}
	fmt.Fprintf(&sb, " at %s", e.Position)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, t := range e.Expected {
			names[i] = t.String()
		}
		fmt.Fprintf(&sb, ", expected one of: %s", strings.Join(names, ", "))
	}
	if e.Excerpt != "" {
		fmt.Fprintf(&sb, "\n  %s", e.Excerpt)
	}
	return sb.String()
}

// excerpt returns a single-line window of text around offset, for inclusion
// in a ParseSyntaxError.
func excerpt(input string, offset int) string {
	const radius = 24
	start := offset - radius
	if start < 0 {
		start = 0
	}
	end := offset + radius
	if end > len(input) {
		end = len(input)
	}
	line := input[start:end]
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	return line
}
