package query

import (
	"github.com/infiniv/luqum/internal/errors"
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/internal/visitor"
)

// Checker inspects a parsed tree for constructs that parse unambiguously but
// read ambiguously, surfacing them as non-fatal diagnostics rather than
// translation errors.
type Checker interface {
	Check(tree parser.Node) []error
}

// AmbiguityChecker flags an AndOperation/OrOperation directly containing an
// operand of the other boolean kind without an explicit Group around it:
// precedence resolves "a AND b OR c" as OrOperation{AndOperation{a,b}, c}
// without error, but a reader skimming it without parentheses can easily
// misjudge which operator binds tighter.
type AmbiguityChecker struct{}

// NewAmbiguityChecker builds the checker.
func NewAmbiguityChecker() *AmbiguityChecker { return &AmbiguityChecker{} }

// Check walks tree and returns one *errors.OrAndAndOnSameLevel per
// unparenthesized AND/OR mix found.
func (c *AmbiguityChecker) Check(tree parser.Node) []error {
	var found []error
	visitor.Walk(tree, visitor.VisitorFunc(func(_ visitor.Context, n parser.Node) {
		switch op := n.(type) {
		case *parser.AndOperation:
			found = append(found, flagMixed(op.Items, parser.KindOrOperation)...)
		case *parser.OrOperation:
			found = append(found, flagMixed(op.Items, parser.KindAndOperation)...)
		}
	}))
	return found
}

func flagMixed(items []parser.Node, otherKind parser.NodeKind) []error {
	var found []error
	for _, item := range items {
		if item.Kind() != otherKind {
			continue
		}
		var pos *parser.Position
		if p, size, ok := item.Span(); ok && size >= 0 {
			pos = &p
		}
		found = append(found, errors.NewOrAndAndOnSameLevel(pos))
	}
	return found
}
