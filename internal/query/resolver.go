// Package query holds the utility collaborators (C9): resolving the
// operator of an UnknownOperation from sibling context, enumerating
// wildcard positions inside a term, and flagging ambiguous mixed AND/OR
// nesting.
package query

import (
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/internal/visitor"
)

// DefaultOperator names the operator an UnknownOperation resolves to when
// sibling context gives no hint either way.
type DefaultOperator string

const (
	DefaultAnd DefaultOperator = "AND"
	DefaultOr  DefaultOperator = "OR"
)

// UnknownOperationResolver rewrites every UnknownOperation in a tree into an
// explicit AndOperation or OrOperation, preferring whichever operator
// already governs the enclosing context: AND if the parent is itself an
// AndOperation, OR if the parent is an OrOperation, otherwise Default.
type UnknownOperationResolver struct {
	Default DefaultOperator
}

// NewUnknownOperationResolver builds a resolver defaulting to def when
// sibling context gives no hint.
func NewUnknownOperationResolver(def DefaultOperator) *UnknownOperationResolver {
	return &UnknownOperationResolver{Default: def}
}

// Resolve returns a copy of tree with every UnknownOperation replaced by an
// explicit AndOperation/OrOperation.
func (r *UnknownOperationResolver) Resolve(tree parser.Node) (parser.Node, error) {
	return visitor.Apply(tree, r)
}

// Visit implements visitor.Transformer.
func (r *UnknownOperationResolver) Visit(ctx visitor.Context, n parser.Node) ([]parser.Node, bool) {
	op, ok := n.(*parser.UnknownOperation)
	if !ok {
		return nil, false
	}

	items := make([]parser.Node, len(op.Items))
	for i, item := range op.Items {
		resolved, err := visitor.Apply(item, r)
		if err != nil {
			panic(err)
		}
		items[i] = resolved
	}

	var replacement parser.Node
	switch resolveOperator(ctx, r.Default) {
	case DefaultAnd:
		and := parser.NewAndOperation(items...)
		and.SetHead(op.Head())
		and.SetTail(op.Tail())
		replacement = and
	default:
		or := parser.NewOrOperation(items...)
		or.SetHead(op.Head())
		or.SetTail(op.Tail())
		replacement = or
	}
	return []parser.Node{replacement}, true
}

func resolveOperator(ctx visitor.Context, def DefaultOperator) DefaultOperator {
	switch ctx.Parent.(type) {
	case *parser.AndOperation:
		return DefaultAnd
	case *parser.OrOperation:
		return DefaultOr
	default:
		return def
	}
}
