package visitor

import (
	"fmt"

	"github.com/infiniv/luqum/internal/parser"
)

// Transformer is dispatched once per node, pre-order. Visit may return
// handled=false to request the default generic_visit behavior (recurse,
// rebuild the node from its possibly-changed children, yield it unchanged).
// When handled=true, the returned nodes are used as-is in place of n and are
// not independently recursed into again — a Transformer that wants both a
// rewrite and recursion into the rewritten result's children must do that
// recursion itself (e.g. by calling Apply on the replacement).
//
// Yielding zero nodes removes n from its parent; yielding one replaces it;
// yielding more than one splices them in. If n's parent cannot accept more
// than one child in that slot (every node kind except AndOperation,
// OrOperation and UnknownOperation), yielding a count other than 1 is an
// arity error.
type Transformer interface {
	Visit(ctx Context, n parser.Node) (replacement []parser.Node, handled bool)
}

// TransformerFunc adapts a plain function to the Transformer interface.
type TransformerFunc func(ctx Context, n parser.Node) ([]parser.Node, bool)

func (f TransformerFunc) Visit(ctx Context, n parser.Node) ([]parser.Node, bool) { return f(ctx, n) }

// ArityError is raised when a Transformer yields a replacement count that
// the receiving parent slot cannot accept.
type ArityError struct {
	Kind parser.NodeKind
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("visitor: %s cannot accept %d replacement node(s)", e.Kind, e.Got)
}

// Apply runs t over n and returns the rebuilt tree. It never mutates n or
// any of its descendants in place; every edit produces new nodes via
// parser.Node.Clone/WithChildren. A root transform that yields zero nodes
// returns (nil, nil); yielding more than one node at the root is an
// ArityError since there is no parent to splice into.
func Apply(n parser.Node, t Transformer) (result parser.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ae, ok := r.(*ArityError); ok {
				err = ae
				return
			}
			panic(r)
		}
	}()
	out := transformNode(n, t, Context{})
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0], nil
	default:
		panic(&ArityError{Kind: n.Kind(), Got: len(out)})
	}
}

func transformNode(n parser.Node, t Transformer, ctx Context) []parser.Node {
	if n == nil {
		return nil
	}
	if repl, handled := t.Visit(ctx, n); handled {
		return repl
	}
	return genericVisit(n, t, ctx)
}

// genericVisit is the default behavior: recurse into children (collecting
// each child's replacement list, which may be empty/one/many), then rebuild
// the parent with the new child list.
func genericVisit(n parser.Node, t Transformer, ctx Context) []parser.Node {
	children := n.Children()
	var newChildren []parser.Node
	for i, c := range children {
		newChildren = append(newChildren, transformNode(c, t, ctx.Descend(i, n))...)
	}
	return rebuild(n, newChildren)
}

// isNary reports whether n's children slot is a true n-ary list (>=0
// accepted, with 1 a disappearing downgrade and 0 a removal) as opposed to a
// fixed-arity holder.
func isNary(k parser.NodeKind) bool {
	switch k {
	case parser.KindAndOperation, parser.KindOrOperation, parser.KindUnknownOperation:
		return true
	default:
		return false
	}
}

func fixedArity(k parser.NodeKind) int {
	if k == parser.KindRange {
		return 2
	}
	return 1 // every other non-leaf, non-n-ary kind holds exactly one child
}

func rebuild(n parser.Node, children []parser.Node) []parser.Node {
	if len(n.Children()) == 0 {
		// leaf: nothing to rebuild regardless of what children produced
		return []parser.Node{n}
	}

	if isNary(n.Kind()) {
		switch len(children) {
		case 0:
			return nil // n-ary operator with no surviving operands vanishes
		case 1:
			return children // downgrades to its sole child; the operator disappears
		default:
			return []parser.Node{n.WithChildren(children)}
		}
	}

	want := fixedArity(n.Kind())
	switch {
	case len(children) == want:
		return []parser.Node{n.WithChildren(children)}
	default:
		panic(&ArityError{Kind: n.Kind(), Got: len(children)})
	}
}
