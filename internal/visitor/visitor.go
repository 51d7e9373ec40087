// Package visitor provides the generic traversal framework (C5): a
// read-only Visitor and a tree-rewriting Transformer, both path-aware.
package visitor

import "github.com/infiniv/luqum/internal/parser"

// Context carries the path from the root (a sequence of child indices) and
// a reference to the current node's parent, as seen by a Visitor or
// Transformer callback.
type Context struct {
	Path   []int
	Parent parser.Node
}

// Descend returns the Context for the index-th child of parent.
func (c Context) Descend(index int, parent parser.Node) Context {
	path := make([]int, len(c.Path)+1)
	copy(path, c.Path)
	path[len(path)-1] = index
	return Context{Path: path, Parent: parent}
}

// Visitor is dispatched once per node, pre-order, children in document
// order. The default behavior (simply recursing into children) is supplied
// by the Walk driver itself; Visit never controls whether recursion
// happens, only what the caller observes at each node.
type Visitor interface {
	Visit(ctx Context, n parser.Node)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(ctx Context, n parser.Node)

func (f VisitorFunc) Visit(ctx Context, n parser.Node) { f(ctx, n) }

// Walk traverses n pre-order, invoking v at every node including the root.
func Walk(n parser.Node, v Visitor) {
	walk(n, v, Context{})
}

func walk(n parser.Node, v Visitor, ctx Context) {
	if n == nil {
		return
	}
	v.Visit(ctx, n)
	for i, c := range n.Children() {
		walk(c, v, ctx.Descend(i, n))
	}
}
