// Package naming assigns stable, deterministic names to sub-expressions of a
// parsed query (C6) so that a translated Elasticsearch query can carry
// _name attributes an engine's match/highlight report can be mapped back
// through.
package naming

import (
	"fmt"
	"strings"

	"github.com/infiniv/luqum/internal/parser"
)

// NameIndex is the result of AutoName: a bijection between stable names
// ("q0", "q1", ...) and the path (sequence of child indices from the root)
// of the node each name was assigned to.
type NameIndex struct {
	pathToName map[string]string
	nameToPath map[string][]int
	order      []string
}

// Path returns the path a name was assigned to, if any.
func (idx *NameIndex) Path(name string) ([]int, bool) {
	p, ok := idx.nameToPath[name]
	return p, ok
}

// NameAt returns the name assigned to the node at path, if any.
func (idx *NameIndex) NameAt(path []int) (string, bool) {
	n, ok := idx.pathToName[PathKey(path)]
	return n, ok
}

// Names returns every assigned name in the deterministic order AutoName
// assigned them.
func (idx *NameIndex) Names() []string {
	return append([]string(nil), idx.order...)
}

// PathKey renders a path as the map key used throughout this package (and by
// MatchingPropagator's ok/ko result maps), so callers can key their own data
// by path consistently with NameIndex.
func PathKey(path []int) string {
	if len(path) == 0 {
		return "root"
	}
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ".")
}

// isTransparent reports whether a node kind is pure structure (grouping or a
// boolean connective) that is never itself named; naming recurses through it
// to the operands it carries instead.
func isTransparent(k parser.NodeKind) bool {
	switch k {
	case parser.KindAndOperation, parser.KindOrOperation, parser.KindUnknownOperation,
		parser.KindNot, parser.KindPlus, parser.KindProhibit,
		parser.KindGroup, parser.KindFieldGroup:
		return true
	default:
		return false
	}
}

// AutoName walks tree in document order (depth-first, pre-order) and assigns
// a name to every operand: leaves (Word, Phrase, Regex, Range) and the
// single-unit wrappers around them (SearchField, Fuzzy, Proximity, Boost).
// Operators and grouping parens are transparent — they are never named
// themselves, and naming recurses through them to find the operands they
// carry. Operator nodes (AndOperation, OrOperation, UnknownOperation,
// Not, Plus, Prohibit, Group, FieldGroup) therefore never appear as a name's
// target.
func AutoName(tree parser.Node) *NameIndex {
	idx := &NameIndex{
		pathToName: make(map[string]string),
		nameToPath: make(map[string][]int),
	}
	n := 0
	var walk func(node parser.Node, path []int)
	walk = func(node parser.Node, path []int) {
		if node == nil {
			return
		}
		if isTransparent(node.Kind()) {
			for i, c := range node.Children() {
				childPath := append(append([]int(nil), path...), i)
				walk(c, childPath)
			}
			return
		}
		name := fmt.Sprintf("q%d", n)
		n++
		key := PathKey(path)
		idx.pathToName[key] = name
		idx.nameToPath[name] = append([]int(nil), path...)
		idx.order = append(idx.order, name)
	}
	walk(tree, nil)
	return idx
}

// ElementFromPath walks down from root following path (a sequence of child
// indices) and returns the node found there, or nil if path runs past a leaf
// or out of range.
func ElementFromPath(root parser.Node, path []int) parser.Node {
	n := root
	for _, i := range path {
		if n == nil {
			return nil
		}
		children := n.Children()
		if i < 0 || i >= len(children) {
			return nil
		}
		n = children[i]
	}
	return n
}

// ElementFromName resolves a name to the node it was assigned to.
func ElementFromName(root parser.Node, name string, idx *NameIndex) parser.Node {
	path, ok := idx.Path(name)
	if !ok {
		return nil
	}
	return ElementFromPath(root, path)
}
