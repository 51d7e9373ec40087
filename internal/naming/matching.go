package naming

import "github.com/infiniv/luqum/internal/parser"

// MatchingPropagator folds an engine's reported set of matched names back up
// through the query's boolean structure. It returns two disjoint sets of
// paths (keyed by PathKey, covering every node in tree, not just named
// ones): ok paths are those that did match (a named operand whose name is in
// matchedNames, or a connective whose operands satisfy its operator
// semantics), ko paths are everything else. AND requires every operand ok;
// OR and the implicit UnknownOperation connective require at least one;
// NOT and Prohibit invert their operand's status; Plus and transparent
// grouping (Group, FieldGroup) simply pass their operand's status through.
func MatchingPropagator(tree parser.Node, matchedNames map[string]bool, idx *NameIndex) (ok, ko map[string]bool) {
	ok = make(map[string]bool)
	ko = make(map[string]bool)

	var eval func(n parser.Node, path []int) bool
	eval = func(n parser.Node, path []int) bool {
		if n == nil {
			return false
		}

		var matched bool
		switch n.Kind() {
		case parser.KindAndOperation:
			matched = true
			for i, c := range n.Children() {
				if !eval(c, append(append([]int(nil), path...), i)) {
					matched = false
				}
			}
		case parser.KindOrOperation, parser.KindUnknownOperation:
			matched = false
			for i, c := range n.Children() {
				if eval(c, append(append([]int(nil), path...), i)) {
					matched = true
				}
			}
		case parser.KindNot, parser.KindProhibit:
			childPath := append(append([]int(nil), path...), 0)
			matched = !eval(n.Children()[0], childPath)
		case parser.KindPlus, parser.KindGroup, parser.KindFieldGroup:
			childPath := append(append([]int(nil), path...), 0)
			matched = eval(n.Children()[0], childPath)
		default:
			if name, found := idx.NameAt(path); found {
				matched = matchedNames[name]
			}
		}

		key := PathKey(path)
		if matched {
			ok[key] = true
		} else {
			ko[key] = true
		}
		return matched
	}

	eval(tree, nil)
	return ok, ko
}
