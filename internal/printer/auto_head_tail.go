package printer

import "github.com/infiniv/luqum/internal/parser"

// AutoHeadTail walks a programmatically constructed tree (one built via the
// parser.New* constructors rather than produced by Parse) and injects the
// minimum trivia needed to make Print(n) syntactically valid: a single space
// between keyword operators and their operands, and no space just inside
// parens/brackets. It mutates the tree in place and returns it for chaining;
// unlike the visitor/transformer framework this utility operates on a tree
// the caller is still constructing, not one already owned elsewhere.
func AutoHeadTail(n parser.Node) parser.Node {
	if n == nil {
		return n
	}
	switch v := n.(type) {
	case *parser.SearchField:
		AutoHeadTail(v.Expr)
	case *parser.Group:
		AutoHeadTail(v.Expr)
	case *parser.FieldGroup:
		AutoHeadTail(v.Expr)
	case *parser.Range:
		AutoHeadTail(v.Low)
		AutoHeadTail(v.High)
		v.Low.SetTail(" ")
		v.High.SetHead(" ")
	case *parser.Fuzzy:
		AutoHeadTail(v.Term)
	case *parser.Proximity:
		AutoHeadTail(v.Phrase)
	case *parser.Boost:
		AutoHeadTail(v.Expr)
	case *parser.Not:
		AutoHeadTail(v.Expr)
		if v.Keyword == "!" {
			v.Expr.SetHead("")
		} else {
			v.Expr.SetHead(" ")
		}
	case *parser.Plus:
		AutoHeadTail(v.Expr)
	case *parser.Prohibit:
		AutoHeadTail(v.Expr)
	case *parser.AndOperation:
		autoSpaceNary(v.Items)
	case *parser.OrOperation:
		autoSpaceNary(v.Items)
	case *parser.UnknownOperation:
		autoSpaceNary(v.Items)
	}
	return n
}

func autoSpaceNary(items []parser.Node) {
	for _, it := range items {
		AutoHeadTail(it)
	}
	for i := 0; i < len(items)-1; i++ {
		items[i].SetTail(" ")
		items[i+1].SetHead(" ")
	}
}
