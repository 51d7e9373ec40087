// Package printer reconstructs Lucene query text from an AST, losslessly
// when the tree still carries its original parse trivia.
package printer

import (
	"strconv"
	"strings"

	"github.com/infiniv/luqum/internal/parser"
)

// Print concatenates, in order, each node's head trivia, its own surface
// glyphs interleaved with the recursive printing of its children, and its
// tail trivia. It never inserts separators of its own — all spacing comes
// from the trivia carried on the nodes themselves.
func Print(n parser.Node) string {
	var sb strings.Builder
	write(&sb, n)
	return sb.String()
}

func write(sb *strings.Builder, n parser.Node) {
	if n == nil {
		return
	}
	sb.WriteString(n.Head())
	switch v := n.(type) {
	case *parser.Word:
		sb.WriteString(v.Value)
	case *parser.Phrase:
		sb.WriteString(v.Value)
	case *parser.Regex:
		sb.WriteString(v.Value)
	case *parser.SearchField:
		sb.WriteString(v.Name)
		sb.WriteString(":")
		write(sb, v.Expr)
	case *parser.Group:
		sb.WriteString("(")
		write(sb, v.Expr)
		sb.WriteString(")")
	case *parser.FieldGroup:
		sb.WriteString("(")
		write(sb, v.Expr)
		sb.WriteString(")")
	case *parser.Range:
		if v.IncludeLow {
			sb.WriteString("[")
		} else {
			sb.WriteString("{")
		}
		write(sb, v.Low)
		sb.WriteString("TO")
		write(sb, v.High)
		if v.IncludeHigh {
			sb.WriteString("]")
		} else {
			sb.WriteString("}")
		}
	case *parser.Fuzzy:
		write(sb, v.Term)
		sb.WriteString("~")
		if v.HasDegree {
			sb.WriteString(formatDegree(v.Degree))
		}
	case *parser.Proximity:
		write(sb, v.Phrase)
		sb.WriteString("~")
		if v.HasDegree {
			sb.WriteString(formatDegree(v.Degree))
		}
	case *parser.Boost:
		write(sb, v.Expr)
		sb.WriteString("^")
		sb.WriteString(formatDegree(v.Force))
	case *parser.Not:
		sb.WriteString(v.Keyword)
		write(sb, v.Expr)
	case *parser.Plus:
		sb.WriteString("+")
		write(sb, v.Expr)
	case *parser.Prohibit:
		sb.WriteString("-")
		write(sb, v.Expr)
	case *parser.AndOperation:
		writeNary(sb, v.Items, v.Ops)
	case *parser.OrOperation:
		writeNary(sb, v.Items, v.Ops)
	case *parser.UnknownOperation:
		for _, item := range v.Items {
			write(sb, item)
		}
	}
	sb.WriteString(n.Tail())
}

func writeNary(sb *strings.Builder, items []parser.Node, ops []string) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(ops[i-1])
		}
		write(sb, item)
	}
}

func formatDegree(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
