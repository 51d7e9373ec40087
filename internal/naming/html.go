package naming

import (
	"html"
	"strings"

	"github.com/infiniv/luqum/internal/parser"
)

// HTMLMarker reprints tree as HTML, wrapping every node whose path appears in
// ok or ko in a <span class="ok"> / <span class="ko"> around that node's
// full reprint (including its descendants), so nested boolean structure
// renders as nested spans. Nodes in neither set (e.g. ones below a name the
// engine never reported on) are reprinted unwrapped.
func HTMLMarker(tree parser.Node, ok, ko map[string]bool) string {
	var sb strings.Builder
	emit(&sb, tree, nil, ok, ko)
	return sb.String()
}

func emit(sb *strings.Builder, n parser.Node, path []int, ok, ko map[string]bool) {
	if n == nil {
		return
	}
	class := ""
	switch key := PathKey(path); {
	case ok[key]:
		class = "ok"
	case ko[key]:
		class = "ko"
	}
	if class != "" {
		sb.WriteString(`<span class="`)
		sb.WriteString(class)
		sb.WriteString(`">`)
	}
	sb.WriteString(html.EscapeString(n.Head()))
	writeBody(sb, n, path, ok, ko)
	sb.WriteString(html.EscapeString(n.Tail()))
	if class != "" {
		sb.WriteString("</span>")
	}
}

func child(path []int, i int) []int {
	return append(append([]int(nil), path...), i)
}

func writeBody(sb *strings.Builder, n parser.Node, path []int, ok, ko map[string]bool) {
	switch v := n.(type) {
	case *parser.Word:
		sb.WriteString(html.EscapeString(v.Value))
	case *parser.Phrase:
		sb.WriteString(html.EscapeString(v.Value))
	case *parser.Regex:
		sb.WriteString(html.EscapeString(v.Value))
	case *parser.SearchField:
		sb.WriteString(html.EscapeString(v.Name))
		sb.WriteString(":")
		emit(sb, v.Expr, child(path, 0), ok, ko)
	case *parser.Group:
		sb.WriteString("(")
		emit(sb, v.Expr, child(path, 0), ok, ko)
		sb.WriteString(")")
	case *parser.FieldGroup:
		sb.WriteString("(")
		emit(sb, v.Expr, child(path, 0), ok, ko)
		sb.WriteString(")")
	case *parser.Range:
		if v.IncludeLow {
			sb.WriteString("[")
		} else {
			sb.WriteString("{")
		}
		emit(sb, v.Low, child(path, 0), ok, ko)
		sb.WriteString("TO")
		emit(sb, v.High, child(path, 1), ok, ko)
		if v.IncludeHigh {
			sb.WriteString("]")
		} else {
			sb.WriteString("}")
		}
	case *parser.Fuzzy:
		emit(sb, v.Term, child(path, 0), ok, ko)
		sb.WriteString("~")
		if v.HasDegree {
			sb.WriteString(html.EscapeString(parser.FormatFloat(v.Degree)))
		}
	case *parser.Proximity:
		emit(sb, v.Phrase, child(path, 0), ok, ko)
		sb.WriteString("~")
		if v.HasDegree {
			sb.WriteString(html.EscapeString(parser.FormatFloat(v.Degree)))
		}
	case *parser.Boost:
		emit(sb, v.Expr, child(path, 0), ok, ko)
		sb.WriteString("^")
		sb.WriteString(html.EscapeString(parser.FormatFloat(v.Force)))
	case *parser.Not:
		sb.WriteString(html.EscapeString(v.Keyword))
		emit(sb, v.Expr, child(path, 0), ok, ko)
	case *parser.Plus:
		sb.WriteString("+")
		emit(sb, v.Expr, child(path, 0), ok, ko)
	case *parser.Prohibit:
		sb.WriteString("-")
		emit(sb, v.Expr, child(path, 0), ok, ko)
	case *parser.AndOperation:
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(html.EscapeString(v.Ops[i-1]))
			}
			emit(sb, item, child(path, i), ok, ko)
		}
	case *parser.OrOperation:
		for i, item := range v.Items {
			if i > 0 {
				sb.WriteString(html.EscapeString(v.Ops[i-1]))
			}
			emit(sb, item, child(path, i), ok, ko)
		}
	case *parser.UnknownOperation:
		for i, item := range v.Items {
			emit(sb, item, child(path, i), ok, ko)
		}
	}
}
