package translator

import (
	"strings"

	"github.com/infiniv/luqum/internal/errors"
	"github.com/infiniv/luqum/internal/parser"
	"github.com/infiniv/luqum/internal/query"
)

// resolveField determines the field a leaf under ctx targets, and validates
// it against the schema's nested/object constraints.
func resolveField(ctx translateContext, opts *Options) (field, nestedPath string, err error) {
	field = ctx.field()
	if field == "" {
		field = opts.resolveDefaultField()
	}
	if field == "" {
		return "", "", errors.NewTranslationError("no field context and no default_field configured", "")
	}

	if opts.Schema == nil {
		return field, "", nil
	}
	if nested, ok := opts.Schema.IsNested(field); ok {
		if field == nested {
			// querying the nested container itself, not a declared sub-field
			return field, nested, errors.NewNestedSearchFieldException(field, nested)
		}
		suffix := field[len(nested)+1:]
		first := suffix
		if i := strings.IndexByte(suffix, '.'); i >= 0 {
			first = suffix[:i]
		}
		if first == "" || !opts.Schema.NestedFields[nested][first] {
			return field, nested, errors.NewNestedSearchFieldException(field, nested)
		}
		return field, nested, nil
	}
	if opts.Schema.ObjectFields[field] {
		return field, "", errors.NewObjectSearchFieldException(field)
	}
	return field, "", nil
}

func isAnalyzed(field string, opts *Options) bool {
	if opts.Schema == nil {
		return true
	}
	if opts.Schema.NotAnalyzedFields[field] {
		return false
	}
	if typ, ok := opts.Schema.SubFields[field]; ok {
		return !notAnalyzedSubType(typ)
	}
	return true
}

func notAnalyzedSubType(typ string) bool {
	switch typ {
	case "keyword", "integer", "long", "short", "byte", "double", "float",
		"half_float", "scaled_float", "date", "boolean", "ip":
		return true
	default:
		return false
	}
}

const defaultFuzzyDegree = 2.0

// buildElement is Pass A: it lowers an AST node into the intermediate
// element tree, threading field/nested-path/name context explicitly through
// ctx rather than via hidden walker state.
func buildElement(n parser.Node, ctx translateContext, opts *Options) (Element, error) {
	switch v := n.(type) {
	case *parser.Word:
		return buildWord(v.Value, false, ctx, opts)
	case *parser.Regex:
		return buildWord(v.Value, true, ctx, opts)
	case *parser.Phrase:
		field, nested, err := resolveField(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &EPhrase{leaf: leaf{Field: field, Name: ctx.nameFor(), Nested: nested}, Value: unquote(v.Value)}, nil
	case *parser.SearchField:
		// SearchField is a single-unit wrapper: the whole field:(...)
		// subtree carries one name, assigned to SearchField's own path, not
		// whatever path its Expr sits at.
		name := ctx.nameFor()
		inner, err := buildElement(v.Expr, ctx.pushField(v.Name).descend(0), opts)
		if err != nil {
			return nil, err
		}
		setName(inner, name)
		return inner, nil
	case *parser.Group:
		return buildElement(v.Expr, ctx.descend(0), opts)
	case *parser.FieldGroup:
		return buildElement(v.Expr, ctx.descend(0), opts)
	case *parser.Range:
		return buildRange(v, ctx, opts)
	case *parser.Fuzzy:
		field, nested, err := resolveField(ctx, opts)
		if err != nil {
			return nil, err
		}
		degree := v.Degree
		if !v.HasDegree {
			degree = defaultFuzzyDegree
		}
		value, err := wordValue(v.Term)
		if err != nil {
			return nil, err
		}
		return &EFuzzy{leaf: leaf{Field: field, Name: ctx.nameFor(), Nested: nested}, Value: value, Degree: degree}, nil
	case *parser.Proximity:
		field, nested, err := resolveField(ctx, opts)
		if err != nil {
			return nil, err
		}
		degree := v.Degree
		if !v.HasDegree {
			degree = 0
		}
		phrase, ok := v.Phrase.(*parser.Phrase)
		if !ok {
			return nil, errors.NewTranslationError("proximity applies only to a phrase", field)
		}
		return &EProximity{leaf: leaf{Field: field, Name: ctx.nameFor(), Nested: nested}, Value: unquote(phrase.Value), Degree: degree}, nil
	case *parser.Boost:
		name := ctx.nameFor()
		inner, err := buildElement(v.Expr, ctx.descend(0), opts)
		if err != nil {
			return nil, err
		}
		boosted := applyBoost(inner, v.Force)
		setName(boosted, name)
		return boosted, nil
	case *parser.Not:
		inner, err := buildElement(v.Expr, ctx.descend(0), opts)
		if err != nil {
			return nil, err
		}
		return &EBoolOperation{MustNot: []Element{inner}}, nil
	case *parser.Prohibit:
		inner, err := buildElement(v.Expr, ctx.descend(0), opts)
		if err != nil {
			return nil, err
		}
		return &EBoolOperation{MustNot: []Element{inner}}, nil
	case *parser.Plus:
		inner, err := buildElement(v.Expr, ctx.descend(0), opts)
		if err != nil {
			return nil, err
		}
		return &EBoolOperation{Must: []Element{inner}}, nil
	case *parser.AndOperation:
		return buildJunction(v.Items, ctx, opts, true)
	case *parser.OrOperation:
		return buildJunction(v.Items, ctx, opts, false)
	case *parser.UnknownOperation:
		isAnd, err := resolveUnknownOperator(opts)
		if err != nil {
			return nil, err
		}
		return buildJunction(v.Items, ctx, opts, isAnd)
	default:
		return nil, errors.NewTranslationError("unsupported node kind", n.Kind().String())
	}
}

func resolveUnknownOperator(opts *Options) (bool, error) {
	switch opts.DefaultOperator {
	case "AND":
		return true, nil
	case "OR":
		return false, nil
	default:
		return false, errors.NewInconsistentQueryException(
			"encountered an UnknownOperation without a resolver run first, and no default_operator configured", nil)
	}
}

// buildJunction builds an AndOperation/OrOperation (or a resolved
// UnknownOperation). AND siblings that are themselves Not/Prohibit/Plus
// flatten directly into the enclosing bool's must/must_not lists, mirroring
// how must/must_not live side by side in one {bool: {...}}; OR siblings
// never flatten this way since each `should` entry must stand as its own
// complete clause.
func buildJunction(items []parser.Node, ctx translateContext, opts *Options, isAnd bool) (Element, error) {
	result := &EBoolOperation{}
	for i, item := range items {
		childCtx := ctx.descend(i)
		if isAnd {
			switch v := item.(type) {
			case *parser.Not:
				inner, err := buildElement(v.Expr, childCtx.descend(0), opts)
				if err != nil {
					return nil, err
				}
				result.MustNot = append(result.MustNot, inner)
				continue
			case *parser.Prohibit:
				inner, err := buildElement(v.Expr, childCtx.descend(0), opts)
				if err != nil {
					return nil, err
				}
				result.MustNot = append(result.MustNot, inner)
				continue
			case *parser.Plus:
				inner, err := buildElement(v.Expr, childCtx.descend(0), opts)
				if err != nil {
					return nil, err
				}
				result.Must = append(result.Must, inner)
				continue
			}
		}
		built, err := buildElement(item, childCtx, opts)
		if err != nil {
			return nil, err
		}
		if isAnd {
			result.Must = append(result.Must, built)
		} else {
			result.Should = append(result.Should, built)
		}
	}
	result.Must = groupNested(result.Must)
	result.Should = groupNested(result.Should)
	result.MustNot = groupNested(result.MustNot)
	return result, nil
}

func buildWord(value string, isRegex bool, ctx translateContext, opts *Options) (Element, error) {
	field, nested, err := resolveField(ctx, opts)
	if err != nil {
		return nil, err
	}
	if value == "*" && !isRegex {
		return &EExists{leaf: leaf{Field: field, Name: ctx.nameFor(), Nested: nested}}, nil
	}
	return &EWord{
		leaf:        leaf{Field: field, Name: ctx.nameFor(), Nested: nested},
		Value:       parser.Unescape(value),
		Analyzed:    isAnalyzed(field, opts),
		HasWildcard: !isRegex && len(query.IterWildcards(value)) > 0,
	}, nil
}

func buildRange(v *parser.Range, ctx translateContext, opts *Options) (Element, error) {
	field, nested, err := resolveField(ctx, opts)
	if err != nil {
		return nil, err
	}
	r := &ERange{leaf: leaf{Field: field, Name: ctx.nameFor(), Nested: nested}, InclLow: v.IncludeLow, InclHigh: v.IncludeHigh}
	if !parser.IsWildcardSentinel(v.Low) {
		low, err := wordValue(v.Low)
		if err != nil {
			return nil, err
		}
		r.Low = &low
	}
	if !parser.IsWildcardSentinel(v.High) {
		high, err := wordValue(v.High)
		if err != nil {
			return nil, err
		}
		r.High = &high
	}
	return r, nil
}

func wordValue(n parser.Node) (string, error) {
	w, ok := n.(*parser.Word)
	if !ok {
		return "", errors.NewTranslationError("expected a bare term", n.Kind().String())
	}
	return parser.Unescape(w.Value), nil
}

func unquote(phrase string) string {
	if len(phrase) >= 2 && phrase[0] == '"' && phrase[len(phrase)-1] == '"' {
		return parser.Unescape(phrase[1 : len(phrase)-1])
	}
	return parser.Unescape(phrase)
}

// applyBoost attaches Force to a leaf element's own Boost field, or wraps a
// compound element (bool/nested/boost) in EBoost so Pass B emits a
// function_score around it.
func applyBoost(inner Element, force float64) Element {
	switch e := inner.(type) {
	case *EWord:
		e.Boost = &force
		return e
	case *EPhrase:
		e.Boost = &force
		return e
	case *ERange:
		e.Boost = &force
		return e
	case *EFuzzy:
		e.Boost = &force
		return e
	case *EProximity:
		e.Boost = &force
		return e
	case *EExists:
		e.Boost = &force
		return e
	default:
		return &EBoost{Query: inner, Force: force}
	}
}

// groupNested merges consecutive-or-not siblings that share a nested path
// into one ENested wrapper (the "shorter requests" behavior), preserving the
// position of each group's first member.
func groupNested(elems []Element) []Element {
	if len(elems) == 0 {
		return elems
	}
	type bucket struct {
		path  string
		items []Element
	}
	anyNested := false
	buckets := make(map[string]*bucket)

	for _, e := range elems {
		path, ok := e.nestedPath()
		if !ok {
			continue
		}
		anyNested = true
		b, exists := buckets[path]
		if !exists {
			b = &bucket{path: path}
			buckets[path] = b
		}
		b.items = append(b.items, e)
	}
	if !anyNested {
		return elems
	}

	out := make([]Element, 0, len(elems))
	// Rebuild in original relative order: walk elems once more, emitting each
	// bucket (as one ENested) the first time one of its members is seen, and
	// emitting passthrough elements in place.
	emitted := make(map[string]bool)
	for _, e := range elems {
		path, ok := e.nestedPath()
		if !ok {
			out = append(out, e)
			continue
		}
		switch l := e.(type) {
		case *EWord:
			l.Nested = ""
		case *EPhrase:
			l.Nested = ""
		case *ERange:
			l.Nested = ""
		case *EFuzzy:
			l.Nested = ""
		case *EProximity:
			l.Nested = ""
		case *EExists:
			l.Nested = ""
		}
		if emitted[path] {
			continue
		}
		emitted[path] = true
		b := buckets[path]
		if len(b.items) == 1 {
			out = append(out, &ENested{Path: path, Query: b.items[0]})
		} else {
			out = append(out, &ENested{Path: path, Query: &EBoolOperation{Must: b.items}})
		}
	}
	return out
}
