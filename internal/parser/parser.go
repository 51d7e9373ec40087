package parser

import (
	"fmt"
	"strconv"
)

// Parser is a hand-written Pratt/recursive-descent parser for the Lucene
// query mini-language. Precedence, lowest to highest: OR < AND < implicit
// concatenation (UnknownOperation) < unary prefix (NOT, +, -) < field: <
// postfix (^, ~). All binary operators are left-associative and flatten
// chains of the same operator into one n-ary node.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
}

// NewParser creates a parser over input, priming the two-token lookahead.
func NewParser(input string) (*Parser, error) {
	p := &Parser{lexer: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses text and returns the root AST node, or a ParseSyntaxError /
// IllegalCharacterError.
func Parse(text string) (Node, error) {
	p, err := NewParser(text)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse drives the grammar from the top (expr = or_expr) and requires the
// whole input to be consumed.
func (p *Parser) Parse() (Node, error) {
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.current.Type != EOF {
		return nil, p.syntaxError(nil)
	}
	return root, nil
}

func (p *Parser) advance() error {
	p.current = p.peek
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// attachTail moves the whitespace trivia that the lexer attached to the
// *next* token onto n's tail, per spec.md §4.1 ("attached as the head_trivia
// of the following token and as the trailing trivia of the preceding node at
// parse assembly"). It is safe to call redundantly: once the pending
// whitespace has been claimed, p.current.Head is empty and later calls are
// no-ops, which is what lets compound nodes (SearchField, Not, ...) skip
// their own call and simply inherit whatever their last descendant claimed.
func (p *Parser) attachTail(n Node) {
	n.SetTail(p.current.Head)
	p.current.Head = ""
}

func isAtomStart(t TokenType) bool {
	switch t {
	case NOT, PLUS, MINUS, TERM, PHRASE, REGEX, STAR, LPAREN, LBRACKET, LBRACE:
		return true
	default:
		return false
	}
}

// ---- expr ← or_expr ---------------------------------------------------------

func (p *Parser) parseExpr() (Node, error) {
	return p.parseOr()
}

// or_expr ← and_expr ( OR and_expr )*
func (p *Parser) parseOr() (Node, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	items := []Node{first}
	var ops []string
	for p.current.Type == OR {
		ops = append(ops, p.current.Literal)
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return first, nil
	}
	return &OrOperation{Items: items, Ops: ops}, nil
}

// and_expr ← impl_expr ( AND impl_expr )*
func (p *Parser) parseAnd() (Node, error) {
	first, err := p.parseImpl()
	if err != nil {
		return nil, err
	}
	items := []Node{first}
	var ops []string
	for p.current.Type == AND {
		ops = append(ops, p.current.Literal)
		if err := p.advance(); err != nil {
			return nil, err
		}
		next, err := p.parseImpl()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return first, nil
	}
	return &AndOperation{Items: items, Ops: ops}, nil
}

// impl_expr ← unary ( unary )* -- two or more ⇒ UnknownOperation. Never
// merges with an adjacent explicit AND/OR.
func (p *Parser) parseImpl() (Node, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	items := []Node{first}
	for isAtomStart(p.current.Type) {
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
	if len(items) == 1 {
		return first, nil
	}
	return &UnknownOperation{Items: items}, nil
}

// unary ← NOT unary | PLUS unary | MINUS unary | postfix
func (p *Parser) parseUnary() (Node, error) {
	switch p.current.Type {
	case NOT:
		head, kw := p.current.Head, p.current.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := NewNot(inner, kw)
		n.SetHead(head)
		p.attachTail(n)
		return n, nil
	case PLUS:
		head := p.current.Head
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := NewPlus(inner)
		n.SetHead(head)
		p.attachTail(n)
		return n, nil
	case MINUS:
		head := p.current.Head
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		n := NewProhibit(inner)
		n.SetHead(head)
		p.attachTail(n)
		return n, nil
	default:
		return p.parsePostfix()
	}
}

// postfix ← atom ( TILDE num? | CARET num )?
func (p *Parser) parsePostfix() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current.Type {
		case TILDE, APPROX:
			atom, err = p.applyFuzzyOrProximity(atom)
		case CARET, BOOST:
			atom, err = p.applyBoost(atom)
		default:
			return atom, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) applyFuzzyOrProximity(atom Node) (Node, error) {
	tok := p.current
	var degree float64
	hasDegree := tok.Type == APPROX
	if hasDegree {
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.syntaxError([]TokenType{APPROX})
		}
		degree = v
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	head := atom.Head()
	atom.SetHead("")
	var wrapped Node
	if _, isPhrase := atom.(*Phrase); isPhrase {
		wrapped = NewProximity(atom, degree, hasDegree)
	} else {
		wrapped = NewFuzzy(atom, degree, hasDegree)
	}
	wrapped.SetHead(head)
	p.attachTail(wrapped)
	return wrapped, nil
}

func (p *Parser) applyBoost(atom Node) (Node, error) {
	tok := p.current
	force := 1.0
	if tok.Type == BOOST {
		v, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			return nil, p.syntaxError([]TokenType{BOOST})
		}
		force = v
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	head := atom.Head()
	atom.SetHead("")
	wrapped := NewBoost(atom, force)
	wrapped.SetHead(head)
	p.attachTail(wrapped)
	return wrapped, nil
}

// atom ← TERM COLON atom_body | atom_body
func (p *Parser) parseAtom() (Node, error) {
	if p.current.Type == TERM && p.peek.Type == COLON {
		head, name := p.current.Head, p.current.Literal
		if err := p.advance(); err != nil { // consume TERM
			return nil, err
		}
		if err := p.advance(); err != nil { // consume COLON
			return nil, err
		}
		body, err := p.parseAtomBody(true)
		if err != nil {
			return nil, err
		}
		sf := NewSearchField(name, body)
		sf.SetHead(head)
		p.attachTail(sf)
		return sf, nil
	}
	return p.parseAtomBody(false)
}

// atom_body ← LPAREN expr RPAREN        -- Group, or FieldGroup if inField
//           | LBRACKET range RBRACKET   -- inclusive range
//           | LBRACE   range RBRACE     -- exclusive range
//           | PHRASE | REGEX | TERM | STAR
func (p *Parser) parseAtomBody(inField bool) (Node, error) {
	tok := p.current
	switch tok.Type {
	case LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.current.Type != RPAREN {
			return nil, p.syntaxError([]TokenType{RPAREN})
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		var n Node
		if inField {
			n = NewFieldGroup(inner)
		} else {
			n = NewGroup(inner)
		}
		n.SetHead(tok.Head)
		p.attachTail(n)
		return n, nil
	case LBRACKET, LBRACE:
		return p.parseRange(tok)
	case PHRASE:
		n := NewPhrase(tok.Literal)
		n.SetHead(tok.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	case REGEX:
		n := NewRegex(tok.Literal)
		n.SetHead(tok.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	case STAR:
		n := NewWord("*")
		n.SetHead(tok.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	case TERM:
		n := NewWord(tok.Literal)
		n.SetHead(tok.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	default:
		return nil, p.syntaxError([]TokenType{TERM, PHRASE, REGEX, STAR, LPAREN, LBRACKET, LBRACE})
	}
}

// range ← range_bound TO range_bound
//
// The closing delimiter is independent of the opening one: "[a TO b}" and
// "{a TO b]" are both valid mixed-inclusivity ranges, so either RBRACKET or
// RBRACE is accepted here regardless of which one opened the range.
func (p *Parser) parseRange(openTok Token) (Node, error) {
	includeLow := openTok.Type == LBRACKET
	if err := p.advance(); err != nil { // consume '[' or '{'
		return nil, err
	}
	low, err := p.parseRangeBound()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TO {
		return nil, p.syntaxError([]TokenType{TO})
	}
	if err := p.advance(); err != nil { // consume TO
		return nil, err
	}
	high, err := p.parseRangeBound()
	if err != nil {
		return nil, err
	}
	if p.current.Type != RBRACKET && p.current.Type != RBRACE {
		return nil, p.syntaxError([]TokenType{RBRACKET, RBRACE})
	}
	includeHigh := p.current.Type == RBRACKET
	if err := p.advance(); err != nil { // consume ']' or '}'
		return nil, err
	}
	n := NewRange(low, high, includeLow, includeHigh)
	n.SetHead(openTok.Head)
	p.attachTail(n)
	return n, nil
}

// parseRangeBound reads one range endpoint. Range bounds may contain raw
// colons (ISO-8601 timestamps such as 1990-01-01T00:00:00.000Z), which the
// lexer otherwise tokenizes as COLON-separated TERMs; this re-joins
// immediately adjacent TERM/COLON runs (no intervening whitespace) back into
// a single Word, since outside of a range a colon always means field:value.
func (p *Parser) parseRangeBound() (Node, error) {
	switch p.current.Type {
	case STAR:
		n := NewWord("*")
		n.SetHead(p.current.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	case PHRASE:
		n := NewWord(tokenLiteralUnquoted(p.current.Literal))
		n.SetHead(p.current.Head)
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.attachTail(n)
		return n, nil
	case TERM:
		head := p.current.Head
		literal := p.current.Literal
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.current.Type == COLON && p.current.Head == "" {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.current.Type != TERM || p.current.Head != "" {
				return nil, p.syntaxError([]TokenType{TERM})
			}
			literal += ":" + p.current.Literal
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		n := NewWord(literal)
		n.SetHead(head)
		p.attachTail(n)
		return n, nil
	default:
		return nil, p.syntaxError([]TokenType{TERM, STAR})
	}
}

func tokenLiteralUnquoted(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func (p *Parser) syntaxError(expected []TokenType) error {
	pos := p.current.Pos
	exc := excerpt(p.lexer.input, pos.Offset)
	if p.current.Type == EOF {
		return &ParseSyntaxError{Position: pos, Excerpt: exc, Expected: expected, AtEOF: true}
	}
	return &ParseSyntaxError{
		Position: pos,
		Excerpt:  exc,
		Got:      fmt.Sprintf("%s %q", p.current.Type, p.current.Literal),
		Expected: expected,
	}
}
