package parser

import (
	"fmt"
	"strconv"

	"github.com/Exotik850/quick-oxibooks-sql/lexer"
	"github.com/Exotik850/quick-oxibooks-sql/token"
)

// ParseError reports a grammar violation, naming the expected construct and
// the position where parsing diverged.
type ParseError struct {
	Msg string
	Pos token.Position
}

// Error returns the error string.
func (e *ParseError) Error() string {
	return fmt.Sprintf("qbsql: parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Parse scans and parses a query. It returns the unbound statement, a
// *lexer.LexError if the input cannot be tokenized, or a *ParseError if the
// token stream violates the grammar.
func Parse(src string) (*SelectStatement, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseQuery()
}

type parser struct {
	toks []token.Token
	i    int
}

func (p *parser) cur() token.Token { return p.toks[p.i] }

func (p *parser) next() token.Token {
	t := p.toks[p.i]
	if p.toks[p.i].Type != token.EOF {
		p.i++
	}
	return t
}

func (p *parser) accept(tt token.Type) bool {
	if p.cur().Type == tt {
		p.next()
		return true
	}
	return false
}

func (p *parser) errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// found renders the current token for an error message.
func (p *parser) found() string {
	t := p.cur()
	if t.Type == token.EOF {
		return "end of query"
	}
	return fmt.Sprintf("%q", t.Literal)
}

func (p *parser) parseQuery() (*SelectStatement, error) {
	st := &SelectStatement{}
	if !p.accept(token.SELECT) {
		return nil, p.errorf(p.cur().Pos, "expected 'select', found %s", p.found())
	}
	if err := p.parseSelectList(st); err != nil {
		return nil, err
	}
	if !p.accept(token.FROM) {
		return nil, p.errorf(p.cur().Pos, "expected 'from', found %s", p.found())
	}
	if p.cur().Type != token.IDENT {
		return nil, p.errorf(p.cur().Pos, "expected entity name after 'from', found %s", p.found())
	}
	ent := p.next()
	st.Entity = Ident{Name: ent.Literal, Pos: ent.Pos}

	if p.accept(token.WHERE) {
		if err := p.parseWhere(st); err != nil {
			return nil, err
		}
	}
	if p.cur().Type == token.ORDER {
		p.next()
		if !p.accept(token.BY) {
			return nil, p.errorf(p.cur().Pos, "expected 'by' after 'order', found %s", p.found())
		}
		if err := p.parseOrderBy(st); err != nil {
			return nil, err
		}
	}
	if p.accept(token.LIMIT) {
		n, err := p.parseCount("limit")
		if err != nil {
			return nil, err
		}
		st.Limit = &n
	}
	if p.accept(token.OFFSET) {
		n, err := p.parseCount("offset")
		if err != nil {
			return nil, err
		}
		st.Offset = &n
	}
	if p.cur().Type != token.EOF {
		return nil, p.errorf(p.cur().Pos, "expected end of query, found %s", p.found())
	}
	return st, nil
}

func (p *parser) parseSelectList(st *SelectStatement) error {
	if p.accept(token.STAR) {
		return nil
	}
	seen := make(map[string]bool)
	for {
		if p.cur().Type != token.IDENT {
			return p.errorf(p.cur().Pos, "expected field name or '*' after 'select', found %s", p.found())
		}
		f := p.next()
		if seen[f.Literal] {
			return p.errorf(f.Pos, "duplicate field %q in select list", f.Literal)
		}
		seen[f.Literal] = true
		st.Fields = append(st.Fields, Ident{Name: f.Literal, Pos: f.Pos})
		if !p.accept(token.COMMA) {
			return nil
		}
	}
}

func (p *parser) parseWhere(st *SelectStatement) error {
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return err
		}
		st.Where = append(st.Where, *cond)
		if !p.accept(token.AND) {
			return nil
		}
	}
}

func (p *parser) parseCondition() (*Condition, error) {
	if p.cur().Type != token.IDENT {
		return nil, p.errorf(p.cur().Pos, "expected field name in condition, found %s", p.found())
	}
	f := p.next()
	cond := &Condition{Field: Ident{Name: f.Literal, Pos: f.Pos}}

	switch p.cur().Type {
	case token.EQ:
		cond.Op = OpEQ
	case token.LIKE:
		cond.Op = OpLike
	case token.GT:
		cond.Op = OpGT
	case token.LT:
		cond.Op = OpLT
	case token.GTE:
		cond.Op = OpGTE
	case token.LTE:
		cond.Op = OpLTE
	case token.IN:
		cond.Op = OpIn
	default:
		return nil, p.errorf(p.cur().Pos, "expected comparison operator after %q, found %s", f.Literal, p.found())
	}
	p.next()

	if cond.Op == OpIn {
		v, err := p.parseInValue()
		if err != nil {
			return nil, err
		}
		cond.Value = v
		return cond, nil
	}
	v, err := p.parseScalarValue(cond.Op)
	if err != nil {
		return nil, err
	}
	cond.Value = v
	return cond, nil
}

// parseInValue parses the value of an in condition: a parenthesized literal
// list, a parenthesized variable reference, or a bare variable reference. A
// bare literal is a parse error.
func (p *parser) parseInValue() (ValueSource, error) {
	if p.cur().Type == token.IDENT {
		v := p.next()
		return Variable{Name: v.Literal, Pos: v.Pos}, nil
	}
	open := p.cur()
	if !p.accept(token.LPAREN) {
		return nil, p.errorf(open.Pos, "'in' requires a parenthesized list or a variable reference, found %s", p.found())
	}
	if p.cur().Type == token.IDENT {
		v := p.next()
		if !p.accept(token.RPAREN) {
			return nil, p.errorf(p.cur().Pos, "expected ')' after variable reference, found %s", p.found())
		}
		return Variable{Name: v.Literal, Pos: v.Pos}, nil
	}
	tup := Tuple{Pos: open.Pos}
	for {
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		tup.Items = append(tup.Items, *lit)
		if p.accept(token.COMMA) {
			continue
		}
		if !p.accept(token.RPAREN) {
			return nil, p.errorf(p.cur().Pos, "expected ',' or ')' in list, found %s", p.found())
		}
		return tup, nil
	}
}

func (p *parser) parseScalarValue(op Operator) (ValueSource, error) {
	switch p.cur().Type {
	case token.IDENT:
		v := p.next()
		return Variable{Name: v.Literal, Pos: v.Pos}, nil
	case token.LPAREN:
		return nil, p.errorf(p.cur().Pos, "operator %q takes a single value, not a list", op.String())
	default:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return Scalar{Lit: *lit}, nil
	}
}

func (p *parser) parseLiteral() (*Literal, error) {
	t := p.cur()
	switch t.Type {
	case token.STRING:
		p.next()
		return &Literal{Kind: LitString, Str: t.Literal, Pos: t.Pos}, nil
	case token.INT:
		p.next()
		n, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, p.errorf(t.Pos, "integer literal %q out of range", t.Literal)
		}
		return &Literal{Kind: LitInt, Int: n, Pos: t.Pos}, nil
	case token.FLOAT:
		p.next()
		f, err := strconv.ParseFloat(t.Literal, 64)
		if err != nil {
			return nil, p.errorf(t.Pos, "numeric literal %q out of range", t.Literal)
		}
		return &Literal{Kind: LitFloat, Float: f, Pos: t.Pos}, nil
	case token.TRUE, token.FALSE:
		p.next()
		return &Literal{Kind: LitBool, Bool: t.Type == token.TRUE, Pos: t.Pos}, nil
	case token.MINUS:
		p.next()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		switch lit.Kind {
		case LitInt:
			lit.Int = -lit.Int
		case LitFloat:
			lit.Float = -lit.Float
		default:
			return nil, p.errorf(t.Pos, "'-' must be followed by a numeric literal")
		}
		lit.Pos = t.Pos
		return lit, nil
	default:
		return nil, p.errorf(t.Pos, "expected value, found %s", p.found())
	}
}

// parseCount parses the non-negative integer argument of limit or offset.
func (p *parser) parseCount(clause string) (int64, error) {
	t := p.cur()
	if t.Type != token.INT {
		return 0, p.errorf(t.Pos, "'%s' requires a non-negative integer, found %s", clause, p.found())
	}
	p.next()
	n, err := strconv.ParseInt(t.Literal, 10, 64)
	if err != nil {
		return 0, p.errorf(t.Pos, "integer literal %q out of range", t.Literal)
	}
	return n, nil
}
