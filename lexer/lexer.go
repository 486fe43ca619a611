// Package lexer turns query source text into the token stream consumed by
// the parser. Scanning is a pure function of the input: no state survives a
// call to Scan and no input is ever partially consumed on error.
package lexer

import (
	"fmt"

	"github.com/Exotik850/quick-oxibooks-sql/token"
)

// LexError reports input the scanner cannot tokenize, carrying the position
// of the offending character or sequence.
type LexError struct {
	Msg string
	Pos token.Position
}

// Error returns the error string.
func (e *LexError) Error() string {
	return fmt.Sprintf("qbsql: lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Lexer scans a single query source string.
type Lexer struct {
	src  string
	pos  int // byte offset of the next unread character
	line int
	col  int
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Scan tokenizes src in full. The returned slice always ends with an EOF
// token. On failure it returns a *LexError and no tokens.
func Scan(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token. After the input is exhausted it
// returns EOF tokens forever.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpace()
	start := l.position()
	ch, ok := l.peek()
	if !ok {
		return token.Token{Type: token.EOF, Pos: start}, nil
	}
	switch {
	case ch == ',':
		l.advance()
		return token.Token{Type: token.COMMA, Literal: ",", Pos: start}, nil
	case ch == '(':
		l.advance()
		return token.Token{Type: token.LPAREN, Literal: "(", Pos: start}, nil
	case ch == ')':
		l.advance()
		return token.Token{Type: token.RPAREN, Literal: ")", Pos: start}, nil
	case ch == '*':
		l.advance()
		return token.Token{Type: token.STAR, Literal: "*", Pos: start}, nil
	case ch == '-':
		l.advance()
		return token.Token{Type: token.MINUS, Literal: "-", Pos: start}, nil
	case ch == '=':
		l.advance()
		return token.Token{Type: token.EQ, Literal: "=", Pos: start}, nil
	case ch == '<':
		l.advance()
		if c, ok := l.peek(); ok && c == '=' {
			l.advance()
			return token.Token{Type: token.LTE, Literal: "<=", Pos: start}, nil
		}
		return token.Token{Type: token.LT, Literal: "<", Pos: start}, nil
	case ch == '>':
		l.advance()
		if c, ok := l.peek(); ok && c == '=' {
			l.advance()
			return token.Token{Type: token.GTE, Literal: ">=", Pos: start}, nil
		}
		return token.Token{Type: token.GT, Literal: ">", Pos: start}, nil
	case ch == '\'' || ch == '"':
		return l.scanString(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case isWordStart(ch):
		return l.scanWord(start)
	default:
		return token.Token{Type: token.ILLEGAL, Literal: string(ch), Pos: start},
			&LexError{Msg: fmt.Sprintf("unexpected character %q", ch), Pos: start}
	}
}

// scanString consumes a quoted literal. A doubled quote of the delimiting
// kind escapes itself, so 'O''Malley' scans to O'Malley.
func (l *Lexer) scanString(start token.Position) (token.Token, error) {
	quote, _ := l.peek()
	l.advance()
	var out []byte
	for {
		ch, ok := l.peek()
		if !ok {
			return token.Token{Type: token.ILLEGAL, Pos: start},
				&LexError{Msg: "unterminated string literal", Pos: start}
		}
		l.advance()
		if ch != quote {
			out = append(out, ch)
			continue
		}
		if c, ok := l.peek(); ok && c == quote {
			l.advance()
			out = append(out, quote)
			continue
		}
		return token.Token{Type: token.STRING, Literal: string(out), Pos: start}, nil
	}
}

func (l *Lexer) scanNumber(start token.Position) (token.Token, error) {
	typ := token.INT
	l.takeDigits()
	if ch, ok := l.peek(); ok && ch == '.' {
		dot := l.position()
		l.advance()
		if c, ok := l.peek(); !ok || !isDigit(c) {
			return token.Token{Type: token.ILLEGAL, Pos: start},
				&LexError{Msg: "malformed numeric literal", Pos: dot}
		}
		typ = token.FLOAT
		l.takeDigits()
	}
	return token.Token{Type: typ, Literal: l.src[start.Offset:l.pos], Pos: start}, nil
}

func (l *Lexer) scanWord(start token.Position) (token.Token, error) {
	for {
		ch, ok := l.peek()
		if !ok || !isWordPart(ch) {
			break
		}
		l.advance()
	}
	word := l.src[start.Offset:l.pos]
	return token.Token{Type: token.Lookup(word), Literal: word, Pos: start}, nil
}

func (l *Lexer) takeDigits() {
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			return
		}
		l.advance()
	}
}

func (l *Lexer) skipSpace() {
	for {
		ch, ok := l.peek()
		if !ok || (ch != ' ' && ch != '\t' && ch != '\r' && ch != '\n') {
			return
		}
		l.advance()
	}
}

func (l *Lexer) peek() (byte, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}
	return l.src[l.pos], true
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) position() token.Position {
	return token.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isWordPart accepts '.' so nested wire paths such as MetaData.CreateTime
// can be declared as plain field names.
func isWordPart(ch byte) bool {
	return isWordStart(ch) || isDigit(ch) || ch == '.'
}
