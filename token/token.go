// Package token defines the lexical tokens of the query language and the
// source positions attached to them.
package token

import "strings"

// Type identifies the lexical class of a token.
type Type int

// Token types. Keyword recognition is case-insensitive; everything that is
// not a keyword, literal, operator or punctuation scans as IDENT.
const (
	ILLEGAL Type = iota
	EOF

	IDENT  // display_name, Customer, MetaData.CreateTime
	STRING // 'John%' or "John%"
	INT    // 42
	FLOAT  // 1000.5

	COMMA  // ,
	LPAREN // (
	RPAREN // )
	STAR   // *
	MINUS  // -

	EQ  // =
	LT  // <
	GT  // >
	LTE // <=
	GTE // >=

	SELECT
	FROM
	WHERE
	AND
	IN
	LIKE
	ORDER
	BY
	ASC
	DESC
	LIMIT
	OFFSET
	TRUE
	FALSE
)

var names = map[Type]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	IDENT:   "IDENT",
	STRING:  "STRING",
	INT:     "INT",
	FLOAT:   "FLOAT",
	COMMA:   ",",
	LPAREN:  "(",
	RPAREN:  ")",
	STAR:    "*",
	MINUS:   "-",
	EQ:      "=",
	LT:      "<",
	GT:      ">",
	LTE:     "<=",
	GTE:     ">=",
	SELECT:  "select",
	FROM:    "from",
	WHERE:   "where",
	AND:     "and",
	IN:      "in",
	LIKE:    "like",
	ORDER:   "order",
	BY:      "by",
	ASC:     "asc",
	DESC:    "desc",
	LIMIT:   "limit",
	OFFSET:  "offset",
	TRUE:    "true",
	FALSE:   "false",
}

// String returns the display form of the token type, used in diagnostics.
func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var keywords = map[string]Type{
	"select": SELECT,
	"from":   FROM,
	"where":  WHERE,
	"and":    AND,
	"in":     IN,
	"like":   LIKE,
	"order":  ORDER,
	"by":     BY,
	"asc":    ASC,
	"desc":   DESC,
	"limit":  LIMIT,
	"offset": OFFSET,
	"true":   TRUE,
	"false":  FALSE,
}

// Lookup maps a scanned word to its keyword type, or IDENT if the word is
// not a keyword. Matching is case-insensitive; the caller keeps the original
// spelling in Token.Literal.
func Lookup(word string) Type {
	if t, ok := keywords[strings.ToLower(word)]; ok {
		return t
	}
	return IDENT
}

// Position is a location in the query source. Line and Column are 1-based;
// Offset is the 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Token is a single lexical unit. For STRING tokens Literal holds the
// unquoted value with escape sequences resolved; for all other types it
// holds the scanned text as written.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}
