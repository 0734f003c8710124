// Package lexer tokenizes canonicalized source using a lexicon's keyword
// table for a longest-match scan, producing the fixed token kind set the
// parser expects regardless of source language.
package lexer

import (
	"fmt"

	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// TokenType is the fixed, language-independent token kind set. Keyword
// phrases resolve through the active lexicon, but every lexicon maps
// onto this same closed enum.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_ERROR

	// keyword-bound, one per lexicon.Kind
	TOKEN_KEYWORD

	// literals
	TOKEN_IDENTIFIER
	TOKEN_INT_LITERAL
	TOKEN_FLOAT_LITERAL
	TOKEN_STRING_LITERAL
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL

	// operators
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_PERCENT
	TOKEN_EQUALS
	TOKEN_EQ
	TOKEN_NEQ
	TOKEN_LT
	TOKEN_GT
	TOKEN_LTE
	TOKEN_GTE
	TOKEN_ARROW
	TOKEN_QUESTION
	TOKEN_SAFE_NAV
	TOKEN_DOUBLE_QUESTION
	TOKEN_PIPE
	TOKEN_BANG

	// delimiters
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_COLON
	TOKEN_DOT
	TOKEN_COMMA
	TOKEN_AT

	// comment trivia; the lexer skips comments and never emits this type
	TOKEN_COMMENT
)

var tokenTypeNames = map[TokenType]string{
	TOKEN_EOF:             "EOF",
	TOKEN_ERROR:           "ERROR",
	TOKEN_KEYWORD:         "KEYWORD",
	TOKEN_IDENTIFIER:      "IDENTIFIER",
	TOKEN_INT_LITERAL:     "INT_LITERAL",
	TOKEN_FLOAT_LITERAL:   "FLOAT_LITERAL",
	TOKEN_STRING_LITERAL:  "STRING_LITERAL",
	TOKEN_TRUE:            "TRUE",
	TOKEN_FALSE:           "FALSE",
	TOKEN_NULL:            "NULL",
	TOKEN_PLUS:            "PLUS",
	TOKEN_MINUS:           "MINUS",
	TOKEN_STAR:            "STAR",
	TOKEN_SLASH:           "SLASH",
	TOKEN_PERCENT:         "PERCENT",
	TOKEN_EQUALS:          "EQUALS",
	TOKEN_EQ:              "EQ",
	TOKEN_NEQ:             "NEQ",
	TOKEN_LT:              "LT",
	TOKEN_GT:              "GT",
	TOKEN_LTE:             "LTE",
	TOKEN_GTE:             "GTE",
	TOKEN_ARROW:           "ARROW",
	TOKEN_QUESTION:        "QUESTION",
	TOKEN_SAFE_NAV:        "SAFE_NAV",
	TOKEN_DOUBLE_QUESTION: "DOUBLE_QUESTION",
	TOKEN_PIPE:            "PIPE",
	TOKEN_BANG:            "BANG",
	TOKEN_LBRACE:          "LBRACE",
	TOKEN_RBRACE:          "RBRACE",
	TOKEN_LPAREN:          "LPAREN",
	TOKEN_RPAREN:          "RPAREN",
	TOKEN_LBRACKET:        "LBRACKET",
	TOKEN_RBRACKET:        "RBRACKET",
	TOKEN_COLON:           "COLON",
	TOKEN_DOT:             "DOT",
	TOKEN_COMMA:           "COMMA",
	TOKEN_AT:              "AT",
	TOKEN_COMMENT:         "COMMENT",
}

func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexeme with its resolved kind, source span, and (for
// TOKEN_KEYWORD) the semantic lexicon.Kind it was bound to.
type Token struct {
	Type    TokenType
	Kind    lexicon.Kind // valid only when Type == TOKEN_KEYWORD
	Lexeme  string
	Literal interface{}
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

// LexError reports an unrecoverable lexical anomaly at a span; the
// lexer keeps scanning past it so the parser sees the rest of the file.
type LexError struct {
	Code    string
	Message string
	Line    int
	Column  int
	Lexeme  string
}

func (e LexError) Error() string {
	return fmt.Sprintf("%s: lexical error at %d:%d: %s (near %q)", e.Code, e.Line, e.Column, e.Message, e.Lexeme)
}
