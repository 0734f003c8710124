// Package parser implements a recursive-descent parser over the lexer's
// token stream, producing a Module AST with panic-mode error recovery.
package parser

import (
	"fmt"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
)

// ParseError is a coded, spanned parse diagnostic.
type ParseError struct {
	Code    string
	Message string
	Loc     ast.Position
	Token   lexer.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error at %d:%d: %s (near %q)",
		e.Code, e.Loc.Line, e.Loc.Column, e.Message, e.Token.Lexeme)
}

func newParseError(code, message string, token lexer.Token) ParseError {
	return ParseError{
		Code:    code,
		Message: message,
		Loc:     ast.Position{Line: token.Line, Column: token.Column},
		Token:   token,
	}
}
