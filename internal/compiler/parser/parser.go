package parser

import (
	"strings"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// Parser transforms a token stream into a Module AST via recursive
// descent with panic-mode error recovery.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []ParseError
	lex     *lexicon.Lexicon
}

// New creates a parser for tokens produced under lex (needed for field
// type inference and effect-clause keyword recognition).
func New(tokens []lexer.Token, lex *lexicon.Lexicon) *Parser {
	return &Parser{tokens: tokens, lex: lex}
}

// Parse consumes the whole token stream and returns the Module AST and
// any recoverable parse errors.
func (p *Parser) Parse() (*ast.Module, []ParseError) {
	mod := &ast.Module{}

	if p.checkKind(lexicon.KindModuleDecl) {
		start := p.peek()
		p.advance()
		mod.Name = p.parseDottedName()
		mod.Loc.Start = position(start)
		p.expectStatementEnd()
	} else {
		p.error("P010", "missing module header; add a `module <name>.` line at the top of the file")
	}

	for !p.isAtEnd() {
		decl := p.parseDecl()
		if decl != nil {
			mod.Decls = append(mod.Decls, decl)
		}
	}

	if len(mod.Decls) > 0 {
		mod.Loc.End = mod.Decls[len(mod.Decls)-1].Span().End
	}

	return mod, p.errors
}

func (p *Parser) parseDecl() ast.Decl {
	switch {
	case p.checkKind(lexicon.KindImport):
		return p.parseImport()
	case p.checkKind(lexicon.KindTypeDef):
		return p.parseDataOrEnum()
	case p.checkKind(lexicon.KindFuncTo):
		return p.parseFunc()
	default:
		p.error("P001", "expected an import, a type definition, or a function declaration")
		p.synchronize()
		return nil
	}
}

// parseDottedName consumes one or more identifiers joined by '.', e.g.
// `billing.invoices`, stopping before a trailing statement-end dot.
func (p *Parser) parseDottedName() string {
	var parts []string
	for {
		tok := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected an identifier")
		if tok.Type == lexer.TOKEN_ERROR {
			break
		}
		parts = append(parts, tok.Lexeme)
		if !p.check(lexer.TOKEN_DOT) {
			break
		}
		// peek past the dot: another identifier means this dot is a
		// name separator, not the statement terminator.
		if p.current+1 >= len(p.tokens) || p.tokens[p.current+1].Type != lexer.TOKEN_IDENTIFIER {
			break
		}
		p.advance()
	}
	return strings.Join(parts, ".")
}

func (p *Parser) parseImport() *ast.Import {
	start := p.peek()
	p.advance()
	name := p.parseDottedName()
	imp := &ast.Import{Name: name, Loc: spanFrom(start)}

	if alias, ok := p.parseAsAlias(); ok {
		imp.As = alias
	}

	p.expectStatementEnd()
	imp.Loc.End = position(p.previous())
	return imp
}

// parseAsAlias recognizes an optional trailing `as NAME` clause. "as" is
// a plain word, not a bound lexicon.Kind, so it is matched by lexeme.
func (p *Parser) parseAsAlias() (string, bool) {
	if p.check(lexer.TOKEN_IDENTIFIER) && strings.EqualFold(p.peek().Lexeme, "as") {
		p.advance()
		tok := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected an alias name after 'as'")
		return tok.Lexeme, tok.Type != lexer.TOKEN_ERROR
	}
	return "", false
}

func (p *Parser) expectStatementEnd() {
	if !p.match(lexer.TOKEN_DOT) {
		p.error("P006", "expected '.'")
	}
}

func position(t lexer.Token) ast.Position {
	return ast.Position{Line: t.Line, Column: t.Column}
}

func spanFrom(t lexer.Token) ast.Span {
	return ast.Span{Start: position(t), End: position(t)}
}
