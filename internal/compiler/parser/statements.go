package parser

import (
	"strconv"

	"github.com/aster-cloud/cnl/internal/compiler/ast"
	"github.com/aster-cloud/cnl/internal/compiler/lexer"
	"github.com/aster-cloud/cnl/internal/compiler/lexicon"
)

// parseBlock parses a brace-delimited statement list: `{ stmt* }`.
func (p *Parser) parseBlock() []ast.Stmt {
	p.consume(lexer.TOKEN_LBRACE, "P006", "expected '{' to open a block")
	var stmts []ast.Stmt
	for !p.check(lexer.TOKEN_RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	p.consume(lexer.TOKEN_RBRACE, "P006", "expected '}' to close a block")
	return stmts
}

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.checkKind(lexicon.KindLet):
		return p.parseLet()
	case p.checkKind(lexicon.KindSet):
		return p.parseSet()
	case p.checkKind(lexicon.KindReturn):
		return p.parseReturn()
	case p.checkKind(lexicon.KindIf):
		return p.parseIf()
	case p.checkKind(lexicon.KindMatch):
		return p.parseMatch()
	case p.checkKind(lexicon.KindForEach):
		return p.parseForEach()
	case p.checkKind(lexicon.KindStart):
		return p.parseStart()
	case p.checkKind(lexicon.KindWaitFor):
		return p.parseWait()
	case p.checkKind(lexicon.KindWorkflow):
		return p.parseWorkflow()
	case p.check(lexer.TOKEN_LBRACE):
		start := p.peek()
		return &ast.Block{Stmts: p.parseBlock(), Loc: spanFrom(start)}
	default:
		start := p.peek()
		expr := p.parseExpression()
		p.expectStatementEnd()
		return &ast.ExprStmt{Expr: expr, Loc: spanFrom(start)}
	}
}

// parseLet parses `let NAME be EXPR.`.
func (p *Parser) parseLet() ast.Stmt {
	start := p.advance() // 'let'
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a name after 'let'")
	p.consumeKind(lexicon.KindBe, "P006", "expected 'be' in 'let NAME be EXPR'")
	value := p.parseExpression()
	p.expectStatementEnd()
	return &ast.Let{Name: name.Lexeme, Value: value, Loc: spanFrom(start)}
}

// parseSet parses `set TARGET to EXPR.`.
func (p *Parser) parseSet() ast.Stmt {
	start := p.advance() // 'set'
	target := p.parsePostfix()
	p.consumeKind(lexicon.KindTo, "P006", "expected 'to' in 'set TARGET to EXPR'")
	value := p.parseExpression()
	p.expectStatementEnd()
	return &ast.Set{Target: target, Value: value, Loc: spanFrom(start)}
}

// parseReturn parses `return EXPR.` or a bare `return.`.
func (p *Parser) parseReturn() ast.Stmt {
	start := p.advance() // 'return'
	if p.match(lexer.TOKEN_DOT) {
		return &ast.Return{Loc: spanFrom(start)}
	}
	value := p.parseExpression()
	p.expectStatementEnd()
	return &ast.Return{Value: value, Loc: spanFrom(start)}
}

// parseIf parses `if COND { THEN } (otherwise { ELSE } | otherwise IF)?`.
func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // 'if'
	cond := p.parseExpression()
	then := p.parseBlock()

	var elseBody []ast.Stmt
	if p.matchKind(lexicon.KindOtherwise) {
		if p.checkKind(lexicon.KindIf) {
			elseBody = []ast.Stmt{p.parseIf()}
		} else {
			elseBody = p.parseBlock()
		}
	}
	return &ast.If{Cond: cond, Then: then, Else: elseBody, Loc: spanFrom(start)}
}

// parseMatch parses `match EXPR { (when PATTERN BLOCK)+ }`.
func (p *Parser) parseMatch() ast.Stmt {
	start := p.advance() // 'match'
	subject := p.parseExpression()
	p.consume(lexer.TOKEN_LBRACE, "P006", "expected '{' to open a match body")

	var cases []*ast.MatchCase
	for p.checkKind(lexicon.KindWhen) {
		caseStart := p.advance() // 'when'
		pattern := p.parsePattern()
		body := p.parseBlock()
		cases = append(cases, &ast.MatchCase{Pattern: pattern, Body: body, Loc: spanFrom(caseStart)})
	}
	if len(cases) == 0 {
		p.error("P014", "expected at least one 'when' case in a match body")
	}
	p.consume(lexer.TOKEN_RBRACE, "P006", "expected '}' to close a match body")
	return &ast.Match{Expr: subject, Cases: cases, Loc: spanFrom(start)}
}

// parseForEach parses `for each NAME in ITERABLE { BODY }`.
func (p *Parser) parseForEach() ast.Stmt {
	start := p.advance() // 'for each'
	binder := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a binder name after 'for each'")
	p.consumeKind(lexicon.KindIn, "P006", "expected 'in' in 'for each NAME in ITERABLE'")
	iterable := p.parseExpression()
	body := p.parseBlock()
	return &ast.ForEach{Binder: binder.Lexeme, Iterable: iterable, Body: body, Loc: spanFrom(start)}
}

// parseStart parses `start NAME be EXPR.`, launching an async task.
func (p *Parser) parseStart() ast.Stmt {
	start := p.advance() // 'start'
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a name after 'start'")
	p.consumeKind(lexicon.KindBe, "P006", "expected 'be' in 'start NAME be EXPR'")
	p.matchKind(lexicon.KindAsync) // optional explicit 'async' marker
	value := p.parseExpression()
	p.expectStatementEnd()
	return &ast.Start{Name: name.Lexeme, Expr: value, Loc: spanFrom(start)}
}

// parseWait parses `wait for NAME (, NAME)*.`.
func (p *Parser) parseWait() ast.Stmt {
	start := p.advance() // 'wait for'
	var names []string
	for {
		name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a name after 'wait for'")
		names = append(names, name.Lexeme)
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expectStatementEnd()
	return &ast.Wait{Names: names, Loc: spanFrom(start)}
}

// parseWorkflow parses:
//
//	workflow {
//	  step NAME (depends on NAME1, NAME2)? { BODY } (compensate { BODY })?
//	  ...
//	} (retry max attempts N (backoff STRATEGY)?)? (timeout within DURATION)?
func (p *Parser) parseWorkflow() ast.Stmt {
	start := p.advance() // 'workflow'
	p.consume(lexer.TOKEN_LBRACE, "P006", "expected '{' to open a workflow body")

	var steps []*ast.Step
	for p.checkKind(lexicon.KindStep) {
		steps = append(steps, p.parseStep())
	}
	if len(steps) == 0 {
		p.error("P014", "a workflow must declare at least one step")
	}
	p.consume(lexer.TOKEN_RBRACE, "P006", "expected '}' to close a workflow body")

	wf := &ast.Workflow{Steps: steps, Loc: spanFrom(start)}

	if p.matchKind(lexicon.KindRetry) {
		wf.Retry = p.parseRetryClause()
	}
	if p.matchKind(lexicon.KindTimeout) {
		wf.Timeout = p.parseTimeoutClause()
	}
	p.expectStatementEnd()
	return wf
}

func (p *Parser) parseStep() *ast.Step {
	start := p.advance() // 'step'
	name := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a step name")
	step := &ast.Step{Name: name.Lexeme, Loc: spanFrom(start)}

	if p.matchKind(lexicon.KindDepends) {
		p.consumeKind(lexicon.KindOn, "P006", "expected 'on' in 'depends on'")
		for {
			dep := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a step name after 'depends on'")
			step.DependsOn = append(step.DependsOn, dep.Lexeme)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}

	step.Body = p.parseBlock()
	if p.matchKind(lexicon.KindCompensate) {
		step.Compensate = p.parseBlock()
	}
	return step
}

func (p *Parser) parseRetryClause() *ast.RetryClause {
	start := p.previous()
	p.consumeKind(lexicon.KindMaxAttempts, "P006", "expected 'max attempts' after 'retry'")
	n := p.consume(lexer.TOKEN_INT_LITERAL, "P002", "expected a maximum attempt count")
	attempts, _ := n.Literal.(int64)
	clause := &ast.RetryClause{MaxAttempts: int(attempts), Loc: spanFrom(start)}

	if p.matchKind(lexicon.KindBackoff) {
		strategy := p.consume(lexer.TOKEN_IDENTIFIER, "P002", "expected a backoff strategy name")
		clause.Backoff = strategy.Lexeme
	}
	return clause
}

func (p *Parser) parseTimeoutClause() *ast.TimeoutClause {
	start := p.previous()
	p.consumeKind(lexicon.KindWithin, "P006", "expected 'within' after 'timeout'")
	tok := p.peek()
	var within string
	switch tok.Type {
	case lexer.TOKEN_STRING_LITERAL:
		p.advance()
		within, _ = tok.Literal.(string)
	case lexer.TOKEN_INT_LITERAL:
		p.advance()
		within = strconv.FormatInt(tok.Literal.(int64), 10) + "s"
	default:
		p.error("P002", "expected a duration after 'within'")
	}
	return &ast.TimeoutClause{Within: within, Loc: spanFrom(start)}
}
