package parser

import (
	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/token"
)

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwFunc:
		return p.parseFunc()
	case token.KwReturn:
		return p.parseReturn()
	case token.LBrace:
		return p.parseBlock()
	default:
		expr, ok := p.parseSequence()
		if !ok {
			p.err(diag.SynUnexpectedToken, tok.Span, "unexpected token")
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExpr(p.exprSpan(expr), expr), true
	}
}

// parseLet разбирает `let name = value`.
func (p *Parser) parseLet() (ast.StmtID, bool) {
	letTok := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected name after 'let'")
	if !ok {
		return ast.NoStmtID, false
	}
	assignTok, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in let binding")
	if !ok {
		return ast.NoStmtID, false
	}
	value, ok := p.parseSequence()
	if !ok {
		p.err(diag.SynExpectExpression, p.lx.Peek().Span, "expected expression after '='")
		return ast.NoStmtID, false
	}

	span := letTok.Span.Cover(p.exprSpan(value))
	return p.arenas.Stmts.NewLet(span, ast.StmtLetData{
		LetTok:    letTok,
		NameTok:   nameTok,
		AssignTok: assignTok,
		Value:     value,
	}), true
}

// parseIf разбирает `if cond { ... }` и `if let name = value { ... }`,
// с опциональным else / else if.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	ifTok := p.advance()

	var bind ast.StmtID
	var cond ast.ExprID
	if p.lx.Peek().Kind == token.KwLet {
		var ok bool
		bind, ok = p.parseLet()
		if !ok {
			return ast.NoStmtID, false
		}
	} else {
		var ok bool
		cond, ok = p.parseSequence()
		if !ok {
			p.err(diag.SynExpectExpression, p.lx.Peek().Span, "expected condition after 'if'")
			return ast.NoStmtID, false
		}
	}

	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	var elseTok token.Token
	var elseStmt ast.StmtID
	if p.lx.Peek().Kind == token.KwElse {
		elseTok = p.advance()
		if p.lx.Peek().Kind == token.KwIf {
			elseStmt, ok = p.parseIf()
		} else {
			elseStmt, ok = p.parseBlock()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}

	span := ifTok.Span.Cover(p.stmtSpan(then))
	if elseStmt.IsValid() {
		span = span.Cover(p.stmtSpan(elseStmt))
	}
	return p.arenas.Stmts.NewIf(span, ast.StmtIfData{
		IfTok:   ifTok,
		Bind:    bind,
		Cond:    cond,
		Then:    then,
		ElseTok: elseTok,
		Else:    elseStmt,
	}), true
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	stmts := make([]ast.StmtID, 0, 4)
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.RBrace || tok.Kind == token.EOF {
			break
		}
		id, ok := p.parseStmt()
		if !ok {
			p.advance()
			continue
		}
		stmts = append(stmts, id)
	}

	rbrace, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}'")
	if !ok {
		return ast.NoStmtID, false
	}

	span := lbrace.Span.Cover(rbrace.Span)
	return p.arenas.Stmts.NewBlock(span, ast.StmtBlockData{
		LBrace: lbrace,
		Stmts:  stmts,
		RBrace: rbrace,
	}), true
}

// parseFunc разбирает объявление функции без параметров: `func name() { ... }`.
func (p *Parser) parseFunc() (ast.StmtID, bool) {
	funcTok := p.advance()

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return ast.NoStmtID, false
	}
	lparen, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('")
	if !ok {
		return ast.NoStmtID, false
	}
	rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	span := funcTok.Span.Cover(p.stmtSpan(body))
	return p.arenas.Stmts.NewFunc(span, ast.StmtFuncData{
		FuncTok: funcTok,
		NameTok: nameTok,
		LParen:  lparen,
		RParen:  rparen,
		Body:    body,
	}), true
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	returnTok := p.advance()

	var value ast.ExprID
	next := p.lx.Peek()
	if next.Kind == token.Ident || next.IsLiteral() || next.Kind == token.LParen {
		var ok bool
		value, ok = p.parseSequence()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	span := returnTok.Span
	if value.IsValid() {
		span = span.Cover(p.exprSpan(value))
	}
	return p.arenas.Stmts.NewReturn(span, ast.StmtReturnData{
		ReturnTok: returnTok,
		Value:     value,
	}), true
}
