package parser

import (
	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/token"
)

// parseSequence собирает плоскую последовательность выражения: операнды и
// операторные элементы слева направо, без группировки по приоритетам.
// Одноэлементная последовательность схлопывается в сам элемент, поэтому
// родителем одиночного операнда никогда не бывает ExprSeq.
func (p *Parser) parseSequence() (ast.ExprID, bool) {
	first, ok := p.parseOperand()
	if !ok {
		return ast.NoExprID, false
	}
	elems := []ast.ExprID{first}

	for {
		tok := p.lx.Peek()

		if tok.IsBinaryOperator() {
			opTok := p.advance()
			elems = append(elems, p.arenas.Exprs.NewOperator(opTok))

			operand, ok := p.parseOperand()
			if !ok {
				p.err(diag.SynExpectExpression, p.lx.Peek().Span, "expected expression after operator")
				break
			}
			elems = append(elems, operand)
			continue
		}

		if tok.Kind == token.KwAs {
			id, ok := p.parseCastElem(elems[len(elems)-1])
			if !ok {
				break
			}
			elems = append(elems, id)
			continue
		}

		if tok.Kind == token.KwIs {
			id, ok := p.parseTypeTestElem(elems[len(elems)-1])
			if !ok {
				break
			}
			elems = append(elems, id)
			continue
		}

		break
	}

	if len(elems) == 1 {
		return elems[0], true
	}

	span := p.exprSpan(elems[0]).Cover(p.exprSpan(elems[len(elems)-1]))
	return p.arenas.Exprs.NewSeq(span, elems), true
}

// parseCastElem разбирает операторный элемент `as`/`as?`/`as!` вместе с
// типом. prev — левый операнд, уже лежащий в последовательности; узел каста
// хранит его как структурную обратную ссылку.
func (p *Parser) parseCastElem(prev ast.ExprID) (ast.ExprID, bool) {
	kwTok := p.advance() // 'as'

	qualifier := ast.CastPlain
	var markTok token.Token
	next := p.lx.Peek()
	// метка должна прилегать к 'as' без trivia
	if len(next.Leading) == 0 && next.Span.Start == kwTok.Span.End {
		switch next.Kind {
		case token.Question:
			qualifier = ast.CastOptional
			markTok = p.advance()
		case token.Bang:
			qualifier = ast.CastForced
			markTok = p.advance()
		}
	}

	typeID, ok := p.parseTypeRef()
	if !ok {
		return ast.NoExprID, false
	}

	span := kwTok.Span.Cover(p.exprSpan(typeID))
	return p.arenas.Exprs.NewCast(span, ast.ExprCastData{
		Qualifier: qualifier,
		KwTok:     kwTok,
		MarkTok:   markTok,
		Type:      typeID,
		Operand:   prev,
	}), true
}

// parseTypeTestElem разбирает операторный элемент `is` вместе с типом.
func (p *Parser) parseTypeTestElem(prev ast.ExprID) (ast.ExprID, bool) {
	kwTok := p.advance() // 'is'

	typeID, ok := p.parseTypeRef()
	if !ok {
		return ast.NoExprID, false
	}

	span := kwTok.Span.Cover(p.exprSpan(typeID))
	return p.arenas.Exprs.NewTypeTest(span, ast.ExprTypeTestData{
		KwTok:   kwTok,
		Type:    typeID,
		Operand: prev,
	}), true
}

func (p *Parser) parseTypeRef() (ast.ExprID, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectType, "expected type name")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewIdent(tok), true
}

// parseOperand разбирает первичное выражение с постфиксами-вызовами.
func (p *Parser) parseOperand() (ast.ExprID, bool) {
	tok := p.lx.Peek()

	var id ast.ExprID
	switch {
	case tok.Kind == token.Ident:
		id = p.arenas.Exprs.NewIdent(p.advance())

	case tok.IsLiteral():
		id = p.arenas.Exprs.NewLit(p.advance())

	case tok.Kind == token.LParen:
		lparen := p.advance()
		inner, ok := p.parseSequence()
		if !ok {
			return ast.NoExprID, false
		}
		rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		span := lparen.Span.Cover(rparen.Span)
		id = p.arenas.Exprs.NewParen(span, ast.ExprParenData{
			LParen: lparen,
			Inner:  inner,
			RParen: rparen,
		})

	default:
		return ast.NoExprID, false
	}

	return p.parsePostfix(id)
}

func (p *Parser) parsePostfix(callee ast.ExprID) (ast.ExprID, bool) {
	for {
		tok := p.lx.Peek()
		if tok.Kind != token.LParen {
			return callee, true
		}

		lparen := p.advance()
		args := make([]ast.ExprID, 0, 2)
		commas := make([]token.Token, 0, 1)

		if p.lx.Peek().Kind != token.RParen {
			for {
				arg, ok := p.parseSequence()
				if !ok {
					p.err(diag.SynExpectExpression, p.lx.Peek().Span, "expected call argument")
					return ast.NoExprID, false
				}
				args = append(args, arg)
				if p.lx.Peek().Kind != token.Comma {
					break
				}
				commas = append(commas, p.advance())
			}
		}

		rparen, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after call arguments")
		if !ok {
			return ast.NoExprID, false
		}

		span := p.exprSpan(callee).Cover(rparen.Span)
		callee = p.arenas.Exprs.NewCall(span, ast.ExprCallData{
			Callee: callee,
			LParen: lparen,
			Args:   args,
			Commas: commas,
			RParen: rparen,
		})
	}
}
