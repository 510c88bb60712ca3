package lexer

import (
	"sift/internal/diag"
	"sift/internal/token"
)

// ASCII-классификаторы. Идентификаторы правила инспектируют только по
// структуре, поэтому Unicode-иденты здесь не поддерживаются.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	return token.Token{
		Kind: token.LookupKeyword(text),
		Span: sp,
		Text: text,
	}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	// "1foo" — мусорный хвост, съедаем и репортим
	if !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
		for !lx.cursor.EOF() && isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: token.IntLit,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == '"' {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.StringLit,
				Span: sp,
				Text: string(lx.file.Content[sp.Start:sp.End]),
			}
		}
		if b == '\n' {
			break
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	make1 := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// двухбайтовые — жадно
	switch {
	case lx.try2('=', '='):
		return make1(token.EqEq)
	case lx.try2('!', '='):
		return make1(token.BangEq)
	case lx.try2('&', '&'):
		return make1(token.AndAnd)
	case lx.try2('|', '|'):
		return make1(token.OrOr)
	}

	b := lx.cursor.Bump()
	switch b {
	case '=':
		return make1(token.Assign)
	case '?':
		return make1(token.Question)
	case '!':
		return make1(token.Bang)
	case '.':
		return make1(token.Dot)
	case ',':
		return make1(token.Comma)
	case ':':
		return make1(token.Colon)
	case '(':
		return make1(token.LParen)
	case ')':
		return make1(token.RParen)
	case '{':
		return make1(token.LBrace)
	case '}':
		return make1(token.RBrace)
	case '<':
		return make1(token.Lt)
	case '>':
		return make1(token.Gt)
	case '+':
		return make1(token.Plus)
	case '-':
		return make1(token.Minus)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
