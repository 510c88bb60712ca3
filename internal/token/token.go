package token

import (
	"sift/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string, or nil literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NilLit, TrueLit, FalseLit, IntLit, StringLit:
		return true
	default:
		return false
	}
}

// IsBinaryOperator reports whether the token can act as an infix operator
// element inside a flat expression sequence.
func (t Token) IsBinaryOperator() bool {
	switch t.Kind {
	case EqEq, BangEq, AndAnd, OrOr, Lt, Gt, Plus, Minus, Assign:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwAs, KwIs, KwIf, KwElse, KwLet, KwFunc, KwReturn:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// LeadingText returns the concatenated text of the token's leading trivia.
func (t Token) LeadingText() string {
	if len(t.Leading) == 0 {
		return ""
	}
	out := ""
	for _, tr := range t.Leading {
		out += tr.Text
	}
	return out
}
