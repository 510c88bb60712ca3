package ast

import (
	"sift/internal/source"
	"sift/internal/token"
)

// Nodes keep the tokens they were parsed from (text plus leading trivia) so
// that printing a tree reproduces the source byte for byte. Synthesized nodes
// get tokens built by the rewriter, with trivia relocated explicitly.

// ExprIdentData is the payload of an identifier expression.
type ExprIdentData struct {
	Tok token.Token
}

// ExprLitData is the payload of a literal expression (nil, bool, int, string).
type ExprLitData struct {
	Tok token.Token
}

// ExprOperatorData is the payload of a bare operator element in a flat
// sequence. Op is Tok.Kind.
type ExprOperatorData struct {
	Tok token.Token
}

// ExprCastData is the payload of a cast element (`as`, `as?`, `as!`).
// Operand is a structural back-link to the left-hand operand element; inside
// a flat sequence the operand also remains a sibling element, so printing a
// cast emits only its own tokens and type.
type ExprCastData struct {
	Qualifier CastQualifier
	KwTok     token.Token // 'as'
	MarkTok   token.Token // '?' or '!'; zero token for CastPlain
	Type      ExprID
	Operand   ExprID
}

// KwSpan returns the span of the cast keyword including its mark, i.e. the
// `as?` the user should look at.
func (d *ExprCastData) KwSpan() source.Span {
	if d.Qualifier == CastPlain {
		return d.KwTok.Span
	}
	return d.KwTok.Span.Cover(d.MarkTok.Span)
}

// ExprTypeTestData is the payload of an `is` type-test element.
type ExprTypeTestData struct {
	KwTok   token.Token // 'is'
	Type    ExprID
	Operand ExprID
}

// ExprCallData is the payload of a call expression.
type ExprCallData struct {
	Callee ExprID
	LParen token.Token
	Args   []ExprID
	Commas []token.Token
	RParen token.Token
}

// ExprParenData is the payload of a parenthesized expression.
type ExprParenData struct {
	LParen token.Token
	Inner  ExprID
	RParen token.Token
}

// ExprSeqData is the payload of a flat expression sequence. Elems alternate
// operand/operator roles; length >= 2 (single-element sequences collapse to
// the element itself at parse time).
type ExprSeqData struct {
	Elems []ExprID
}

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena     *Arena[Expr]
	Idents    *Arena[ExprIdentData]
	Literals  *Arena[ExprLitData]
	Operators *Arena[ExprOperatorData]
	Casts     *Arena[ExprCastData]
	TypeTests *Arena[ExprTypeTestData]
	Calls     *Arena[ExprCallData]
	Parens    *Arena[ExprParenData]
	Seqs      *Arena[ExprSeqData]
}

// NewExprs creates a new Exprs with per-kind arenas preallocated using
// capHint as the initial capacity.
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:     NewArena[Expr](capHint),
		Idents:    NewArena[ExprIdentData](capHint),
		Literals:  NewArena[ExprLitData](capHint),
		Operators: NewArena[ExprOperatorData](capHint),
		Casts:     NewArena[ExprCastData](capHint),
		TypeTests: NewArena[ExprTypeTestData](capHint),
		Calls:     NewArena[ExprCallData](capHint),
		Parens:    NewArena[ExprParenData](capHint),
		Seqs:      NewArena[ExprSeqData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(tok token.Token) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Tok: tok})
	return e.new(ExprIdent, tok.Span, PayloadID(payload))
}

// Ident returns the identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLit creates a new literal expression.
func (e *Exprs) NewLit(tok token.Token) ExprID {
	payload := e.Literals.Allocate(ExprLitData{Tok: tok})
	return e.new(ExprLit, tok.Span, PayloadID(payload))
}

// Lit returns the literal data for the given expression ID.
func (e *Exprs) Lit(id ExprID) (*ExprLitData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// IsNilLit reports whether the expression is literally the `nil` token.
// A variable that happens to hold nil does not count.
func (e *Exprs) IsNilLit(id ExprID) bool {
	lit, ok := e.Lit(id)
	return ok && lit.Tok.Kind == token.NilLit
}

// NewOperator creates a new bare operator element.
func (e *Exprs) NewOperator(tok token.Token) ExprID {
	payload := e.Operators.Allocate(ExprOperatorData{Tok: tok})
	return e.new(ExprOperator, tok.Span, PayloadID(payload))
}

// Operator returns the operator data for the given expression ID.
func (e *Exprs) Operator(id ExprID) (*ExprOperatorData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprOperator {
		return nil, false
	}
	return e.Operators.Get(uint32(expr.Payload)), true
}

// NewCast creates a new cast element.
func (e *Exprs) NewCast(span source.Span, data ExprCastData) ExprID {
	payload := e.Casts.Allocate(data)
	return e.new(ExprCast, span, PayloadID(payload))
}

// Cast returns the cast data for the given expression ID.
func (e *Exprs) Cast(id ExprID) (*ExprCastData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCast {
		return nil, false
	}
	return e.Casts.Get(uint32(expr.Payload)), true
}

// NewTypeTest creates a new `is` type-test element.
func (e *Exprs) NewTypeTest(span source.Span, data ExprTypeTestData) ExprID {
	payload := e.TypeTests.Allocate(data)
	return e.new(ExprTypeTest, span, PayloadID(payload))
}

// TypeTest returns the type-test data for the given expression ID.
func (e *Exprs) TypeTest(id ExprID) (*ExprTypeTestData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTypeTest {
		return nil, false
	}
	return e.TypeTests.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, data ExprCallData) ExprID {
	payload := e.Calls.Allocate(data)
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns the call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewParen creates a new parenthesized expression.
func (e *Exprs) NewParen(span source.Span, data ExprParenData) ExprID {
	payload := e.Parens.Allocate(data)
	return e.new(ExprParen, span, PayloadID(payload))
}

// Paren returns the paren data for the given expression ID.
func (e *Exprs) Paren(id ExprID) (*ExprParenData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprParen {
		return nil, false
	}
	return e.Parens.Get(uint32(expr.Payload)), true
}

// NewSeq creates a new flat expression sequence. The element slice is owned
// by the new node; callers must not mutate it afterwards.
func (e *Exprs) NewSeq(span source.Span, elems []ExprID) ExprID {
	payload := e.Seqs.Allocate(ExprSeqData{Elems: elems})
	return e.new(ExprSeq, span, PayloadID(payload))
}

// Seq returns the sequence data for the given expression ID.
func (e *Exprs) Seq(id ExprID) (*ExprSeqData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSeq {
		return nil, false
	}
	return e.Seqs.Get(uint32(expr.Payload)), true
}
