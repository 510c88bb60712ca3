package ast

import (
	"sift/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	// ExprOperator is a bare infix operator element inside a flat sequence.
	ExprOperator
	ExprCast
	ExprTypeTest
	ExprCall
	ExprParen
	// ExprSeq is a flat, unfolded expression sequence: operands and operator
	// elements in source order, never grouped by precedence.
	ExprSeq
)

// CastQualifier distinguishes the three spellings of a cast.
type CastQualifier uint8

const (
	// CastPlain is a coercion without a mark: `x as T`.
	CastPlain CastQualifier = iota
	// CastOptional produces nil on failure: `x as? T`.
	CastOptional
	// CastForced traps on failure: `x as! T`.
	CastForced
)

func (q CastQualifier) String() string {
	switch q {
	case CastPlain:
		return "as"
	case CastOptional:
		return "as?"
	case CastForced:
		return "as!"
	}
	return "unknown"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}
