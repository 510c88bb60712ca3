package rules

import (
	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/printer"
	"sift/internal/token"
)

// PreferTypeCheck flags the pattern `x as? T != nil` inside a flat expression
// sequence and rewrites it to `x is T`. The optional cast followed by a nil
// comparison only ever answers "is x a T", so the direct type test says the
// same thing without the throwaway optional.
type PreferTypeCheck struct{}

func (PreferTypeCheck) Name() string { return "prefer-type-check" }

func (PreferTypeCheck) Code() diag.Code { return diag.LintPreferTypeCheck }

func (PreferTypeCheck) DefaultSeverity() diag.Severity { return diag.SevWarning }

const preferTypeCheckMessage = "prefer 'x is T' over 'x as? T != nil'"

// matchesAt reports whether the window [i, i+2] of elems is an optional cast
// followed by `!=` and the nil literal, with a left operand before it. The
// predicate is total: any missing or mismatched element answers false.
func matchesAt(exprs *ast.Exprs, elems []ast.ExprID, i int) bool {
	if i < 1 || i+2 >= len(elems) {
		return false
	}
	cast, ok := exprs.Cast(elems[i])
	if !ok || cast.Qualifier != ast.CastOptional {
		return false
	}
	op, ok := exprs.Operator(elems[i+1])
	if !ok || op.Tok.Kind != token.BangEq {
		return false
	}
	return exprs.IsNilLit(elems[i+2])
}

// CheckExpr fires on cast elements. The surrounding context comes from the
// parent map: a cast whose direct parent is not a flat sequence cannot be
// part of the pattern and is skipped.
func (r PreferTypeCheck) CheckExpr(ctx *CheckContext, id ast.ExprID) {
	exprs := ctx.File.Arenas.Exprs
	if expr := exprs.Get(id); expr == nil || expr.Kind != ast.ExprCast {
		return
	}
	pos, ok := ctx.Parents.SeqPosition(id)
	if !ok {
		return
	}
	seq, ok := exprs.Seq(pos.Seq)
	if !ok || !matchesAt(exprs, seq.Elems, pos.Index) {
		return
	}

	cast, _ := exprs.Cast(id)
	op, _ := exprs.Operator(seq.Elems[pos.Index+1])
	nilLit, _ := exprs.Lit(seq.Elems[pos.Index+2])

	// правка покрывает `as? T != nil` целиком; тип печатается со своей trivia,
	// так что "is" + " T" даёт готовую замену
	fixSpan := cast.KwSpan().Cover(nilLit.Tok.Span)
	diag.NewReportBuilder(ctx.Reporter, ctx.Severity, r.Code(), cast.KwSpan(), preferTypeCheckMessage).
		WithNote(op.Tok.Span, "the nil comparison only tests whether the cast succeeded").
		WithFix("replace with a type test",
			diag.FixEdit{Span: fixSpan, NewText: "is" + printer.Expr(ctx.File, cast.Type)}).
		Emit()
}

// RewriteSeq replaces every match in the sequence with a synthesized `is`
// element, scanning left to right. Each replacement shortens the element list
// by two, so the loop terminates. The new `is` token inherits the leading
// trivia of the `as` keyword, which keeps surrounding formatting intact.
func (r PreferTypeCheck) RewriteSeq(ctx *RewriteContext, id ast.ExprID) ast.ExprID {
	exprs := ctx.File.Arenas.Exprs
	seq, ok := exprs.Seq(id)
	if !ok {
		return id
	}

	elems := seq.Elems
	changed := false
	for i := 1; i+2 < len(elems); {
		if !matchesAt(exprs, elems, i) {
			i++
			continue
		}
		cast, _ := exprs.Cast(elems[i])
		op, _ := exprs.Operator(elems[i+1])

		isTok := token.Token{
			Kind:    token.KwIs,
			Span:    cast.KwSpan(),
			Text:    "is",
			Leading: cast.KwTok.Leading,
		}
		span := cast.KwSpan()
		if typ := exprs.Get(cast.Type); typ != nil {
			span = span.Cover(typ.Span)
		}
		isElem := exprs.NewTypeTest(span, ast.ExprTypeTestData{
			KwTok:   isTok,
			Type:    cast.Type,
			Operand: cast.Operand,
		})
		ctx.Record(r.Name(), op.Tok.Span)

		if !changed {
			// исходный срез принадлежит старому узлу, правим копию
			elems = append([]ast.ExprID(nil), elems...)
			changed = true
		}
		elems[i] = isElem
		elems = append(elems[:i+1], elems[i+3:]...)
		i++
	}
	if !changed {
		return id
	}

	span := exprs.Get(elems[0]).Span
	for _, elem := range elems[1:] {
		span = span.Cover(exprs.Get(elem).Span)
	}
	return exprs.NewSeq(span, elems)
}
