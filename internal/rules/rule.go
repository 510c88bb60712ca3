// Package rules hosts the lint rules. A rule is a pair of traversal
// callbacks over one shared predicate: a read-only detector that emits
// diagnostics, and a rewriter that structurally fixes the tree. A run either
// checks or fixes, never both.
package rules

import (
	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/source"
)

// Rule describes one lint rule.
type Rule interface {
	Name() string
	Code() diag.Code
	DefaultSeverity() diag.Severity
}

// ExprChecker is implemented by rules that inspect individual expressions
// during the read-only detection pass.
type ExprChecker interface {
	Rule
	CheckExpr(ctx *CheckContext, id ast.ExprID)
}

// SeqRewriter is implemented by rules that rewrite flat expression
// sequences. RewriteSeq returns the (possibly new) sequence ID; it must
// return the input unchanged when nothing matches and must never mutate
// existing nodes.
type SeqRewriter interface {
	Rule
	RewriteSeq(ctx *RewriteContext, seq ast.ExprID) ast.ExprID
}

// CheckContext is handed to detector callbacks.
type CheckContext struct {
	File     *ast.File
	Parents  *ast.ParentMap
	Reporter diag.Reporter
	Severity diag.Severity
}

// Correction records where a rewrite was applied.
type Correction struct {
	Rule string
	Span source.Span
}

// RewriteContext is handed to rewriter callbacks. Corrections accumulate in
// application order; the context is owned by a single traversal and must not
// be shared across concurrent runs.
type RewriteContext struct {
	File        *ast.File
	Corrections []Correction
}

// Record appends a correction.
func (ctx *RewriteContext) Record(rule string, sp source.Span) {
	ctx.Corrections = append(ctx.Corrections, Correction{Rule: rule, Span: sp})
}
