// Package rewrite drives rule rewriters over a parsed file and writes the
// result back. Nodes are never mutated: each changed subtree is reallocated
// and the path to the root rebuilt, so an untouched file comes back with its
// original statement IDs and renders byte for byte.
package rewrite

import (
	"sift/internal/ast"
	"sift/internal/printer"
	"sift/internal/rules"
)

// Result of one rewrite pass over a file.
type Result struct {
	File        *ast.File
	Corrections []rules.Correction
	Changed     bool
}

// File applies the rewriters to every flat sequence in the file, outer
// sequences before the ones nested inside them. Corrections come back in
// application order.
func File(f *ast.File, rewriters []rules.SeqRewriter) *Result {
	e := &engine{
		file:      f,
		ctx:       &rules.RewriteContext{File: f},
		rewriters: rewriters,
	}

	changed := false
	stmts := f.Stmts
	for i, id := range stmts {
		ns := e.rewriteStmt(id)
		if ns == id {
			continue
		}
		if !changed {
			stmts = append([]ast.StmtID(nil), stmts...)
			changed = true
		}
		stmts[i] = ns
	}

	out := f
	if changed {
		out = &ast.File{
			ID:     f.ID,
			Stmts:  stmts,
			EOFTok: f.EOFTok,
			Arenas: f.Arenas,
		}
	}
	return &Result{
		File:        out,
		Corrections: e.ctx.Corrections,
		Changed:     changed,
	}
}

// Render returns the rewritten file's source text.
func (res *Result) Render() string {
	return printer.File(res.File)
}

type engine struct {
	file      *ast.File
	ctx       *rules.RewriteContext
	rewriters []rules.SeqRewriter
}

func (e *engine) rewriteStmt(id ast.StmtID) ast.StmtID {
	arenas := e.file.Arenas
	stmt := arenas.Stmts.Get(id)
	if stmt == nil {
		return id
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		data, _ := arenas.Stmts.Expr(id)
		if ne := e.rewriteExpr(data.E); ne != data.E {
			return arenas.Stmts.NewExpr(stmt.Span, ne)
		}
	case ast.StmtLet:
		data, _ := arenas.Stmts.Let(id)
		if nv := e.rewriteExpr(data.Value); nv != data.Value {
			nd := *data
			nd.Value = nv
			return arenas.Stmts.NewLet(stmt.Span, nd)
		}
	case ast.StmtIf:
		data, _ := arenas.Stmts.If(id)
		nd := *data
		if nd.Bind.IsValid() {
			nd.Bind = e.rewriteStmt(nd.Bind)
		}
		if nd.Cond.IsValid() {
			nd.Cond = e.rewriteExpr(nd.Cond)
		}
		nd.Then = e.rewriteStmt(nd.Then)
		if nd.Else.IsValid() {
			nd.Else = e.rewriteStmt(nd.Else)
		}
		if nd.Bind != data.Bind || nd.Cond != data.Cond || nd.Then != data.Then || nd.Else != data.Else {
			return arenas.Stmts.NewIf(stmt.Span, nd)
		}
	case ast.StmtBlock:
		data, _ := arenas.Stmts.Block(id)
		changed := false
		children := data.Stmts
		for i, child := range children {
			nc := e.rewriteStmt(child)
			if nc == child {
				continue
			}
			if !changed {
				children = append([]ast.StmtID(nil), children...)
				changed = true
			}
			children[i] = nc
		}
		if changed {
			nd := *data
			nd.Stmts = children
			return arenas.Stmts.NewBlock(stmt.Span, nd)
		}
	case ast.StmtFunc:
		data, _ := arenas.Stmts.Func(id)
		if nb := e.rewriteStmt(data.Body); nb != data.Body {
			nd := *data
			nd.Body = nb
			return arenas.Stmts.NewFunc(stmt.Span, nd)
		}
	case ast.StmtReturn:
		data, _ := arenas.Stmts.Return(id)
		if data.Value.IsValid() {
			if nv := e.rewriteExpr(data.Value); nv != data.Value {
				nd := *data
				nd.Value = nv
				return arenas.Stmts.NewReturn(stmt.Span, nd)
			}
		}
	}
	return id
}

func (e *engine) rewriteExpr(id ast.ExprID) ast.ExprID {
	if !id.IsValid() {
		return id
	}
	exprs := e.file.Arenas.Exprs

	// сперва правила на внешней последовательности, потом рекурсия внутрь
	cur := id
	if expr := exprs.Get(cur); expr != nil && expr.Kind == ast.ExprSeq {
		for _, r := range e.rewriters {
			cur = r.RewriteSeq(e.ctx, cur)
		}
	}

	expr := exprs.Get(cur)
	if expr == nil {
		return cur
	}
	switch expr.Kind {
	case ast.ExprSeq:
		data, _ := exprs.Seq(cur)
		orig := data.Elems
		changed := false
		elems := orig
		for i, elem := range elems {
			ne := e.rewriteExpr(elem)
			if ne == elem {
				continue
			}
			if !changed {
				elems = append([]ast.ExprID(nil), elems...)
				changed = true
			}
			elems[i] = ne
		}
		if !changed {
			return cur
		}
		e.fixOperandLinks(orig, elems)
		return exprs.NewSeq(expr.Span, elems)
	case ast.ExprCast:
		data, _ := exprs.Cast(cur)
		if nt := e.rewriteExpr(data.Type); nt != data.Type {
			nd := *data
			nd.Type = nt
			return exprs.NewCast(expr.Span, nd)
		}
	case ast.ExprTypeTest:
		data, _ := exprs.TypeTest(cur)
		if nt := e.rewriteExpr(data.Type); nt != data.Type {
			nd := *data
			nd.Type = nt
			return exprs.NewTypeTest(expr.Span, nd)
		}
	case ast.ExprCall:
		data, _ := exprs.Call(cur)
		nd := *data
		nd.Callee = e.rewriteExpr(nd.Callee)
		argsChanged := false
		args := nd.Args
		for i, arg := range args {
			na := e.rewriteExpr(arg)
			if na == arg {
				continue
			}
			if !argsChanged {
				args = append([]ast.ExprID(nil), args...)
				argsChanged = true
			}
			args[i] = na
		}
		nd.Args = args
		if nd.Callee != data.Callee || argsChanged {
			return exprs.NewCall(expr.Span, nd)
		}
	case ast.ExprParen:
		data, _ := exprs.Paren(cur)
		if ni := e.rewriteExpr(data.Inner); ni != data.Inner {
			nd := *data
			nd.Inner = ni
			return exprs.NewParen(expr.Span, nd)
		}
	}
	return cur
}

// fixOperandLinks repoints cast and type-test operand back-links at the
// replacement of their left sibling when that sibling was reallocated.
func (e *engine) fixOperandLinks(orig, elems []ast.ExprID) {
	exprs := e.file.Arenas.Exprs
	for i := 1; i < len(elems) && i < len(orig); i++ {
		if elems[i-1] == orig[i-1] {
			continue
		}
		if cast, ok := exprs.Cast(elems[i]); ok && cast.Operand == orig[i-1] {
			nd := *cast
			nd.Operand = elems[i-1]
			elems[i] = exprs.NewCast(exprs.Get(elems[i]).Span, nd)
		} else if tt, ok := exprs.TypeTest(elems[i]); ok && tt.Operand == orig[i-1] {
			nd := *tt
			nd.Operand = elems[i-1]
			elems[i] = exprs.NewTypeTest(exprs.Get(elems[i]).Span, nd)
		}
	}
}
