// Package printer renders an AST back to source text. Every token carries
// its leading trivia, so printing an unmodified tree reproduces the original
// file byte for byte; printing a rewritten tree keeps all untouched
// formatting and emits synthesized tokens with whatever trivia the rewriter
// attached to them.
package printer

import (
	"strings"

	"sift/internal/ast"
	"sift/internal/token"
)

// File renders a whole file, including trailing trivia carried by EOF.
func File(f *ast.File) string {
	var sb strings.Builder
	for _, id := range f.Stmts {
		writeStmt(&sb, f, id)
	}
	writeTok(&sb, f.EOFTok)
	return sb.String()
}

// Stmt renders a single statement subtree.
func Stmt(f *ast.File, id ast.StmtID) string {
	var sb strings.Builder
	writeStmt(&sb, f, id)
	return sb.String()
}

// Expr renders a single expression subtree.
func Expr(f *ast.File, id ast.ExprID) string {
	var sb strings.Builder
	writeExpr(&sb, f, id)
	return sb.String()
}

func writeTok(sb *strings.Builder, tok token.Token) {
	for _, tr := range tok.Leading {
		sb.WriteString(tr.Text)
	}
	sb.WriteString(tok.Text)
}

func writeStmt(sb *strings.Builder, f *ast.File, id ast.StmtID) {
	stmt := f.Arenas.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case ast.StmtExpr:
		if data, ok := f.Arenas.Stmts.Expr(id); ok {
			writeExpr(sb, f, data.E)
		}
	case ast.StmtLet:
		if data, ok := f.Arenas.Stmts.Let(id); ok {
			writeTok(sb, data.LetTok)
			writeTok(sb, data.NameTok)
			writeTok(sb, data.AssignTok)
			writeExpr(sb, f, data.Value)
		}
	case ast.StmtIf:
		if data, ok := f.Arenas.Stmts.If(id); ok {
			writeTok(sb, data.IfTok)
			if data.Bind.IsValid() {
				writeStmt(sb, f, data.Bind)
			} else {
				writeExpr(sb, f, data.Cond)
			}
			writeStmt(sb, f, data.Then)
			if data.Else.IsValid() {
				writeTok(sb, data.ElseTok)
				writeStmt(sb, f, data.Else)
			}
		}
	case ast.StmtBlock:
		if data, ok := f.Arenas.Stmts.Block(id); ok {
			writeTok(sb, data.LBrace)
			for _, child := range data.Stmts {
				writeStmt(sb, f, child)
			}
			writeTok(sb, data.RBrace)
		}
	case ast.StmtFunc:
		if data, ok := f.Arenas.Stmts.Func(id); ok {
			writeTok(sb, data.FuncTok)
			writeTok(sb, data.NameTok)
			writeTok(sb, data.LParen)
			writeTok(sb, data.RParen)
			writeStmt(sb, f, data.Body)
		}
	case ast.StmtReturn:
		if data, ok := f.Arenas.Stmts.Return(id); ok {
			writeTok(sb, data.ReturnTok)
			if data.Value.IsValid() {
				writeExpr(sb, f, data.Value)
			}
		}
	}
}

func writeExpr(sb *strings.Builder, f *ast.File, id ast.ExprID) {
	expr := f.Arenas.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := f.Arenas.Exprs.Ident(id); ok {
			writeTok(sb, data.Tok)
		}
	case ast.ExprLit:
		if data, ok := f.Arenas.Exprs.Lit(id); ok {
			writeTok(sb, data.Tok)
		}
	case ast.ExprOperator:
		if data, ok := f.Arenas.Exprs.Operator(id); ok {
			writeTok(sb, data.Tok)
		}
	case ast.ExprCast:
		if data, ok := f.Arenas.Exprs.Cast(id); ok {
			writeTok(sb, data.KwTok)
			if data.Qualifier != ast.CastPlain {
				writeTok(sb, data.MarkTok)
			}
			writeExpr(sb, f, data.Type)
		}
	case ast.ExprTypeTest:
		if data, ok := f.Arenas.Exprs.TypeTest(id); ok {
			writeTok(sb, data.KwTok)
			writeExpr(sb, f, data.Type)
		}
	case ast.ExprCall:
		if data, ok := f.Arenas.Exprs.Call(id); ok {
			writeExpr(sb, f, data.Callee)
			writeTok(sb, data.LParen)
			for i, arg := range data.Args {
				writeExpr(sb, f, arg)
				if i < len(data.Commas) {
					writeTok(sb, data.Commas[i])
				}
			}
			writeTok(sb, data.RParen)
		}
	case ast.ExprParen:
		if data, ok := f.Arenas.Exprs.Paren(id); ok {
			writeTok(sb, data.LParen)
			writeExpr(sb, f, data.Inner)
			writeTok(sb, data.RParen)
		}
	case ast.ExprSeq:
		if data, ok := f.Arenas.Exprs.Seq(id); ok {
			for _, elem := range data.Elems {
				writeExpr(sb, f, elem)
			}
		}
	}
}
