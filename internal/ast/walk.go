package ast

// WalkExprs visits every expression reachable from the file's statements in
// pre-order (document order). Cast and type-test operand back-links are not
// followed: inside a flat sequence the operand is also a sibling element and
// would otherwise be visited twice.
func (f *File) WalkExprs(visit func(ExprID)) {
	for _, id := range f.Stmts {
		f.walkStmt(id, visit)
	}
}

func (f *File) walkStmt(id StmtID, visit func(ExprID)) {
	stmt := f.Arenas.Stmts.Get(id)
	if stmt == nil {
		return
	}
	switch stmt.Kind {
	case StmtExpr:
		if data, ok := f.Arenas.Stmts.Expr(id); ok {
			f.walkExpr(data.E, visit)
		}
	case StmtLet:
		if data, ok := f.Arenas.Stmts.Let(id); ok {
			f.walkExpr(data.Value, visit)
		}
	case StmtIf:
		if data, ok := f.Arenas.Stmts.If(id); ok {
			if data.Bind.IsValid() {
				f.walkStmt(data.Bind, visit)
			}
			if data.Cond.IsValid() {
				f.walkExpr(data.Cond, visit)
			}
			f.walkStmt(data.Then, visit)
			if data.Else.IsValid() {
				f.walkStmt(data.Else, visit)
			}
		}
	case StmtBlock:
		if data, ok := f.Arenas.Stmts.Block(id); ok {
			for _, child := range data.Stmts {
				f.walkStmt(child, visit)
			}
		}
	case StmtFunc:
		if data, ok := f.Arenas.Stmts.Func(id); ok {
			f.walkStmt(data.Body, visit)
		}
	case StmtReturn:
		if data, ok := f.Arenas.Stmts.Return(id); ok {
			if data.Value.IsValid() {
				f.walkExpr(data.Value, visit)
			}
		}
	}
}

func (f *File) walkExpr(id ExprID, visit func(ExprID)) {
	if !id.IsValid() {
		return
	}
	expr := f.Arenas.Exprs.Get(id)
	if expr == nil {
		return
	}
	visit(id)

	switch expr.Kind {
	case ExprCast:
		if data, ok := f.Arenas.Exprs.Cast(id); ok {
			f.walkExpr(data.Type, visit)
		}
	case ExprTypeTest:
		if data, ok := f.Arenas.Exprs.TypeTest(id); ok {
			f.walkExpr(data.Type, visit)
		}
	case ExprCall:
		if data, ok := f.Arenas.Exprs.Call(id); ok {
			f.walkExpr(data.Callee, visit)
			for _, arg := range data.Args {
				f.walkExpr(arg, visit)
			}
		}
	case ExprParen:
		if data, ok := f.Arenas.Exprs.Paren(id); ok {
			f.walkExpr(data.Inner, visit)
		}
	case ExprSeq:
		if data, ok := f.Arenas.Exprs.Seq(id); ok {
			for _, elem := range data.Elems {
				f.walkExpr(elem, visit)
			}
		}
	}
}
