package ast

import (
	"sift/internal/source"
	"sift/internal/token"
)

// Arenas bundles the per-file node storage. Nodes are immutable once
// allocated; rewrites allocate fresh nodes and rebuild the path to the root.
type Arenas struct {
	Exprs *Exprs
	Stmts *Stmts
}

// NewArenas creates arena storage with the given capacity hint.
func NewArenas(capHint uint) *Arenas {
	return &Arenas{
		Exprs: NewExprs(capHint),
		Stmts: NewStmts(capHint),
	}
}

// File is the parsed representation of one source file.
type File struct {
	ID     source.FileID
	Stmts  []StmtID
	EOFTok token.Token // carries the file's trailing trivia
	Arenas *Arenas
}
