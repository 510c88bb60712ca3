package ast

import (
	"sift/internal/source"
	"sift/internal/token"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtLet
	StmtIf
	StmtBlock
	StmtFunc
	StmtReturn
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// StmtExprData is the payload of an expression statement.
type StmtExprData struct {
	E ExprID
}

// StmtLetData is the payload of a `let name = value` binding. It doubles as
// the binding of an `if let` condition.
type StmtLetData struct {
	LetTok    token.Token
	NameTok   token.Token
	AssignTok token.Token
	Value     ExprID
}

// StmtIfData is the payload of an `if` statement. Either Bind (an `if let`
// binding) or Cond is set, never both.
type StmtIfData struct {
	IfTok   token.Token
	Bind    StmtID
	Cond    ExprID
	Then    StmtID // always a block
	ElseTok token.Token
	Else    StmtID // block or nested if; NoStmtID when absent
}

// StmtBlockData is the payload of a `{ ... }` block.
type StmtBlockData struct {
	LBrace token.Token
	Stmts  []StmtID
	RBrace token.Token
}

// StmtFuncData is the payload of a parameterless function declaration.
type StmtFuncData struct {
	FuncTok token.Token
	NameTok token.Token
	LParen  token.Token
	RParen  token.Token
	Body    StmtID
}

// StmtReturnData is the payload of a `return` statement.
type StmtReturnData struct {
	ReturnTok token.Token
	Value     ExprID // NoExprID for a bare return
}

// Stmts manages allocation of statements.
type Stmts struct {
	Arena   *Arena[Stmt]
	Exprs   *Arena[StmtExprData]
	Lets    *Arena[StmtLetData]
	Ifs     *Arena[StmtIfData]
	Blocks  *Arena[StmtBlockData]
	Funcs   *Arena[StmtFuncData]
	Returns *Arena[StmtReturnData]
}

// NewStmts creates a new Stmts with arenas preallocated to capHint.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Lets:    NewArena[StmtLetData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Funcs:   NewArena[StmtFuncData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, e ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{E: e})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression-statement data.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewLet creates a let-binding statement.
func (s *Stmts) NewLet(span source.Span, data StmtLetData) StmtID {
	payload := s.Lets.Allocate(data)
	return s.new(StmtLet, span, PayloadID(payload))
}

// Let returns the let data.
func (s *Stmts) Let(id StmtID) (*StmtLetData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtLet {
		return nil, false
	}
	return s.Lets.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	payload := s.Ifs.Allocate(data)
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, data StmtBlockData) StmtID {
	payload := s.Blocks.Allocate(data)
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns the block data.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

// NewFunc creates a function declaration.
func (s *Stmts) NewFunc(span source.Span, data StmtFuncData) StmtID {
	payload := s.Funcs.Allocate(data)
	return s.new(StmtFunc, span, PayloadID(payload))
}

// Func returns the function data.
func (s *Stmts) Func(id StmtID) (*StmtFuncData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFunc {
		return nil, false
	}
	return s.Funcs.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, data StmtReturnData) StmtID {
	payload := s.Returns.Allocate(data)
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}
