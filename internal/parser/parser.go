package parser

import (
	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/lexer"
	"sift/internal/source"
	"sift/internal/token"
)

// Parser строит AST поверх потока токенов лексера. Дерево полностью
// сохраняет текст: каждый узел держит свои токены вместе с leading trivia.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Arenas
	reporter diag.Reporter
	fileID   source.FileID
}

// New creates a parser for the provided file.
func New(file *source.File, reporter diag.Reporter) *Parser {
	return &Parser{
		lx:       lexer.New(file, lexer.Options{Reporter: reporter}),
		arenas:   ast.NewArenas(0),
		reporter: reporter,
		fileID:   file.ID,
	}
}

// ParseFile parses the whole file into statements. Parse errors become
// diagnostics; the parser always produces a (possibly partial) tree.
func ParseFile(file *source.File, reporter diag.Reporter) *ast.File {
	p := New(file, reporter)
	stmts := make([]ast.StmtID, 0, 8)

	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF {
			break
		}
		id, ok := p.parseStmt()
		if ok {
			stmts = append(stmts, id)
			continue
		}
		// не удалось — съедаем токен, чтобы гарантировать прогресс
		p.advance()
	}

	return &ast.File{
		ID:     p.fileID,
		Stmts:  stmts,
		EOFTok: p.lx.Next(),
		Arenas: p.arenas,
	}
}

func (p *Parser) advance() token.Token {
	return p.lx.Next()
}

// expect съедает токен требуемого вида или репортит и возвращает ok=false.
func (p *Parser) expect(kind token.Kind, code diag.Code, msg string) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != kind {
		p.err(code, tok.Span, msg)
		return tok, false
	}
	return p.advance(), true
}

func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.reporter != nil {
		p.reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if expr := p.arenas.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return source.Span{File: p.fileID}
}

func (p *Parser) stmtSpan(id ast.StmtID) source.Span {
	if stmt := p.arenas.Stmts.Get(id); stmt != nil {
		return stmt.Span
	}
	return source.Span{File: p.fileID}
}
