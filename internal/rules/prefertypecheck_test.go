package rules_test

import (
	"testing"

	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/printer"
	"sift/internal/rules"
	"sift/internal/source"
	"sift/internal/token"
)

func parseClean(t *testing.T, input string) *ast.File {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.swift", []byte(input))

	bag := diag.NewBag(64)
	file := parser.ParseFile(fs.Get(fileID), diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Items())
	}
	return file
}

// runCheck drives the detection pass the way the driver does: one walk over
// the file, the rule called on every expression.
func runCheck(file *ast.File) *diag.Bag {
	rule := rules.PreferTypeCheck{}
	bag := diag.NewBag(64)
	ctx := &rules.CheckContext{
		File:     file,
		Parents:  ast.BuildParentMap(file),
		Reporter: diag.BagReporter{Bag: bag},
		Severity: rule.DefaultSeverity(),
	}
	file.WalkExprs(func(id ast.ExprID) {
		rule.CheckExpr(ctx, id)
	})
	return bag
}

func topSeq(t *testing.T, file *ast.File) ast.ExprID {
	t.Helper()
	data, ok := file.Arenas.Stmts.Expr(file.Stmts[0])
	if !ok {
		t.Fatal("expected expression statement")
	}
	return data.E
}

func TestDetectFlatComparison(t *testing.T) {
	file := parseClean(t, "bar as? Foo != nil")
	bag := runCheck(file)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(items), items)
	}
	d := items[0]
	if d.Code != diag.LintPreferTypeCheck {
		t.Errorf("code = %v, want %v", d.Code, diag.LintPreferTypeCheck)
	}
	if d.Severity != diag.SevWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	// диагностика указывает ровно на `as?`
	if d.Primary.Start != 4 || d.Primary.End != 7 {
		t.Errorf("primary span = [%d,%d), want [4,7)", d.Primary.Start, d.Primary.End)
	}
}

func TestDetectCarriesSuggestedFix(t *testing.T) {
	file := parseClean(t, "bar as? Foo != nil")
	bag := runCheck(file)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(items), items)
	}
	if len(items[0].Fixes) != 1 {
		t.Fatalf("got %d fixes, want 1", len(items[0].Fixes))
	}
	fx := items[0].Fixes[0]
	if len(fx.Edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(fx.Edits))
	}
	edit := fx.Edits[0]
	// правка замещает `as? Foo != nil` на `is Foo`
	if edit.Span.Start != 4 || edit.Span.End != 18 {
		t.Errorf("edit span = [%d,%d), want [4,18)", edit.Span.Start, edit.Span.End)
	}
	if edit.NewText != "is Foo" {
		t.Errorf("edit text = %q, want %q", edit.NewText, "is Foo")
	}
}

func TestDetectInsideIfCondition(t *testing.T) {
	file := parseClean(t, "if foo as? Bar != nil {\n    doSomeThing()\n}")
	bag := runCheck(file)

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(items), items)
	}
	if items[0].Primary.Start != 7 || items[0].Primary.End != 10 {
		t.Errorf("primary span = [%d,%d), want [7,10)", items[0].Primary.Start, items[0].Primary.End)
	}
}

func TestNoDiagnosticForNonMatches(t *testing.T) {
	inputs := []struct {
		name  string
		input string
	}{
		{"bare_optional_cast", "x as? T"},
		{"type_test", "x is T"},
		{"type_test_in_if", "if x is T { foo() }"},
		{"if_let_cast", "if let y = x as? T { use(y) }"},
		{"forced_cast", "x as! T != nil"},
		{"plain_cast", "x as T != nil"},
		{"equality_comparison", "x as? T == nil"},
		{"no_cast", "x != nil"},
		{"nil_on_left", "nil != x as? T"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			file := parseClean(t, tt.input)
			bag := runCheck(file)
			if items := bag.Items(); len(items) != 0 {
				t.Errorf("unexpected diagnostics: %v", items)
			}
		})
	}
}

func TestRewriteFlatComparison(t *testing.T) {
	file := parseClean(t, "bar as? Foo != nil")
	seqID := topSeq(t, file)

	rule := rules.PreferTypeCheck{}
	ctx := &rules.RewriteContext{File: file}
	newID := rule.RewriteSeq(ctx, seqID)

	if newID == seqID {
		t.Fatal("rewrite should produce a new node")
	}
	if got := printer.Expr(file, newID); got != "bar is Foo" {
		t.Errorf("rendered %q, want %q", got, "bar is Foo")
	}
	if len(ctx.Corrections) != 1 {
		t.Fatalf("got %d corrections, want 1", len(ctx.Corrections))
	}
	c := ctx.Corrections[0]
	if c.Rule != rule.Name() {
		t.Errorf("correction rule = %q, want %q", c.Rule, rule.Name())
	}
	// коррекция отмечается на токене `!=`
	if c.Span.Start != 12 || c.Span.End != 14 {
		t.Errorf("correction span = [%d,%d), want [12,14)", c.Span.Start, c.Span.End)
	}
}

func TestRewriteKeepsSpacing(t *testing.T) {
	file := parseClean(t, "bar   as?   Foo   !=   nil")
	seqID := topSeq(t, file)

	ctx := &rules.RewriteContext{File: file}
	newID := rules.PreferTypeCheck{}.RewriteSeq(ctx, seqID)

	if got := printer.Expr(file, newID); got != "bar   is   Foo" {
		t.Errorf("rendered %q, want %q", got, "bar   is   Foo")
	}
}

func TestRewriteMultipleMatches(t *testing.T) {
	file := parseClean(t, "a as? B != nil && c as? D != nil")
	seqID := topSeq(t, file)

	ctx := &rules.RewriteContext{File: file}
	newID := rules.PreferTypeCheck{}.RewriteSeq(ctx, seqID)

	if got := printer.Expr(file, newID); got != "a is B && c is D" {
		t.Errorf("rendered %q, want %q", got, "a is B && c is D")
	}
	if len(ctx.Corrections) != 2 {
		t.Fatalf("got %d corrections, want 2", len(ctx.Corrections))
	}
	if ctx.Corrections[0].Span.Start >= ctx.Corrections[1].Span.Start {
		t.Error("corrections should be recorded left to right")
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	file := parseClean(t, "bar as? Foo != nil")
	seqID := topSeq(t, file)

	rule := rules.PreferTypeCheck{}
	first := rule.RewriteSeq(&rules.RewriteContext{File: file}, seqID)

	ctx := &rules.RewriteContext{File: file}
	second := rule.RewriteSeq(ctx, first)
	if second != first {
		t.Error("second pass should leave the sequence untouched")
	}
	if len(ctx.Corrections) != 0 {
		t.Errorf("second pass recorded %d corrections, want 0", len(ctx.Corrections))
	}
}

// leadingCastFile собирает дерево вручную: последовательность, где каст стоит
// первым элементом, без операнда слева. Грамматика такую форму не порождает,
// но правило обязано молчать и на ней.
func leadingCastFile(t *testing.T) (*ast.File, ast.ExprID) {
	t.Helper()
	arenas := ast.NewArenas(8)
	exprs := arenas.Exprs

	tok := func(kind token.Kind, text string, start uint32) token.Token {
		return token.Token{
			Kind: kind,
			Text: text,
			Span: source.Span{Start: start, End: start + uint32(len(text))},
		}
	}

	asTok := tok(token.KwAs, "as", 0)
	markTok := tok(token.Question, "?", 2)
	typeTok := tok(token.Ident, "Foo", 4)
	typeTok.Leading = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
	typeID := exprs.NewIdent(typeTok)

	castID := exprs.NewCast(source.Span{Start: 0, End: 7}, ast.ExprCastData{
		Qualifier: ast.CastOptional,
		KwTok:     asTok,
		MarkTok:   markTok,
		Type:      typeID,
		Operand:   ast.NoExprID,
	})
	neqTok := tok(token.BangEq, "!=", 8)
	neqTok.Leading = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}
	nilTok := tok(token.NilLit, "nil", 11)
	nilTok.Leading = []token.Trivia{{Kind: token.TriviaSpace, Text: " "}}

	seqID := exprs.NewSeq(source.Span{Start: 0, End: 14}, []ast.ExprID{
		castID, exprs.NewOperator(neqTok), exprs.NewLit(nilTok),
	})
	stmtID := arenas.Stmts.NewExpr(source.Span{Start: 0, End: 14}, seqID)

	file := &ast.File{
		Stmts:  []ast.StmtID{stmtID},
		EOFTok: token.Token{Kind: token.EOF, Span: source.Span{Start: 14, End: 14}},
		Arenas: arenas,
	}
	return file, seqID
}

func TestLeadingOperandRequired(t *testing.T) {
	file, seqID := leadingCastFile(t)

	if bag := runCheck(file); bag.Len() != 0 {
		t.Errorf("cast without a left operand must not be flagged: %v", bag.Items())
	}

	ctx := &rules.RewriteContext{File: file}
	if newID := (rules.PreferTypeCheck{}).RewriteSeq(ctx, seqID); newID != seqID {
		t.Error("sequence with a leading cast must come back unchanged")
	}
	if len(ctx.Corrections) != 0 {
		t.Errorf("recorded %d corrections, want 0", len(ctx.Corrections))
	}
}

func TestRewriteLeavesNonMatchesAlone(t *testing.T) {
	inputs := []struct {
		name  string
		input string
	}{
		{"type_test", "x is T"},
		{"forced_cast", "x as! T != nil"},
		{"equality_comparison", "x as? T == nil"},
	}

	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			file := parseClean(t, tt.input)
			seqID := topSeq(t, file)

			ctx := &rules.RewriteContext{File: file}
			if newID := (rules.PreferTypeCheck{}).RewriteSeq(ctx, seqID); newID != seqID {
				t.Error("non-matching sequence must come back unchanged")
			}
			if len(ctx.Corrections) != 0 {
				t.Errorf("recorded %d corrections, want 0", len(ctx.Corrections))
			}
		})
	}
}
