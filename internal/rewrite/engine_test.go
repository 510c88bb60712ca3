package rewrite_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sift/internal/ast"
	"sift/internal/diag"
	"sift/internal/parser"
	"sift/internal/rewrite"
	"sift/internal/rules"
	"sift/internal/source"
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

func seqRewriters() []rules.SeqRewriter {
	var out []rules.SeqRewriter
	for _, cr := range rules.NewRegistry().Active() {
		if rw, ok := cr.Rule.(rules.SeqRewriter); ok {
			out = append(out, rw)
		}
	}
	return out
}

func TestRewriteFile(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		corrections int
	}{
		{
			"flat_comparison",
			"bar as? Foo != nil\n",
			"bar is Foo\n",
			1,
		},
		{
			"if_condition",
			"if foo as? Bar != nil {\n    doSomeThing()\n}\n",
			"if foo is Bar {\n    doSomeThing()\n}\n",
			1,
		},
		{
			"nested_in_parens",
			"check((a as? B != nil) && other(1, 2))\n",
			"check((a is B) && other(1, 2))\n",
			1,
		},
		{
			"return_value",
			"func f() {\n    return bar as? Foo != nil\n}\n",
			"func f() {\n    return bar is Foo\n}\n",
			1,
		},
		{
			"let_value",
			"let ok = x as? T != nil\n",
			"let ok = x is T\n",
			1,
		},
		{
			"two_matches",
			"a as? B != nil && c as? D != nil\n",
			"a is B && c is D\n",
			2,
		},
		{
			"comments_survive",
			"// header\nlet x = a /* mid */ as? B != nil // tail\n",
			"// header\nlet x = a /* mid */ is B // tail\n",
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := parseClean(t, tt.input)
			res := rewrite.File(file, seqRewriters())

			if !res.Changed {
				t.Fatal("expected the file to change")
			}
			if got := res.Render(); got != tt.want {
				t.Errorf("rendered:\n got: %q\nwant: %q", got, tt.want)
			}
			if len(res.Corrections) != tt.corrections {
				t.Errorf("got %d corrections, want %d", len(res.Corrections), tt.corrections)
			}
		})
	}
}

func TestRewriteUntouchedFile(t *testing.T) {
	input := "if let y = x as? T {\n    use(y)\n}\n"
	file := parseClean(t, input)

	res := rewrite.File(file, seqRewriters())
	if res.Changed {
		t.Error("nothing matches, the file must not change")
	}
	if res.File != file {
		t.Error("an untouched file should come back as the same tree")
	}
	if got := res.Render(); got != input {
		t.Errorf("rendered %q, want the input unchanged", got)
	}
}

func TestRewriteIsIdempotent(t *testing.T) {
	file := parseClean(t, "if foo as? Bar != nil {\n    doSomeThing()\n}\n")

	first := rewrite.File(file, seqRewriters())
	if !first.Changed {
		t.Fatal("first pass should rewrite")
	}

	second := rewrite.File(first.File, seqRewriters())
	if second.Changed {
		t.Error("second pass must be a no-op")
	}
	if len(second.Corrections) != 0 {
		t.Errorf("second pass recorded %d corrections", len(second.Corrections))
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.swift")
	input := "bar as? Foo != nil\n"
	if err := os.WriteFile(path, []byte(input), 0o600); err != nil {
		t.Fatal(err)
	}

	file := parseClean(t, input)
	res := rewrite.File(file, seqRewriters())

	t.Run("dry_run", func(t *testing.T) {
		if err := rewrite.Apply(path, res, true); err != nil {
			t.Fatal(err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != input {
			t.Error("dry run must not modify the file")
		}
	})

	t.Run("write_back", func(t *testing.T) {
		if err := rewrite.Apply(path, res, false); err != nil {
			t.Fatal(err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "bar is Foo\n" {
			t.Errorf("file content %q, want %q", got, "bar is Foo\n")
		}
		st, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if st.Mode().Perm() != 0o600 {
			t.Errorf("file mode %v, want 0600", st.Mode().Perm())
		}
	})

	t.Run("no_changes", func(t *testing.T) {
		clean := parseClean(t, "x is T\n")
		err := rewrite.Apply(path, rewrite.File(clean, seqRewriters()), false)
		if !errors.Is(err, rewrite.ErrNoChanges) {
			t.Errorf("err = %v, want ErrNoChanges", err)
		}
	})
}
