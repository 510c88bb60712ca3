package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"sift/internal/cache"
	"sift/internal/diag"
	"sift/internal/driver"
	"sift/internal/rules"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func defaultOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: 64,
		Rules:          rules.NewRegistry().Active(),
	}
}

func TestCheckDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.swift":        "bar as? Foo != nil\n",
		"clean.swift":    "if x is T {\n    foo()\n}\n",
		"nested/b.swift": "if foo as? Bar != nil {\n    doSomeThing()\n}\n",
		"notes.txt":      "not a source file",
	})

	_, results, err := driver.CheckDir(context.Background(), dir, defaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3 (only .swift files)", len(results))
	}

	// результаты отсортированы по пути
	byName := map[string]int{}
	for _, res := range results {
		count := 0
		for _, d := range res.Bag.Items() {
			if d.Code == diag.LintPreferTypeCheck {
				count++
			}
		}
		byName[filepath.Base(res.Path)] = count
	}
	if byName["a.swift"] != 1 || byName["b.swift"] != 1 || byName["clean.swift"] != 0 {
		t.Errorf("unexpected diagnostic counts: %v", byName)
	}
}

func TestCheckFileDedupsDuplicateRules(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.swift": "bar as? Foo != nil\n",
	})

	// одно правило, сконфигурированное дважды: диагностика не должна удвоиться
	opts := defaultOptions()
	opts.Rules = append(opts.Rules, opts.Rules...)

	_, results, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Bag.Len(); got != 1 {
		t.Errorf("got %d diagnostics, want 1: %v", got, results[0].Bag.Items())
	}
}

func TestCheckDirUsesCache(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.swift": "bar as? Foo != nil\n",
	})

	c, err := cache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := defaultOptions()
	opts.Cache = c

	_, first, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].FromCache {
		t.Error("first run cannot hit the cache")
	}

	_, second, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].FromCache {
		t.Error("second run should hit the cache")
	}
	if len(second[0].Bag.Items()) != len(first[0].Bag.Items()) {
		t.Error("cached diagnostics differ from the fresh ones")
	}

	// правка файла инвалидирует запись
	path := filepath.Join(dir, "a.swift")
	if err := os.WriteFile(path, []byte("baz as? Qux != nil\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, third, err := driver.CheckDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].FromCache {
		t.Error("edited file must be rechecked")
	}
}

func TestFixDir(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.swift":      "bar as? Foo != nil\n",
		"clean.swift":  "if x is T {\n    foo()\n}\n",
		"broken.swift": "if x {\n",
	})

	_, results, err := driver.FixDir(context.Background(), dir, defaultOptions(), false)
	if err != nil {
		t.Fatal(err)
	}

	byName := map[string]driver.FixResult{}
	for _, res := range results {
		byName[filepath.Base(res.Path)] = res
	}

	if !byName["a.swift"].Changed || len(byName["a.swift"].Corrections) != 1 {
		t.Errorf("a.swift should be rewritten once: %+v", byName["a.swift"])
	}
	if byName["clean.swift"].Changed {
		t.Error("clean.swift must stay untouched")
	}
	if !byName["broken.swift"].Skipped {
		t.Error("a file with parse errors must be skipped")
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "bar is Foo\n" {
		t.Errorf("a.swift content %q, want %q", got, "bar is Foo\n")
	}
	unchanged, err := os.ReadFile(filepath.Join(dir, "broken.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(unchanged) != "if x {\n" {
		t.Error("skipped file must keep its content")
	}
}

func TestFixDirDryRun(t *testing.T) {
	input := "bar as? Foo != nil\n"
	dir := writeTree(t, map[string]string{"a.swift": input})

	_, results, err := driver.FixDir(context.Background(), dir, defaultOptions(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Changed {
		t.Error("dry run still reports what would change")
	}

	got, err := os.ReadFile(filepath.Join(dir, "a.swift"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != input {
		t.Error("dry run must not modify files")
	}
}

func TestCheckDirEmpty(t *testing.T) {
	_, results, err := driver.CheckDir(context.Background(), t.TempDir(), defaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for an empty directory", len(results))
	}
}
