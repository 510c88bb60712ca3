package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func writeSwift(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.swift")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckQuietSuppressesOutput(t *testing.T) {
	path := writeSwift(t, "bar as? Foo != nil\n")

	out, err := runCLI(t, "check", "--quiet", path)
	if err == nil {
		t.Fatal("check must fail when diagnostics are found")
	}
	if out != "" {
		t.Errorf("quiet run printed %q, want nothing", out)
	}
}

func TestCheckPrintsDiagnostics(t *testing.T) {
	path := writeSwift(t, "bar as? Foo != nil\n")

	out, err := runCLI(t, "check", "--quiet=false", path)
	if err == nil {
		t.Fatal("check must fail when diagnostics are found")
	}
	if !strings.Contains(out, "LNT3001") {
		t.Errorf("missing diagnostic in output %q", out)
	}
}
