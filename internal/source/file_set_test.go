package source

import "testing"

func TestAddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.swift", []byte("let a = 1\nlet b = 2\n"))

	file := fs.Get(id)
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}

	// "b" находится на второй строке, пятый байт строки
	start, _ := fs.Resolve(Span{File: id, Start: 14, End: 15})
	if start.Line != 2 || start.Col != 5 {
		t.Errorf("Resolve() = %d:%d, want 2:5", start.Line, start.Col)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.swift", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	tests := []struct {
		line     uint32
		expected string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}

	for _, tt := range tests {
		if got := file.GetLine(tt.line); got != tt.expected {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.expected)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("crlf.swift", []byte("a\nb"), 0)
	if fs.Get(id).Path != "crlf.swift" {
		t.Errorf("unexpected path %q", fs.Get(id).Path)
	}

	content, changed := normalizeCRLF([]byte("a\r\nb\r\n"))
	if !changed || string(content) != "a\nb\n" {
		t.Errorf("normalizeCRLF = %q (changed=%v)", content, changed)
	}

	content, changed = normalizeCRLF([]byte("plain"))
	if changed || string(content) != "plain" {
		t.Errorf("normalizeCRLF should not touch plain input")
	}
}

func TestGetByPath(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("dir/a.swift", []byte("x"))

	if _, ok := fs.GetByPath("dir/a.swift"); !ok {
		t.Error("expected to find dir/a.swift")
	}
	if _, ok := fs.GetByPath("missing.swift"); ok {
		t.Error("did not expect to find missing.swift")
	}
}
