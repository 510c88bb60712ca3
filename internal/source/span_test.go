package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint_right",
			a:        Span{File: 1, Start: 0, End: 3},
			b:        Span{File: 1, Start: 10, End: 12},
			expected: Span{File: 1, Start: 0, End: 12},
		},
		{
			name:     "contained",
			a:        Span{File: 1, Start: 0, End: 20},
			b:        Span{File: 1, Start: 5, End: 6},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "other_file_ignored",
			a:        Span{File: 1, Start: 4, End: 8},
			b:        Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 4, End: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Cover(tt.b)
			if got != tt.expected {
				t.Fatalf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpanLenEmpty(t *testing.T) {
	s := Span{File: 0, Start: 7, End: 7}
	if !s.Empty() {
		t.Error("expected empty span")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s.End = 10
	if s.Empty() {
		t.Error("expected non-empty span")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}
