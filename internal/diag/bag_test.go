package diag

import (
	"testing"

	"sift/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewError(LexUnknownChar, span(0, 0, 1), "a")) {
		t.Fatal("first Add should succeed")
	}
	if !bag.Add(NewError(LexUnknownChar, span(0, 1, 2), "b")) {
		t.Fatal("second Add should succeed")
	}
	if bag.Add(NewError(LexUnknownChar, span(0, 2, 3), "c")) {
		t.Fatal("third Add should be rejected by the limit")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevWarning, LintPreferTypeCheck, span(1, 5, 6), "later file"))
	bag.Add(New(SevWarning, LintPreferTypeCheck, span(0, 9, 10), "later offset"))
	bag.Add(New(SevError, SynUnexpectedToken, span(0, 2, 3), "earlier offset"))
	bag.Sort()

	items := bag.Items()
	if items[0].Message != "earlier offset" || items[1].Message != "later offset" || items[2].Message != "later file" {
		t.Fatalf("unexpected order: %q, %q, %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevWarning, LintPreferTypeCheck, span(0, 1, 2), "dup"))

	b := NewBag(1)
	b.Add(New(SevWarning, LintPreferTypeCheck, span(0, 1, 2), "dup"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Len() after merge = %d, want 2", a.Len())
	}
	a.Dedup()
	if a.Len() != 1 {
		t.Fatalf("Len() after dedup = %d, want 1", a.Len())
	}
}

func TestHasErrorsWarnings(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevInfo, LintInfo, span(0, 0, 0), "fyi"))
	if bag.HasErrors() || bag.HasWarnings() {
		t.Fatal("info-only bag should have neither errors nor warnings")
	}
	bag.Add(New(SevWarning, LintPreferTypeCheck, span(0, 0, 1), "warn"))
	if bag.HasErrors() {
		t.Fatal("warning is not an error")
	}
	if !bag.HasWarnings() {
		t.Fatal("expected HasWarnings")
	}
}

func TestBagCapClamped(t *testing.T) {
	if got := NewBag(70000).Cap(); got != 65535 {
		t.Errorf("Cap() = %d, want 65535 for an oversized limit", got)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Errorf("Cap() = %d, want 0 for a negative limit", got)
	}
}

func TestDropBelowAndPromote(t *testing.T) {
	bag := NewBag(4)
	bag.Add(New(SevInfo, LintInfo, span(0, 0, 1), "fyi"))
	bag.Add(New(SevWarning, LintPreferTypeCheck, span(0, 2, 3), "warn"))
	bag.Add(New(SevError, SynUnexpectedToken, span(0, 4, 5), "err"))

	bag.PromoteWarnings()
	bag.DropBelow(SevError)

	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
	for _, d := range bag.Items() {
		if d.Severity != SevError {
			t.Fatalf("severity = %v, want error", d.Severity)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})

	for i := 0; i < 3; i++ {
		r.Report(LintPreferTypeCheck, SevWarning, span(0, 4, 7), "same", nil, nil)
	}
	r.Report(LintPreferTypeCheck, SevWarning, span(0, 8, 9), "same", nil, nil)

	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}
}
