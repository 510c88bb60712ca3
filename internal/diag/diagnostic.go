package diag

import (
	"sift/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement in source coordinates. OldText is an
// optional guard: when non-empty, appliers must verify the current content
// before editing.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix describes one automated correction attached to a diagnostic.
type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
