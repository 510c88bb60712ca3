// Package diag defines the diagnostic model shared by the lexer, parser and
// lint rules.
//
// Diagnostic is the central record: severity, a stable numeric Code, a short
// message, the primary source.Span, optional Notes and optional Fix
// suggestions. Producers emit through the Reporter interface so that storage
// and formatting stay decoupled; BagReporter aggregates into a Bag, which
// supports sorting, deduplication and merging across files.
//
// Rendering lives in internal/diagfmt; structural rewriting lives in
// internal/rewrite. Keep this package free of IO and formatting so the CLI
// can serialise diagnostics for caching and testing.
package diag
