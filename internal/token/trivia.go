package token

import "sift/internal/source"

// TriviaKind classifies incidental text attached to a token.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

// Trivia is a run of incidental text (whitespace or comment) that carries
// no semantic meaning but must survive rewrites verbatim.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
