package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		ident    string
		expected Kind
	}{
		{"as", KwAs},
		{"is", KwIs},
		{"if", KwIf},
		{"let", KwLet},
		{"nil", NilLit},
		{"true", TrueLit},
		{"false", FalseLit},
		{"foo", Ident},
		{"As", Ident}, // keywords are case-sensitive
	}

	for _, tt := range tests {
		if got := LookupKeyword(tt.ident); got != tt.expected {
			t.Errorf("LookupKeyword(%q) = %v, want %v", tt.ident, got, tt.expected)
		}
	}
}

func TestTokenClasses(t *testing.T) {
	if !(Token{Kind: BangEq}).IsBinaryOperator() {
		t.Error("!= should be a binary operator")
	}
	if (Token{Kind: Question}).IsBinaryOperator() {
		t.Error("? is not a binary operator")
	}
	if !(Token{Kind: NilLit}).IsLiteral() {
		t.Error("nil should be a literal")
	}
	if !(Token{Kind: KwAs}).IsKeyword() {
		t.Error("as should be a keyword")
	}
	if (Token{Kind: KwAs}).IsIdent() {
		t.Error("as is not an identifier")
	}
}

func TestLeadingText(t *testing.T) {
	tok := Token{
		Kind: Ident,
		Text: "bar",
		Leading: []Trivia{
			{Kind: TriviaNewline, Text: "\n"},
			{Kind: TriviaLineComment, Text: "// note"},
			{Kind: TriviaNewline, Text: "\n"},
		},
	}
	if got := tok.LeadingText(); got != "\n// note\n" {
		t.Errorf("LeadingText() = %q", got)
	}
}
