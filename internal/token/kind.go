package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwAs represents the 'as' cast keyword.
	KwAs // as
	// KwIs represents the 'is' type-test keyword.
	KwIs // is
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwFunc represents the 'func' keyword.
	KwFunc // func
	// KwReturn represents the 'return' keyword.
	KwReturn // return

	// NilLit represents the 'nil' absence literal.
	NilLit // nil
	// TrueLit represents the 'true' literal.
	TrueLit // true
	// FalseLit represents the 'false' literal.
	FalseLit // false
	// IntLit represents an integer literal.
	IntLit
	// StringLit represents a string literal.
	StringLit

	// Operators and punctuation.
	EqEq     // ==
	BangEq   // !=
	AndAnd   // &&
	OrOr     // ||
	Lt       // <
	Gt       // >
	Plus     // +
	Minus    // -
	Assign   // =
	Question // ?
	Bang     // !
	Dot      // .
	Comma    // ,
	Colon    // :
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
)

var kindNames = map[Kind]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwAs:      "as",
	KwIs:      "is",
	KwIf:      "if",
	KwElse:    "else",
	KwLet:     "let",
	KwFunc:    "func",
	KwReturn:  "return",
	NilLit:    "nil",
	TrueLit:   "true",
	FalseLit:  "false",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	EqEq:      "==",
	BangEq:    "!=",
	AndAnd:    "&&",
	OrOr:      "||",
	Lt:        "<",
	Gt:        ">",
	Plus:      "+",
	Minus:     "-",
	Assign:    "=",
	Question:  "?",
	Bang:      "!",
	Dot:       ".",
	Comma:     ",",
	Colon:     ":",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}
