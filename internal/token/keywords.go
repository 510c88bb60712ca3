package token

var keywords = map[string]Kind{
	"as":     KwAs,
	"is":     KwIs,
	"if":     KwIf,
	"else":   KwElse,
	"let":    KwLet,
	"func":   KwFunc,
	"return": KwReturn,
	"nil":    NilLit,
	"true":   TrueLit,
	"false":  FalseLit,
}

// LookupKeyword returns the keyword (or literal keyword) kind for an
// identifier spelling, or Ident if the spelling is not reserved.
func LookupKeyword(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return Ident
}
