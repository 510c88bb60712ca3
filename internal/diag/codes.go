package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBrace    Code = 2006
	SynExpectAssign     Code = 2007

	// Lint rules
	LintInfo            Code = 3000
	LintPreferTypeCheck Code = 3001

	// I/O
	IOLoadFileError Code = 4000
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexer information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynInfo:                     "Parser information",
	SynUnexpectedToken:          "Unexpected token",
	SynExpectExpression:         "Expected expression",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type name",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectAssign:             "Expected '='",
	LintInfo:                    "Lint information",
	LintPreferTypeCheck:         "Prefer 'is' type test over optional cast compared to nil",
	IOLoadFileError:             "I/O load file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
