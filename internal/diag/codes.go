package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadLifetime              Code = 1004

	// Синтаксические
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectLifetime     Code = 2005
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynUnclosedAngle      Code = 2009
	SynExpectSemicolon    Code = 2010
	SynSelfNotFirst       Code = 2011
	SynBadImplItem        Code = 2012
	SynExpectBody         Code = 2013

	// Нормализация регионов
	NrmUnresolvedOutputRegion Code = 4001
	NrmGeneratedRegion        Code = 4002

	// Ввод-вывод
	IOLoadFileError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadLifetime:              "Malformed lifetime",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type",
	SynExpectLifetime:           "Expected lifetime",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynUnclosedAngle:            "Unclosed angle bracket",
	SynExpectSemicolon:          "Expected semicolon",
	SynSelfNotFirst:             "Receiver must be the first parameter",
	SynBadImplItem:              "Unsupported item inside impl or trait",
	SynExpectBody:               "Expected body or ';'",
	NrmUnresolvedOutputRegion:   "Output region left unresolved",
	NrmGeneratedRegion:          "Region parameter generated",
	IOLoadFileError:             "I/O load file error",
}

// ID returns the stable textual identifier of the code, e.g. "SYN2003".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("NRM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
