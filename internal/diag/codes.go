package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedComment Code = 1003

	// Синтаксические (движок сортировочной станции и сборка AST)
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnbalancedDelimiter Code = 2002
	SynArityMismatch       Code = 2003
	SynUnknownOperator     Code = 2004
	SynInternal            Code = 2005

	// Ошибки I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Конфигурация (tidy.toml)
	CfgInvalid         Code = 5001
	CfgUnknownKey      Code = 5002
	CfgInvalidOperator Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:            "Unknown error",
	LexInfo:                "Lexical information",
	LexUnknownChar:         "Unknown character",
	LexUnterminatedString:  "Unterminated string",
	LexUnterminatedComment: "Unterminated block comment",
	SynInfo:                "Syntax information",
	SynUnexpectedToken:     "Unexpected token",
	SynUnbalancedDelimiter: "Unbalanced delimiter",
	SynArityMismatch:       "Operand count mismatch",
	SynUnknownOperator:     "Unknown operator",
	SynInternal:            "Internal parser error",
	IOLoadFileError:        "I/O load file error",
	IOCacheError:           "Cache error",
	CfgInvalid:             "Invalid configuration",
	CfgUnknownKey:          "Unknown configuration key",
	CfgInvalidOperator:     "Invalid operator override",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
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
