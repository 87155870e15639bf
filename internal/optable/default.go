package optable

import (
	"fmt"
	"sync"
)

// Precedence levels of the default table.
const (
	PrecAssign   = 1
	PrecPipe     = 2
	PrecOr       = 3
	PrecAnd      = 4
	PrecNot      = 5
	PrecCompare  = 6
	PrecMap      = 8
	PrecAdditive = 10
	PrecFold     = 15
	PrecMultiply = 20
	PrecConcat   = 25
	PrecRoot     = 30
	PrecPower    = 40
	PrecPrefix   = 50
	PrecIndex    = 60
	PrecMember   = 70
)

// DefaultGroups lists the built-in operators; glyph aliases share a group
// with their ASCII spelling.
var DefaultGroups = []Group{
	{Lexemes: []string{":=", "≔", ".=", "⩴"}, Precedence: PrecAssign, Assoc: Right},
	{Lexemes: []string{"|"}, Precedence: PrecPipe},
	{Lexemes: []string{"or", "∨"}, Precedence: PrecOr},
	{Lexemes: []string{"and", "∧"}, Precedence: PrecAnd},
	{Lexemes: []string{"not", "¬"}, Precedence: PrecNot},
	{Lexemes: []string{
		"=", "/=", "≠", "<", ">", "<=", ">=", "≤", "≥",
		"≺", "<_", "≻", "_>", "=~", "≈",
		"<<", "≪", "<<<", "⫷", "<~", "≲",
		">>", "≫", ">>>", "⫸", ">~", "≳",
		"in", "∈", "!in", "∉",
	}, Precedence: PrecCompare},
	{Lexemes: []string{"on", "→", "over", "←", "from", "↦", "onto", "⇴"}, Precedence: PrecMap},
	{Lexemes: []string{"+", "-"}, Precedence: PrecAdditive},
	{Lexemes: []string{"⊞", "∑", "⊟", "⊠", "∏", "⊡"}, Precedence: PrecFold},
	{Lexemes: []string{"*", "/", "//", "%", "$"}, Precedence: PrecMultiply},
	{Lexemes: []string{"&"}, Precedence: PrecConcat},
	{Lexemes: []string{"√", "./", "∛"}, Precedence: PrecRoot},
	{Lexemes: []string{"^"}, Precedence: PrecPower, Assoc: Right},
	{Lexemes: []string{"~", "!"}, Precedence: PrecPrefix},
	{Lexemes: []string{"@", "↑", "↓"}, Precedence: PrecIndex},
	{Lexemes: []string{"."}, Precedence: PrecMember},
}

// DefaultSpecials maps single-glyph op-quotes to the operator they stand for.
var DefaultSpecials = map[string]string{
	"⊕": "+",
	"⊖": "-",
	"⊗": "*",
	"⊘": "/",
	"⊙": "@",
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := New(DefaultGroups, DefaultSpecials)
	if err != nil {
		panic(fmt.Errorf("optable: default table: %w", err))
	}
	return t
})

// Default returns the shared built-in table.
func Default() *Table {
	return defaultTable()
}
