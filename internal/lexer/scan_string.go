package lexer

import (
	"tidy/internal/diag"
	"tidy/internal/token"
)

// scanQuoted: "..." → String, [буква]`...` → PatternString.
// Удвоенная кавычка внутри: экранированная кавычка. Незакрытый литерал
// репортится и превращается в Unknown из одной руны, дальше лексим как обычно.
func (lx *Lexer) scanQuoted() (token.Kind, bool) {
	b0 := lx.cursor.Peek()
	switch {
	case b0 == '"':
		return lx.scanDelimited('"', token.String), true
	case b0 == '`':
		return lx.scanDelimited('`', token.PatternString), true
	case isASCIILetter(b0) && lx.cursor.PeekAt(1) == '`':
		return lx.scanDelimited('`', token.PatternString), true
	}
	return token.Unknown, false
}

func (lx *Lexer) scanDelimited(quote byte, kind token.Kind) token.Kind {
	start := lx.cursor.Mark()
	if lx.cursor.Peek() != quote {
		lx.cursor.Bump() // префикс паттерна
	}
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != quote {
			continue
		}
		if lx.cursor.Peek() == quote {
			lx.cursor.Bump() // "" или ``
			continue
		}
		return kind
	}

	sp := lx.cursor.SpanFrom(start)
	lx.cursor.Reset(start)
	lx.bumpRune()
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated "+kind.String()+" literal").
		WithNote(lx.cursor.SpanFrom(start), "opened here").
		Emit()
	return token.Unknown
}

// scanCharacter: "'" и ровно одна руна после неё.
func (lx *Lexer) scanCharacter() bool {
	if lx.cursor.Peek() != '\'' {
		return false
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if lx.cursor.EOF() {
		lx.cursor.Reset(start)
		return false
	}
	lx.bumpRune()
	return true
}
