package lexer

import (
	"strings"

	"tidy/internal/token"
)

// scanNumber: цифры и разделители b e . ("e-" берётся целиком), затем суффиксы r i f.
// Форму числа не проверяем: 1..2 или 3bb остаются одним Number, смысл решает потребитель AST.
func (lx *Lexer) scanNumber() {
	for {
		b := lx.cursor.Peek()
		switch {
		case isDec(b):
			lx.cursor.Bump()
		case b == 'e' && lx.cursor.PeekAt(1) == '-':
			lx.cursor.Bump()
			lx.cursor.Bump()
		case strings.IndexByte(token.NumberSeparators, b) >= 0:
			lx.cursor.Bump()
		default:
			goto terminators
		}
	}
terminators:
	for {
		b := lx.cursor.Peek()
		if strings.IndexByte(token.NumberTerminators, b) < 0 {
			return
		}
		lx.cursor.Bump()
	}
}
