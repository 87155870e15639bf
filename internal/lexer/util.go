package lexer

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"tidy/internal/optable"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущий байт как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.cursor.Rest())
}

// bumpRune перемещает курсор на размер текущей руны (минимум один байт)
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.BumpN(max(sz, 1))
}

// ===== Классификаторы =====

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isBlankRune(r rune) bool { return unicode.IsSpace(r) }

func (lx *Lexer) scanWord() {
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !optable.IsWordRune(r) {
			return
		}
		lx.bumpRune()
	}
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return fmt.Sprintf("%s (U+%04X)", strconv.QuoteRune(r), r)
}
