package lexer

import (
	"tidy/internal/diag"
)

// scanBlank съедает максимальную серию пробельных рун.
func (lx *Lexer) scanBlank() bool {
	start := lx.cursor.Off
	lx.skipSpaces()
	return lx.cursor.Off != start
}

// scanComment: "###" ... "###" (многострочный) или "#" до конца строки без '\n'.
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	if lx.cursor.PeekAt(1) == '#' && lx.cursor.PeekAt(2) == '#' {
		lx.cursor.BumpN(3)
		for !lx.cursor.EOF() {
			if lx.cursor.Peek() == '#' && lx.cursor.PeekAt(1) == '#' && lx.cursor.PeekAt(2) == '#' {
				lx.cursor.BumpN(3)
				return
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedComment, sp, "unterminated block comment").
			WithFix("close the comment", diag.FixEdit{Span: lx.EmptySpan(), NewText: "###"}).
			Emit()
		return
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
