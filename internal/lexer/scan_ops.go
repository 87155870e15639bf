package lexer

// scanOpQuote: "(" пробелы? (оператор пробелы?)+ ")" или одиночный спец-глиф (⊕ ...).
// Без совпадения курсор не двигается.
func (lx *Lexer) scanOpQuote() bool {
	if _, size, ok := lx.table.SpecialAt(lx.file.Content, int(lx.cursor.Off)); ok {
		lx.cursor.BumpN(size)
		return true
	}
	if lx.cursor.Peek() != '(' {
		return false
	}

	start := lx.cursor.Mark()
	lx.cursor.Bump()
	ops := 0
	for {
		lx.skipSpaces()
		lex, ok := lx.table.MatchAt(lx.file.Content, int(lx.cursor.Off))
		if !ok {
			break
		}
		lx.cursor.BumpN(len(lex))
		ops++
	}
	if ops > 0 && lx.cursor.Eat(')') {
		return true
	}
	lx.cursor.Reset(start)
	return false
}

func (lx *Lexer) skipSpaces() {
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isBlankRune(r) {
			return
		}
		lx.bumpRune()
	}
}
