package lexer

import (
	"tidy/internal/diag"
	"tidy/internal/optable"
	"tidy/internal/source"
	"tidy/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	table   *optable.Table
	inRange bool // '[' и ']' переключают один флаг: диапазоны не вкладываются
}

func New(file *source.File, opts Options) *Lexer {
	table := opts.Table
	if table == nil {
		table = optable.Default()
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		table:  table,
	}
}

// Next возвращает следующий токен, включая Blank и Comment.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Line: lx.cursor.Line,
			Col:  lx.cursor.Col,
		}
	}

	start := lx.cursor.Mark()
	kind := lx.scan()
	return lx.emit(kind, start)
}

// EmptySpan returns an empty span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// Table returns the operator table used for matching.
func (lx *Lexer) Table() *optable.Table { return lx.table }

// scan классифицирует токен в фиксированном порядке; первый подошедший выигрывает.
func (lx *Lexer) scan() token.Kind {
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		lx.scanNumber()
		return token.Number
	case lx.scanBlank():
		return token.Blank
	case lx.scanOpQuote():
		return token.OpQuote
	case ch == '#':
		lx.scanComment()
		return token.Comment
	}

	if kind, ok := lx.scanQuoted(); ok {
		return kind
	}
	if lex, ok := lx.table.MatchAt(lx.file.Content, int(lx.cursor.Off)); ok {
		lx.cursor.BumpN(len(lex))
		return token.Operator
	}
	if kind, ok := punctuation[ch]; ok {
		lx.cursor.Bump()
		return kind
	}
	if lx.scanCharacter() {
		return token.Character
	}

	r, _ := lx.peekRune()
	switch {
	case r == '∞':
		lx.bumpRune()
		return token.Infinity
	case r == '[' || r == ']':
		lx.cursor.Bump()
		if lx.inRange {
			lx.inRange = false
			return token.RangeClose
		}
		lx.inRange = true
		return token.RangeOpen
	case optable.IsWordRune(r):
		lx.scanWord()
		return token.Word
	}

	start := lx.cursor.Mark()
	lx.bumpRune()
	lx.warn(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character "+quoteRune(r))
	return token.Unknown
}

var punctuation = map[byte]token.Kind{
	';': token.Separator,
	'{': token.BlockOpen,
	'}': token.BlockClose,
	':': token.BlockSplit,
	',': token.Comma,
	'(': token.ParenOpen,
	')': token.ParenClose,
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Raw:  string(lx.file.Content[sp.Start:sp.End]),
		Span: sp,
		Line: start.Line,
		Col:  start.Col,
	}
}

// All scans the whole file, EOF excluded.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}
