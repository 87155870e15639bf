package shunt

import (
	"errors"
	"fmt"

	"tidy/internal/diag"
	"tidy/internal/optable"
	"tidy/internal/token"
)

// TokenSource yields lexer tokens; EOF kind ends the stream.
type TokenSource interface {
	Next() token.Token
}

type Options struct {
	Table *optable.Table // nil: optable.Default()
}

// Engine converts a token stream into the output sequence lazily.
type Engine struct {
	src   TokenSource
	table *optable.Table

	ops     []token.Token // операторы и открывающие маркеры
	arities []int         // по одному на каждый открытый маркер
	calls   []bool        // по одному на каждую '('
	splits  []bool        // по одному на каждую '{': был ли ':'

	prev    token.Token
	hasPrev bool

	queue []token.Token
	last  token.Token // последний прочитанный токен, якорь для EOF
	done  bool
	err   error
}

func New(src TokenSource, opts Options) *Engine {
	table := opts.Table
	if table == nil {
		table = optable.Default()
	}
	return &Engine{src: src, table: table}
}

// Next returns the next output item. After the stream is exhausted it keeps
// returning an EOF token; after an error it keeps returning that error.
func (e *Engine) Next() (token.Token, error) {
	for len(e.queue) == 0 {
		if e.err != nil {
			return token.Token{}, e.err
		}
		if e.done {
			return token.Token{Kind: token.EOF, Span: e.last.Span, Line: e.last.Line, Col: e.last.Col}, nil
		}
		tok := e.src.Next()
		if err := e.step(tok); err != nil {
			e.err = err
			e.queue = e.queue[:0]
			return token.Token{}, err
		}
	}
	tok := e.queue[0]
	e.queue = e.queue[1:]
	return tok, nil
}

// Collect drains the engine; EOF is not included.
func Collect(src TokenSource, opts Options) ([]token.Token, error) {
	e := New(src, opts)
	var out []token.Token
	for {
		tok, err := e.Next()
		if err != nil {
			return out, err
		}
		if tok.Kind == token.EOF {
			return out, nil
		}
		out = append(out, tok)
	}
}

func (e *Engine) step(tok token.Token) error {
	if tok.Kind != token.EOF {
		e.last = tok
	}
	switch tok.Kind {
	case token.EOF:
		return e.drain()
	case token.Blank, token.Comment, token.Unknown:
		// Unknown уже отрепорчен лексером
		return nil
	case token.Number, token.Atom, token.Word, token.Infinity, token.OpQuote,
		token.String, token.Character, token.PatternString:
		e.data(tok)
	case token.Operator, token.UnaryOperator:
		if err := e.operator(tok); err != nil {
			return err
		}
	case token.ParenOpen:
		e.parenOpen(tok)
	case token.ParenClose:
		if err := e.parenClose(tok); err != nil {
			return err
		}
	case token.RangeOpen:
		e.valueStart()
		e.push(tok)
		e.arities = append(e.arities, 1)
	case token.RangeClose:
		if err := e.rangeClose(tok); err != nil {
			return err
		}
	case token.BlockOpen:
		e.valueStart()
		e.push(tok)
		e.emit(tok)
		e.arities = append(e.arities, 1)
		e.splits = append(e.splits, false)
	case token.BlockSplit:
		if err := e.blockSplit(tok); err != nil {
			return err
		}
	case token.BlockClose:
		if err := e.blockClose(tok); err != nil {
			return err
		}
	case token.Comma:
		if err := e.comma(tok); err != nil {
			return err
		}
	case token.Separator:
		e.flushToMarker()
		e.hasPrev = false
		return nil
	default:
		return errAt(diag.ErrInternal, diag.SynInternal, tok,
			fmt.Sprintf("token kind %s cannot appear in the input of the engine", tok.Kind))
	}
	e.prev, e.hasPrev = tok, true
	return nil
}

func (e *Engine) data(tok token.Token) {
	e.valueStart()
	e.emit(tok)
}

// valueStart: два значения подряд: граница выражения.
// Литералы, '[' и '{' начинают новое значение.
func (e *Engine) valueStart() {
	if e.hasPrev && e.prev.IsDataLike() {
		e.flushToMarker()
	}
}

// operator делает лексему унарной, если до неё нет значения: начало потока
// или предыдущий токен не data-like (оператор, открывающий маркер, ',', ';', ':').
func (e *Engine) operator(tok token.Token) error {
	if !e.hasPrev || !e.prev.IsDataLike() {
		tok.Kind = token.UnaryOperator
		e.push(tok)
		return nil
	}
	tok.Kind = token.Operator
	cur, err := e.lookup(tok)
	if err != nil {
		return err
	}
	for len(e.ops) > 0 {
		top := e.ops[len(e.ops)-1]
		if !top.IsOperator() {
			break
		}
		t, err := e.lookup(top)
		if err != nil {
			return err
		}
		if (t.Assoc == optable.Right && t.Precedence <= cur.Precedence) ||
			(t.Assoc == optable.Left && t.Precedence < cur.Precedence) {
			break
		}
		e.emit(e.pop())
	}
	e.push(tok)
	return nil
}

func (e *Engine) parenOpen(tok token.Token) {
	isCall := e.hasPrev && e.prev.IsDataLike()
	e.push(tok)
	e.calls = append(e.calls, isCall)
	// счётчик только у вызова; запятая в группирующей скобке считается внешним счётчиком
	if isCall {
		e.arities = append(e.arities, 1)
	}
}

func (e *Engine) parenClose(tok token.Token) error {
	open, err := e.closeMarker(tok, token.ParenOpen)
	if err != nil {
		return err
	}
	isCall := e.calls[len(e.calls)-1]
	e.calls = e.calls[:len(e.calls)-1]
	if !isCall {
		return nil
	}
	arity := e.popArity()
	if e.prevIs(open) {
		arity = 0
	}
	e.emit(token.Synthetic(token.CallFunc, arity, tok))
	return nil
}

func (e *Engine) rangeClose(tok token.Token) error {
	open, err := e.closeMarker(tok, token.RangeOpen)
	if err != nil {
		return err
	}
	arity := e.popArity()
	if e.prevIs(open) {
		arity = 0
	}
	open.Raw += tok.Raw
	open.Kind = token.AssignRange
	open.Span = open.Span.Cover(tok.Span)
	e.emit(token.Synthetic(token.Atom, arity, tok))
	e.emit(open)
	return nil
}

func (e *Engine) blockSplit(tok token.Token) error {
	e.flushToMarker()
	if len(e.ops) == 0 || e.ops[len(e.ops)-1].Kind != token.BlockOpen {
		return errAt(diag.ErrUnexpected, diag.SynUnexpectedToken, tok, "':' outside of a block")
	}
	if e.splits[len(e.splits)-1] {
		return errAt(diag.ErrUnexpected, diag.SynUnexpectedToken, tok, "second ':' in the same block")
	}
	arity := e.popArity()
	if e.prevIs(e.ops[len(e.ops)-1]) {
		arity = 0
	}
	e.emit(token.Synthetic(token.Atom, arity, tok))
	e.emit(tok)
	e.splits[len(e.splits)-1] = true
	e.arities = append(e.arities, 1) // тело блока
	return nil
}

func (e *Engine) blockClose(tok token.Token) error {
	if _, err := e.closeMarker(tok, token.BlockOpen); err != nil {
		return err
	}
	e.popArity()
	e.splits = e.splits[:len(e.splits)-1]
	e.emit(tok)
	return nil
}

func (e *Engine) comma(tok token.Token) error {
	e.flushToMarker()
	if len(e.arities) == 0 {
		return errAt(diag.ErrUnexpected, diag.SynUnexpectedToken, tok, "',' outside of a call, range or block")
	}
	e.arities[len(e.arities)-1]++
	return nil
}

// closeMarker flushes operators down to the nearest open marker and pops it.
// The marker must be of kind want.
func (e *Engine) closeMarker(tok token.Token, want token.Kind) (token.Token, error) {
	e.flushToMarker()
	if len(e.ops) == 0 {
		return token.Token{}, errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, tok,
			fmt.Sprintf("%q has no matching %q", tok.Raw, openerOf(want)))
	}
	open := e.ops[len(e.ops)-1]
	if open.Kind != want {
		return token.Token{}, errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, tok,
			fmt.Sprintf("%q closes %q opened at %d:%d", tok.Raw, open.Raw, open.Line, open.Col))
	}
	e.pop()
	return open, nil
}

func (e *Engine) drain() error {
	e.done = true
	for len(e.ops) > 0 {
		top := e.pop()
		if top.IsOpenMarker() {
			return errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, top,
				fmt.Sprintf("unclosed %q", top.Raw))
		}
		e.emit(top)
	}
	return nil
}

func (e *Engine) flushToMarker() {
	for len(e.ops) > 0 && !e.ops[len(e.ops)-1].IsOpenMarker() {
		e.emit(e.pop())
	}
}

func (e *Engine) lookup(tok token.Token) (optable.Entry, error) {
	entry, err := e.table.Lookup(tok.Raw)
	if err != nil {
		var pe *diag.PosError
		if errors.As(err, &pe) {
			return entry, errAt(pe.Kind, pe.Code, tok, pe.Msg)
		}
		return entry, err
	}
	return entry, nil
}

// prevIs reports whether the previous significant token is exactly marker.
func (e *Engine) prevIs(marker token.Token) bool {
	return e.hasPrev && e.prev.Kind == marker.Kind && e.prev.Span == marker.Span
}

func (e *Engine) push(tok token.Token) { e.ops = append(e.ops, tok) }

func (e *Engine) pop() token.Token {
	tok := e.ops[len(e.ops)-1]
	e.ops = e.ops[:len(e.ops)-1]
	return tok
}

func (e *Engine) popArity() int {
	n := e.arities[len(e.arities)-1]
	e.arities = e.arities[:len(e.arities)-1]
	return n
}

func (e *Engine) emit(tok token.Token) { e.queue = append(e.queue, tok) }

func errAt(kind error, code diag.Code, tok token.Token, msg string) error {
	return diag.NewPosError(kind, code, tok.Span, tok.Line, tok.Col, msg)
}

func openerOf(k token.Kind) string {
	switch k {
	case token.ParenOpen:
		return "("
	case token.BlockOpen:
		return "{"
	default:
		return "["
	}
}
