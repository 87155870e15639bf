// Package parser glues the lexer, the shunting-yard engine and the tree
// builder into a single per-file entry point.
package parser

import (
	"context"
	"errors"
	"strconv"

	"tidy/internal/ast"
	"tidy/internal/diag"
	"tidy/internal/lexer"
	"tidy/internal/optable"
	"tidy/internal/shunt"
	"tidy/internal/source"
	"tidy/internal/token"
	"tidy/internal/trace"
)

type Options struct {
	Reporter diag.Reporter  // nil: диагностики лексера теряются
	Table    *optable.Table // nil: optable.Default()
}

// Result: итог разбора одного файла.
// Err is the first fatal error; Roots is nil whenever Err is set.
type Result struct {
	File   *source.File
	Roots  []ast.Element
	Err    error
	Tokens int // significant + trivia tokens pulled from the lexer
	Items  int // items produced by the engine
}

// OK reports whether the file parsed without a fatal error.
func (r Result) OK() bool { return r.Err == nil }

// ParseFile: входная точка для разбора одного файла.
// A fatal error is returned in Result.Err and also reported as an error
// diagnostic through opts.Reporter.
func ParseFile(ctx context.Context, file *source.File, opts Options) Result {
	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")
	res := Result{File: file}
	defer func() {
		span.WithExtra("tokens", strconv.Itoa(res.Tokens)).
			WithExtra("items", strconv.Itoa(res.Items)).
			WithExtra("roots", strconv.Itoa(len(res.Roots)))
		detail := ""
		if res.Err != nil {
			detail = res.Err.Error()
		}
		span.End(detail)
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter, Table: opts.Table})
	src := &countingLexer{lx: lx, ctx: ctx}
	eng := &countingEngine{eng: shunt.New(src, shunt.Options{Table: lx.Table()})}

	roots, err := ast.Build(eng)
	res.Tokens, res.Items = src.n, eng.n
	if cerr := ctx.Err(); cerr != nil {
		res.Err = cerr
		return res
	}
	if err != nil {
		res.Err = err
		report(opts.Reporter, err)
		return res
	}
	res.Roots = roots
	return res
}

// ParseSource разбирает строку как виртуальный файл.
func ParseSource(ctx context.Context, fs *source.FileSet, name, text string, opts Options) Result {
	file := fs.Get(fs.AddVirtual(name, []byte(text)))
	return ParseFile(ctx, file, opts)
}

func report(r diag.Reporter, err error) {
	if r == nil {
		return
	}
	var pe *diag.PosError
	if errors.As(err, &pe) {
		diag.ReportError(r, pe.Code, pe.Span, pe.Msg).Emit()
		return
	}
	diag.ReportError(r, diag.SynInternal, source.Span{}, err.Error()).Emit()
}

// countingLexer считает токены и обрывает поток при отмене контекста.
type countingLexer struct {
	lx  *lexer.Lexer
	ctx context.Context
	n   int
}

func (c *countingLexer) Next() token.Token {
	tok := c.lx.Next()
	if tok.Kind == token.EOF {
		return tok
	}
	c.n++
	if c.n%4096 == 0 && c.ctx.Err() != nil {
		// отмена: дальше EOF, движок закроет то, что успел
		return token.Token{Kind: token.EOF, Span: tok.Span, Line: tok.Line, Col: tok.Col}
	}
	return tok
}

type countingEngine struct {
	eng *shunt.Engine
	n   int
}

func (c *countingEngine) Next() (token.Token, error) {
	tok, err := c.eng.Next()
	if err == nil && tok.Kind != token.EOF {
		c.n++
	}
	return tok, err
}
