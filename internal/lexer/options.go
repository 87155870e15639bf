package lexer

import (
	"tidy/internal/diag"
	"tidy/internal/optable"
	"tidy/internal/source"
)

type Options struct {
	Reporter diag.Reporter  // может быть nil: тогда ошибки игнорируем (но продолжаем лексить)
	Table    *optable.Table // nil: optable.Default()
}

func (lx *Lexer) warn(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportWarning(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	if lx.opts.Reporter == nil {
		return nil
	}
	return diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
