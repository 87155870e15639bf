package diag

import (
	"errors"
	"fmt"

	"tidy/internal/source"
)

// Sentinel kinds for fatal parse errors; match them with errors.Is.
var (
	ErrUnbalanced      = errors.New("unbalanced delimiter")
	ErrArity           = errors.New("operand count mismatch")
	ErrUnexpected      = errors.New("unexpected token")
	ErrUnknownOperator = errors.New("unknown operator")
	ErrInternal        = errors.New("internal parser error")
)

// PosError is a fatal error tied to a source position.
// Line == 0 means the error has no position (e.g. a table lookup).
type PosError struct {
	Code Code
	Kind error
	Span source.Span
	Line uint32
	Col  uint32
	Msg  string
}

// NewPosError builds a PosError; kind should be one of the Err* sentinels.
func NewPosError(kind error, code Code, span source.Span, line, col uint32, msg string) *PosError {
	return &PosError{Code: code, Kind: kind, Span: span, Line: line, Col: col, Msg: msg}
}

func (e *PosError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Code.ID(), e.Msg)
}

func (e *PosError) Unwrap() error { return e.Kind }

// Diagnostic converts the error into an error-severity diagnostic.
func (e *PosError) Diagnostic() Diagnostic {
	return NewError(e.Code, e.Span, e.Msg)
}

// AsDiagnostic unwraps err into a Diagnostic when it carries a PosError.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var pe *PosError
	if errors.As(err, &pe) {
		return pe.Diagnostic(), true
	}
	return Diagnostic{}, false
}
