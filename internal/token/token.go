package token

import (
	"fmt"
	"strconv"

	"tidy/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind        `json:"kind" msgpack:"k"`
	Raw  string      `json:"raw" msgpack:"r"`
	Span source.Span `json:"span" msgpack:"s"`
	Line uint32      `json:"line" msgpack:"l"`
	Col  uint32      `json:"col" msgpack:"c"`
	// Count is the payload of synthetic Atom and CallFunc tokens.
	Count int `json:"count,omitempty" msgpack:"n,omitempty"`
}

func (t Token) IsData() bool        { return t.Kind.IsData() }
func (t Token) IsDataLike() bool    { return t.Kind.IsDataLike() }
func (t Token) IsOperator() bool    { return t.Kind.IsOperator() }
func (t Token) IsSignificant() bool { return t.Kind.IsSignificant() }
func (t Token) IsOpenMarker() bool  { return t.Kind.IsOpenMarker() }

// Synthetic builds an engine-made token positioned at anchor.
func Synthetic(kind Kind, count int, anchor Token) Token {
	raw := ""
	if kind == Atom {
		raw = strconv.Itoa(count)
	}
	return Token{
		Kind:  kind,
		Raw:   raw,
		Span:  source.Span{File: anchor.Span.File, Start: anchor.Span.Start, End: anchor.Span.Start},
		Line:  anchor.Line,
		Col:   anchor.Col,
		Count: count,
	}
}

func (t Token) String() string {
	switch t.Kind {
	case Atom, CallFunc:
		return fmt.Sprintf("%s(%d)@%d:%d", t.Kind, t.Count, t.Line, t.Col)
	default:
		return fmt.Sprintf("%s %q@%d:%d", t.Kind, t.Raw, t.Line, t.Col)
	}
}
