package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tidy/internal/source"
	"tidy/internal/token"
)

type TokenOutput struct {
	Kind  string      `json:"kind"`
	Raw   string      `json:"raw,omitempty"`
	Span  source.Span `json:"span"`
	Line  uint32      `json:"line"`
	Col   uint32      `json:"col"`
	Count *int        `json:"count,omitempty"` // только atom и call_func
}

func tokenOutput(tok token.Token) TokenOutput {
	out := TokenOutput{Kind: tok.Kind.String(), Raw: tok.Raw, Span: tok.Span, Line: tok.Line, Col: tok.Col}
	if tok.Kind == token.Atom || tok.Kind == token.CallFunc {
		n := tok.Count
		out.Count = &n
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Raw != "" {
			fmt.Fprintf(w, " %q", tok.Raw)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		fmt.Fprintln(w)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// BuildTokensOutput переводит токены в JSON-вид; всё после EOF отбрасывается.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, tokenOutput(tok))
		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens))
}

// FormatItemsPretty печатает выходную последовательность движка, по одному
// элементу в строке: "kind raw" плюс счётчик для atom и call_func.
func FormatItemsPretty(w io.Writer, items []token.Token) error {
	for i, tok := range items {
		var err error
		switch tok.Kind {
		case token.Atom:
			_, err = fmt.Fprintf(w, "%3d: %-15s #%d\n", i+1, tok.Kind, tok.Count)
		case token.CallFunc:
			_, err = fmt.Fprintf(w, "%3d: %-15s /%d at %d:%d\n", i+1, tok.Kind, tok.Count, tok.Line, tok.Col)
		default:
			_, err = fmt.Fprintf(w, "%3d: %-15s %q at %d:%d\n", i+1, tok.Kind, tok.Raw, tok.Line, tok.Col)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatItemsJSON выводит выходную последовательность в JSON.
func FormatItemsJSON(w io.Writer, items []token.Token) error {
	output := make([]TokenOutput, 0, len(items))
	for _, tok := range items {
		output = append(output, tokenOutput(tok))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
