package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"tidy/internal/lexer"
	"tidy/internal/shunt"
	"tidy/internal/source"
	"tidy/internal/token"
)

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.td", []byte("x+1")))
	toks := append(lexer.All(file, lexer.Options{}), token.Token{Kind: token.EOF})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if want := `  1: word            "x" at 1:1-1:2`; lines[0] != want {
		t.Errorf("line 0 = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[3], "eof") {
		t.Errorf("last line = %q", lines[3])
	}
}

func TestFormatTokensJSONStopsAtEOF(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Word, Raw: "a", Line: 1, Col: 1},
		{Kind: token.EOF},
		{Kind: token.Word, Raw: "never"},
	}
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Kind != "eof" {
		t.Errorf("output = %+v", out)
	}
	if out[0].Count != nil {
		t.Errorf("word must not carry a count")
	}
}

func TestFormatItems(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("i.td", []byte("f(a, b)")))
	lx := lexer.New(file, lexer.Options{})
	items, err := shunt.Collect(lx, shunt.Options{Table: lx.Table()})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatItemsPretty(&buf, items); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "call_func       /2") {
		t.Errorf("missing call arity:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatItemsJSON(&buf, items); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	last := out[len(out)-1]
	if last.Kind != "call_func" || last.Count == nil || *last.Count != 2 {
		t.Errorf("last item = %+v", last)
	}
}
