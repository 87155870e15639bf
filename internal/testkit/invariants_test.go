package testkit

import (
	"context"
	"strings"
	"testing"

	"tidy/internal/ast"
	"tidy/internal/lexer"
	"tidy/internal/parser"
	"tidy/internal/source"
	"tidy/internal/token"
)

var samples = []string{
	"",
	"x := f(1, 2) + [0, n[",
	"{a, b: a * b}(3, 4)",
	"# comment\n-3 ^ 2 ^ 2; \"str\"\"ing\" ≠ 'c",
	"r`[a-z]+` ∞ 1.5e-3f",
	"### block\ncomment ###\n  (+) ⊕ x",
}

func TestInvariantsOnSamples(t *testing.T) {
	for _, src := range samples {
		t.Run(src, func(t *testing.T) {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("s.td", []byte(src)))

			toks := lexer.All(file, lexer.Options{})
			if err := CheckTokenCoverage(file, toks); err != nil {
				t.Errorf("coverage: %v", err)
			}
			if err := CheckTokenPositions(file, toks); err != nil {
				t.Errorf("positions: %v", err)
			}

			res := parser.ParseFile(context.Background(), file, parser.Options{})
			if !res.OK() {
				t.Fatalf("parse: %v", res.Err)
			}
			if err := CheckTreeShape(res.Roots); err != nil {
				t.Errorf("shape: %v", err)
			}
			if err := CheckTreeSpans(file, res.Roots); err != nil {
				t.Errorf("spans: %v", err)
			}
		})
	}
}

func TestCoverageDetectsGap(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("g.td", []byte("ab cd")))
	toks := []token.Token{
		{Kind: token.Word, Raw: "ab", Span: source.Span{File: file.ID, Start: 0, End: 2}},
		{Kind: token.Word, Raw: "cd", Span: source.Span{File: file.ID, Start: 3, End: 5}},
	}
	err := CheckTokenCoverage(file, toks)
	if err == nil || !strings.Contains(err.Error(), "gap") {
		t.Errorf("expected gap error, got %v", err)
	}
}

func TestCoverageDetectsShortStream(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("s.td", []byte("ab")))
	toks := []token.Token{{Kind: token.Word, Raw: "a", Span: source.Span{File: file.ID, Start: 0, End: 1}}}
	if err := CheckTokenCoverage(file, toks); err == nil {
		t.Error("expected error for uncovered tail")
	}
}

func TestPositionsDetectMismatch(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("p.td", []byte("a\nb")))
	toks := []token.Token{{Kind: token.Word, Raw: "b", Span: source.Span{File: file.ID, Start: 2, End: 3}, Line: 1, Col: 3}}
	if err := CheckTokenPositions(file, toks); err == nil {
		t.Error("expected position mismatch")
	}
}

func TestTreeShapeRejectsBadNodes(t *testing.T) {
	leaf := func(kind token.Kind, raw string) *ast.Leaf { return &ast.Leaf{Token: token.Token{Kind: kind, Raw: raw}} }
	tests := []struct {
		name string
		root ast.Element
	}{
		{"binary with one child", &ast.Node{Kind: token.Operator, Head: leaf(token.Operator, "+"), Children: []ast.Element{leaf(token.Word, "a")}}},
		{"delimiter leaf", &ast.Node{Kind: token.UnaryOperator, Head: leaf(token.Operator, "-"), Children: []ast.Element{leaf(token.Comma, ",")}}},
		{"block without halves", &ast.Node{Kind: token.MakeBlock, Head: leaf(token.BlockOpen, "{}"), Children: []ast.Element{leaf(token.Word, "a"), leaf(token.Word, "b")}}},
		{"headless node", &ast.Node{Kind: token.AssignRange}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckTreeShape([]ast.Element{tt.root}); err == nil {
				t.Error("expected shape error")
			}
		})
	}
}
