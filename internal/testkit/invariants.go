// Package testkit holds invariant checks shared by package tests and fuzz
// harnesses: lexer coverage, token positions and tree shape.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tidy/internal/ast"
	"tidy/internal/source"
	"tidy/internal/token"
)

// CheckTokenCoverage verifies that the token stream (trivia included, EOF
// excluded) tiles the file: spans are contiguous from 0 to len(content) and
// every Raw equals the bytes under its span.
func CheckTokenCoverage(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var next uint32
	for i, tok := range toks {
		if tok.Kind == token.EOF {
			return fmt.Errorf("token %d: EOF inside stream", i)
		}
		sp := tok.Span
		if sp.File != sf.ID {
			return fmt.Errorf("token %d %v: file mismatch: got=%d want=%d", i, tok, sp.File, sf.ID)
		}
		if sp.Start != next {
			return fmt.Errorf("token %d %v: gap or overlap at %d (expected start %d)", i, tok, sp.Start, next)
		}
		if sp.End <= sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d %v: bad span %v", i, tok, sp)
		}
		if raw := string(sf.Content[sp.Start:sp.End]); raw != tok.Raw {
			return fmt.Errorf("token %d: raw %q differs from source %q", i, tok.Raw, raw)
		}
		next = sp.End
	}
	if next != lenContent {
		return fmt.Errorf("tokens stop at %d, content has %d bytes", next, lenContent)
	}
	return nil
}

// CheckTokenPositions сверяет Line/Col каждого токена с позицией начала спана.
func CheckTokenPositions(sf *source.File, toks []token.Token) error {
	for i, tok := range toks {
		pos := sf.Position(tok.Span.Start)
		if pos.Line != tok.Line || pos.Col != tok.Col {
			return fmt.Errorf("token %d %v: at %d:%d, span says %d:%d", i, tok, tok.Line, tok.Col, pos.Line, pos.Col)
		}
	}
	return nil
}

// CheckTreeShape checks the structural rules of built trees:
// fixed child counts, block halves, and no delimiter leaves.
func CheckTreeShape(roots []ast.Element) error {
	var bad error
	for _, root := range roots {
		ast.Walk(root, func(e ast.Element) bool {
			if bad != nil {
				return false
			}
			bad = checkElement(e)
			return bad == nil
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}

func checkElement(e ast.Element) error {
	switch v := e.(type) {
	case *ast.Leaf:
		switch v.Token.Kind {
		case token.ParenOpen, token.ParenClose, token.RangeOpen, token.RangeClose,
			token.BlockOpen, token.Comma, token.Separator, token.Blank, token.Comment, token.EOF:
			return fmt.Errorf("delimiter leaf %v in tree", v.Token)
		}
	case *ast.Node:
		if v.Head == nil {
			return fmt.Errorf("%s node without head", v.Kind)
		}
		if want := ast.ExpectedChildren(v.Kind); want >= 0 && len(v.Children) != want {
			return fmt.Errorf("%s node at %v has %d children, want %d", v.Kind, v.Span(), len(v.Children), want)
		}
		if v.Kind == token.MakeBlock && (v.Params() == nil || v.Body() == nil ||
			v.Params().Kind != token.BlockSplit || v.Body().Kind != token.BlockClose) {
			return fmt.Errorf("block at %v lacks params/body halves", v.Span())
		}
	case nil:
		return fmt.Errorf("nil element in tree")
	}
	return nil
}

// CheckTreeSpans verifies that every element lies inside the file and that
// roots appear in source order without overlapping.
func CheckTreeSpans(sf *source.File, roots []ast.Element) error {
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var bad error
	var prevEnd uint32
	for i, root := range roots {
		sp := root.Span()
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("root %d span %v overlaps previous root ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
		ast.Walk(root, func(e ast.Element) bool {
			esp := e.Span()
			if bad == nil && (esp.File != sf.ID || esp.End > lenContent || esp.Start > esp.End) {
				bad = fmt.Errorf("element span %v outside file %d (%d bytes)", esp, sf.ID, lenContent)
			}
			return bad == nil
		})
		if bad != nil {
			return bad
		}
	}
	return nil
}
