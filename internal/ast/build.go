package ast

import (
	"fmt"
	"slices"

	"tidy/internal/diag"
	"tidy/internal/token"
)

// OutputSource yields the engine's output sequence; EOF kind ends it.
type OutputSource interface {
	Next() (token.Token, error)
}

// Builder turns output items into tree elements with an operand stack.
type Builder struct {
	stack []Element
}

// Build drains src and returns the top-level roots in source order.
func Build(src OutputSource) ([]Element, error) {
	var b Builder
	for {
		tok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == token.EOF {
			return b.Finish()
		}
		if err := b.Push(tok); err != nil {
			return nil, err
		}
	}
}

// Push consumes one output item.
func (b *Builder) Push(tok token.Token) error {
	switch tok.Kind {
	case token.Number, token.Atom, token.Word, token.Infinity, token.OpQuote,
		token.String, token.Character, token.PatternString, token.BlockOpen:
		b.stack = append(b.stack, &Leaf{Token: tok})
		return nil
	case token.Operator, token.UnaryOperator:
		return b.apply(tok, ExpectedChildren(tok.Kind))
	case token.AssignRange, token.BlockSplit:
		n, err := b.popCount(tok)
		if err != nil {
			return err
		}
		return b.apply(tok, n)
	case token.CallFunc:
		args, err := b.popOperands(tok, tok.Count)
		if err != nil {
			return err
		}
		callee, err := b.popOperands(tok, 1)
		if err != nil {
			return err
		}
		b.stack = append(b.stack, &Node{Kind: token.CallFunc, Head: callee[0], Children: args})
		return nil
	case token.BlockClose:
		return b.closeBlock(tok)
	default:
		return errAt(diag.ErrInternal, diag.SynInternal, tok,
			fmt.Sprintf("token kind %s cannot appear in the output sequence", tok.Kind))
	}
}

// Finish returns the roots; an open block left on the stack is an error.
func (b *Builder) Finish() ([]Element, error) {
	for _, el := range b.stack {
		if isMarker(el) {
			return nil, errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, markerToken(el), "block is never closed")
		}
	}
	roots := slices.Clone(b.stack)
	b.stack = b.stack[:0]
	return roots, nil
}

func (b *Builder) apply(tok token.Token, n int) error {
	children, err := b.popOperands(tok, n)
	if err != nil {
		return err
	}
	b.stack = append(b.stack, &Node{Kind: tok.Kind, Head: &Leaf{Token: tok}, Children: children})
	return nil
}

// popCount pops the count atom that precedes ranges and block splits.
func (b *Builder) popCount(tok token.Token) (int, error) {
	if len(b.stack) > 0 {
		if l, ok := b.stack[len(b.stack)-1].(*Leaf); ok && l.Token.Kind == token.Atom {
			b.stack = b.stack[:len(b.stack)-1]
			return l.Token.Count, nil
		}
	}
	return 0, errAt(diag.ErrArity, diag.SynArityMismatch, tok,
		fmt.Sprintf("%s %q is not preceded by a count", tok.Kind, tok.Raw))
}

// popOperands pops n operands in stack order; block markers are never operands.
func (b *Builder) popOperands(tok token.Token, n int) ([]Element, error) {
	if n < 0 {
		return nil, errAt(diag.ErrInternal, diag.SynInternal, tok, fmt.Sprintf("negative operand count %d", n))
	}
	if n > len(b.stack) {
		return nil, b.missing(tok, n, len(b.stack))
	}
	start := len(b.stack) - n
	for i := start; i < len(b.stack); i++ {
		if isMarker(b.stack[i]) {
			return nil, b.missing(tok, n, len(b.stack)-1-i)
		}
	}
	out := slices.Clone(b.stack[start:])
	b.stack = b.stack[:start]
	return out, nil
}

func (b *Builder) missing(tok token.Token, want, have int) error {
	what := tok.Raw
	if tok.Kind == token.CallFunc {
		what = "call"
	}
	return errAt(diag.ErrArity, diag.SynArityMismatch, tok,
		fmt.Sprintf("%s %q needs %d operand(s), only %d available", tok.Kind, what, want, have))
}

// closeBlock collects the body down to the split node (or the '{' marker when
// the block has no ':') and builds a MakeBlock node [params, body].
func (b *Builder) closeBlock(tok token.Token) error {
	i := len(b.stack) - 1
	for ; i >= 0; i-- {
		if isMarker(b.stack[i]) {
			break
		}
	}
	if i < 0 {
		return errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, tok, "'}' without a matching '{'")
	}

	body := slices.Clone(b.stack[i+1:])
	var params *Node
	openAt := i
	if split, ok := b.stack[i].(*Node); ok {
		params = split
		openAt = i - 1
		if openAt < 0 || !isOpenLeaf(b.stack[openAt]) {
			return errAt(diag.ErrUnbalanced, diag.SynUnbalancedDelimiter, tok, "block parameters without a '{'")
		}
	}
	open := b.stack[openAt].(*Leaf).Token
	if params == nil {
		split := token.Synthetic(token.BlockSplit, 0, open)
		params = &Node{Kind: token.BlockSplit, Head: &Leaf{Token: split}}
	}
	b.stack = b.stack[:openAt]

	head := token.Token{
		Kind: token.MakeBlock,
		Raw:  open.Raw + tok.Raw,
		Span: open.Span.Cover(tok.Span),
		Line: open.Line,
		Col:  open.Col,
	}
	bodyNode := &Node{Kind: token.BlockClose, Head: &Leaf{Token: tok}, Children: body}
	b.stack = append(b.stack, &Node{
		Kind:     token.MakeBlock,
		Head:     &Leaf{Token: head},
		Children: []Element{params, bodyNode},
	})
	return nil
}

// isMarker: '{' leaf or an unfinished BlockSplit node still waiting for '}'.
func isMarker(el Element) bool {
	switch v := el.(type) {
	case *Leaf:
		return v.Token.Kind == token.BlockOpen
	case *Node:
		return v.Kind == token.BlockSplit
	}
	return false
}

func isOpenLeaf(el Element) bool {
	l, ok := el.(*Leaf)
	return ok && l.Token.Kind == token.BlockOpen
}

func markerToken(el Element) token.Token {
	switch v := el.(type) {
	case *Leaf:
		return v.Token
	case *Node:
		tok, _ := v.HeadToken()
		return tok
	}
	return token.Token{}
}

func errAt(kind error, code diag.Code, tok token.Token, msg string) error {
	return diag.NewPosError(kind, code, tok.Span, tok.Line, tok.Col, msg)
}
