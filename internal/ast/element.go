package ast

import (
	"tidy/internal/source"
	"tidy/internal/token"
)

// Element is either a *Leaf or a *Node.
type Element interface {
	Span() source.Span
	element()
}

// Leaf is a token in the tree.
type Leaf struct {
	Token token.Token
}

// Node is an applied construct: operator, call, range, block or block part.
type Node struct {
	Kind     token.Kind // UnaryOperator, Operator, AssignRange, BlockSplit, BlockClose, CallFunc, MakeBlock
	Head     Element
	Children []Element
}

func (*Leaf) element() {}
func (*Node) element() {}

func (l *Leaf) Span() source.Span { return l.Token.Span }

// Span covers the head and every child of the same file.
func (n *Node) Span() source.Span {
	sp := n.Head.Span()
	for _, c := range n.Children {
		sp = sp.Cover(c.Span())
	}
	return sp
}

// HeadToken returns the head token when the head is a leaf.
func (n *Node) HeadToken() (token.Token, bool) {
	if l, ok := n.Head.(*Leaf); ok {
		return l.Token, true
	}
	return token.Token{}, false
}

// Params and Body return the two halves of a MakeBlock node.
func (n *Node) Params() *Node { return n.blockPart(0) }
func (n *Node) Body() *Node   { return n.blockPart(1) }

func (n *Node) blockPart(i int) *Node {
	if n.Kind != token.MakeBlock || len(n.Children) != 2 {
		return nil
	}
	part, _ := n.Children[i].(*Node)
	return part
}

// Walk visits e and its descendants depth-first, head before children.
// Returning false from fn skips the element's subtree.
func Walk(e Element, fn func(Element) bool) {
	if e == nil || !fn(e) {
		return
	}
	if n, ok := e.(*Node); ok {
		Walk(n.Head, fn)
		for _, c := range n.Children {
			Walk(c, fn)
		}
	}
}

// ExpectedChildren returns the fixed child count for kind, or -1 when the
// count is carried by the stream (ranges, splits, calls, block bodies).
func ExpectedChildren(kind token.Kind) int {
	switch kind {
	case token.UnaryOperator:
		return 1
	case token.Operator, token.MakeBlock:
		return 2
	default:
		return -1
	}
}
