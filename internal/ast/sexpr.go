package ast

import (
	"strings"

	"tidy/internal/token"
)

// Sexpr renders an element compactly: operators as op(a,b), prefix operators
// as unary-(a), calls as callee(args), ranges as [](a,b), blocks as
// block(params(...),body(...)).
func Sexpr(e Element) string {
	var b strings.Builder
	writeSexpr(&b, e)
	return b.String()
}

// SexprAll renders roots separated by "; ".
func SexprAll(roots []Element) string {
	parts := make([]string, len(roots))
	for i, r := range roots {
		parts[i] = Sexpr(r)
	}
	return strings.Join(parts, "; ")
}

func writeSexpr(b *strings.Builder, e Element) {
	switch v := e.(type) {
	case nil:
		b.WriteString("<nil>")
	case *Leaf:
		b.WriteString(v.Token.Raw)
	case *Node:
		switch v.Kind {
		case token.UnaryOperator:
			b.WriteString("unary")
			writeSexpr(b, v.Head)
		case token.BlockSplit:
			b.WriteString("params")
		case token.BlockClose:
			b.WriteString("body")
		case token.MakeBlock:
			b.WriteString("block")
		default:
			writeSexpr(b, v.Head)
		}
		b.WriteByte('(')
		for i, c := range v.Children {
			if i > 0 {
				b.WriteByte(',')
			}
			writeSexpr(b, c)
		}
		b.WriteByte(')')
	}
}
