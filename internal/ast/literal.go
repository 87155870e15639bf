package ast

import (
	"strings"

	"tidy/internal/optable"
	"tidy/internal/token"
)

// RangeBounds reads bound exclusivity from an AssignRange node: the raw text
// is the opening bracket followed by the closing one, "[]" is inclusive,
// "]0,1[" (raw "][") excludes both ends.
func RangeBounds(n *Node) (excludeLower, excludeUpper, ok bool) {
	tok, isLeaf := n.HeadToken()
	if n.Kind != token.AssignRange || !isLeaf || len(tok.Raw) != 2 {
		return false, false, false
	}
	return tok.Raw[0] == ']', tok.Raw[1] == '[', true
}

// QuotedOperator returns the operators an OpQuote token stands for:
// "(+)" -> [+], "( < > )" -> [< >], "⊕" -> [+].
func QuotedOperator(tok token.Token, table *optable.Table) ([]string, bool) {
	if tok.Kind != token.OpQuote {
		return nil, false
	}
	if table == nil {
		table = optable.Default()
	}
	if op, ok := table.Special(tok.Raw); ok {
		return []string{op}, true
	}
	inner, ok := strings.CutPrefix(tok.Raw, "(")
	if !ok {
		return nil, false
	}
	if inner, ok = strings.CutSuffix(inner, ")"); !ok {
		return nil, false
	}

	src := []byte(inner)
	var ops []string
	for off := 0; off < len(src); {
		if src[off] == ' ' || src[off] == '\t' || src[off] == '\n' || src[off] == '\r' {
			off++
			continue
		}
		lex, ok := table.MatchAt(src, off)
		if !ok {
			return nil, false
		}
		ops = append(ops, lex)
		off += len(lex)
	}
	return ops, len(ops) > 0
}
