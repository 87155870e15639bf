// Package ast builds the syntax tree from the engine's output sequence.
//
// The tree is made of two element types: *Leaf wraps a single token, *Node has
// a head element and ordered children. The head is a token leaf for operators,
// ranges and block parts, and the callee (leaf or node) for calls. Child count
// is fixed by the node kind:
//
//	UnaryOperator  1
//	Operator       2
//	AssignRange    n from the preceding count atom
//	BlockSplit     n from the preceding count atom (block parameters)
//	CallFunc       n from the call marker, head is the callee
//	BlockClose     any (block body statements)
//	MakeBlock      2: [params, body]
//
// Trees never share elements.
package ast
