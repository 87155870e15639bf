// Package token defines the lexical token kinds of the tidy language.
// Invariants:
//   - Token.Raw is the exact source text matched by the lexer; concatenating
//     Raw of every lexer token reproduces the input.
//   - Token.Span covers Raw exactly (Start..End, bytes).
//   - Line and Col are 1-based, Col counts runes.
//   - Atom and CallFunc are synthetic: they never come from the lexer and carry
//     their payload in Count.
//   - The only in-place amendment is RangeOpen -> AssignRange when the engine
//     sees the matching close.
package token
