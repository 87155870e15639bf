// Package shunt implements the shunting-yard engine: it pulls tokens from a
// lexer and produces the output sequence consumed by the AST builder.
//
// Besides the operator stack the engine keeps one arity counter per open
// marker, a call flag per '(' and a "split seen" flag per '{'. The previous
// significant token drives every context decision:
//
//   - an operator after nothing or after a non data-like token is unary;
//   - a '(' after a data-like token opens a call;
//   - two data tokens in a row end the statement (operators are flushed down
//     to the nearest open marker), so one input may hold several roots.
//
// Binary operators pop the stack while the top is an operator and neither
// (top is right-assoc and top.prec <= cur.prec) nor (top is left-assoc and
// top.prec < cur.prec) holds. The decision is keyed on the stack top's
// associativity; unary operators are pushed without popping.
package shunt
