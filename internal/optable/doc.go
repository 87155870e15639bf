// Package optable holds the operator table: lexeme -> (precedence, associativity).
//
// A Table is immutable once built. Default() is constructed on first use and
// shared by every lexer and engine; tidy.toml overrides go through Extend, which
// returns a new Table. Higher precedence binds tighter.
package optable
