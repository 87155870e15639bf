// Package diag defines the diagnostic model shared by the lexer, the
// shunting-yard engine and the AST builder.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go).
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – short, actionable text.
//   - Primary – the source.Span pointing at the issue.
//   - Notes – optional secondary spans/messages.
//   - Fixes – optional text edits (e.g. the missing closing quote).
//
// # Recoverable vs fatal
//
// The lexer never stops: unknown characters and unterminated literals go to a
// Reporter and scanning continues. Structural problems found by the engine or
// the AST builder abort the parse with a *PosError whose Kind is one of the
// Err* sentinels, so callers can use errors.Is / errors.As. The pipeline
// converts such an error into an error Diagnostic as well.
//
// # Emitting diagnostics
//
// Phases use a Reporter to decouple emission from storage. ReportBuilder
// (ReportError/ReportWarning) chains WithNote/WithFix before Emit. BagReporter
// aggregates into a Bag, which supports a limit, sorting and deduplication.
//
// Rendering lives in internal/diagfmt; this package does no formatting beyond
// the one-line short form used in golden tests.
package diag
