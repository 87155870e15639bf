// Package trace provides a tracing subsystem for the tidy toolchain.
//
// The trace package records pipeline phases (lexing, shunting, tree building)
// and per-file work to help diagnose slow inputs and stuck runs.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	tidy parse --trace=- --trace-level=phase prog.td
//
// # Architecture
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped on failure
//   - MultiTracer: combines several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring only, dumped when a command fails
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "shunt")
//	defer span.End("")
//
// Directory mode tags each worker context with trace.WithFile; every event
// under it carries Event.File, and a failed run dumps the ring grouped by
// the files that failed (RingTracer.DumpFiles).
package trace
