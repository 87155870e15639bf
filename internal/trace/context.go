package trace

import "context"

type (
	tracerKey struct{}
	spanKey   struct{}
)

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx; a nil tracer is stored as Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext - то, что вложенная работа наследует от объемлющего спана:
// родителя и файл, к которому относятся события.
type SpanContext struct {
	SpanID uint64
	GID    uint64
	File   string
}

// CurrentSpan returns the span context stored in ctx (zero if none).
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(SpanContext)
	return sc
}

// WithSpanContext attaches sc to ctx.
func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		return nil
	}
	return context.WithValue(ctx, spanKey{}, sc)
}

// WithFile помечает ctx путём обрабатываемого .td файла. Спаны и точки,
// начатые под ним, несут этот путь в Event.File; родитель сохраняется.
func WithFile(ctx context.Context, path string) context.Context {
	if ctx == nil {
		return nil
	}
	sc := CurrentSpan(ctx)
	sc.File = path
	return WithSpanContext(ctx, sc)
}

// FileOf returns the file path ctx was tagged with by WithFile.
func FileOf(ctx context.Context) string {
	return CurrentSpan(ctx).File
}
