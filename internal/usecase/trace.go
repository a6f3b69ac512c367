package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var scoreEntryTracer = otel.Tracer("pick-grader/internal/usecase")

// startUsecaseSpan continues a trace begun at the HTTP edge. Untraced callers such as
// tests get the no-op span already carried by ctx.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return scoreEntryTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func recordSpanError(span trace.Span, err error, status string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, status)
}
