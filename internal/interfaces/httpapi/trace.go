package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	httpTracer   = otel.Tracer("pick-grader/internal/interfaces/httpapi")
	untracedSpan = trace.SpanFromContext(context.Background())
)

// startSpan opens a child of the otelhttp request span for handler names only. Middleware,
// response helpers and requests excluded from tracing (/healthz, /metrics) get a no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !isHandlerSpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, untracedSpan
	}
	return httpTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
