package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelInfo, &buf)

	logger.Debug("hidden")
	logger.Info("scores submitted", "team", "Hawks", "picks", 3, "error", errors.New("boom"), "dangling")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "scores submitted", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, "Hawks", line["team"])
	assert.EqualValues(t, 3, line["picks"])
	assert.Equal(t, "boom", line["error"])
	assert.Contains(t, line, "dangling")
}

func TestLoggerAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.WarnContext(ctx, "lock busy")

	var line map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "0102030405060708090a0b0c0d0e0f10", line["trace_id"])
	assert.Equal(t, "0102030405060708", line["span_id"])
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("noop")
		logger.With("k", "v").Error("noop")
	})
}
