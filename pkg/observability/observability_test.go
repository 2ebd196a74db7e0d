package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return recorder
}

func TestTraceSuccess(t *testing.T) {
	recorder := withRecorder(t)

	err := Trace(context.Background(), "render", map[string]interface{}{
		"connector": "postgresql",
		"bytes":     42,
		"validated": true,
	}, func(ctx context.Context) error { return nil })
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "schemagen.render", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("connector", "postgresql"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("bytes", 42))
	assert.Contains(t, spans[0].Attributes(), attribute.Bool("validated", true))
}

func TestTraceFailure(t *testing.T) {
	recorder := withRecorder(t)
	boom := errors.New("disk full")

	err := Trace(context.Background(), "write", nil, func(ctx context.Context) error { return boom })
	assert.Same(t, boom, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "disk full", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}

func TestTraceNestsSpans(t *testing.T) {
	recorder := withRecorder(t)

	err := Trace(context.Background(), "run", nil, func(ctx context.Context) error {
		return Trace(ctx, "synthesize", nil, func(context.Context) error { return nil })
	})
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	child, parent := spans[0], spans[1]
	assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
}

func TestSetAttributeFallsBackToString(t *testing.T) {
	recorder := withRecorder(t)

	_, span := NewSpan(context.Background(), "op")
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("count", int64(3))
	span.SetAttribute("other", []int{1})
	span.End()

	attrs := recorder.Ended()[0].Attributes()
	assert.Contains(t, attrs, attribute.Float64("ratio", 0.5))
	assert.Contains(t, attrs, attribute.Int64("count", 3))
	assert.Contains(t, attrs, attribute.String("other", "[1]"))
}

func TestInitTracingDisabled(t *testing.T) {
	shutdown, err := InitTracing(DefaultTracingConfig())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracingExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultTracingConfig()
	cfg.Enabled = true
	cfg.Writer = &buf

	shutdown, err := InitTracing(cfg)
	require.NoError(t, err)

	require.NoError(t, Trace(context.Background(), "resolve_format", nil, func(context.Context) error { return nil }))
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "schemagen.resolve_format")
	assert.Contains(t, buf.String(), "schemagen")
}
