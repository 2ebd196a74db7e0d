// Package observability wraps generator stages in OpenTelemetry spans.
//
// Spans go to the global tracer provider. Until InitTracing installs an
// exporting provider they are no-ops.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName names the tracer of this module
const instrumentationName = "github.com/ajitpratap0/nebula-schemagen"

// Tracer returns the tracer used for generator spans
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// Span is a tracing span that batches its attributes until End
type Span struct {
	span       trace.Span
	attributes []attribute.KeyValue
}

// NewSpan starts a span named operationName
func NewSpan(ctx context.Context, operationName string) (context.Context, *Span) {
	ctx, span := Tracer().Start(ctx, operationName)
	return ctx, &Span{span: span}
}

// SetAttribute adds an attribute to the span
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// Finish records the outcome of the traced work
func (s *Span) Finish(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		return
	}
	s.span.SetStatus(codes.Ok, "")
}

// End ends the span
func (s *Span) End() {
	if len(s.attributes) > 0 {
		s.span.SetAttributes(s.attributes...)
	}
	s.span.End()
}

// Trace runs fn inside a span named after stage. attrs are set on the span;
// the error returned by fn decides the span status and is passed through.
func Trace(ctx context.Context, stage string, attrs map[string]interface{}, fn func(ctx context.Context) error) error {
	ctx, span := NewSpan(ctx, "schemagen."+stage)
	defer span.End()

	for k, v := range attrs {
		span.SetAttribute(k, v)
	}

	err := fn(ctx)
	span.Finish(err)
	return err
}
