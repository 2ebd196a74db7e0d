package observability

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

// TracingConfig contains tracing configuration
type TracingConfig struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	// Writer receives exported spans; nil means stderr
	Writer io.Writer
}

// DefaultTracingConfig returns tracing disabled, exporting to stderr when
// switched on.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "schemagen",
		ServiceVersion: "1.0.0",
	}
}

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(ctx context.Context) error

// InitTracing installs the global tracer provider. Spans are exported
// synchronously as they end, which suits a process that exits right after its
// last span. When tracing is disabled the global no-op provider stays in place.
func InitTracing(config TracingConfig) (ShutdownFunc, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(config.ServiceName),
			semconv.ServiceVersionKey.String(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create trace resource")
	}

	w := config.Writer
	if w == nil {
		w = os.Stderr
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to create stdout exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		if err := tp.Shutdown(ctx); err != nil {
			return errors.Wrap(err, errors.ErrorTypeInternal, "failed to shutdown tracer")
		}
		return nil
	}, nil
}
