// Package metrics records what a generator run produced using Prometheus
// metrics.
//
// Each Collector owns a private registry, so a run never depends on (or
// pollutes) the process-wide default registry. A batch job has no scrape
// endpoint; metrics are exported once at the end of the run with
// WriteTextfile, for the node-exporter textfile collector.
//
// # Basic Usage
//
//	collector := metrics.NewCollector()
//	timer := metrics.NewTimer(metrics.StageRender)
//	out, err := f.Render(s)
//	collector.ObserveStage(timer)
//	collector.RecordSchema("openapi", metrics.StatusSuccess, len(out))
//	_ = collector.WriteTextfile("/var/lib/node_exporter/schemagen.prom")
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

// Outcome labels of SchemasGenerated
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Stage labels of StageDuration
const (
	StageLoad       = "load_connectors"
	StageResolve    = "resolve_format"
	StageSynthesize = "synthesize"
	StageRender     = "render"
	StageValidate   = "validate"
	StageWrite      = "write"
)

// Collector holds the metrics of one run. Safe for concurrent use.
type Collector struct {
	registry         *prometheus.Registry
	schemasGenerated *prometheus.CounterVec // Schemas per format and outcome
	bytesWritten     *prometheus.CounterVec // Rendered bytes per format
	stageDuration    *prometheus.HistogramVec
	startTime        time.Time
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		schemasGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemagen_schemas_generated_total",
				Help: "Total number of connector schemas generated",
			},
			[]string{"format", "status"},
		),
		bytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "schemagen_bytes_written_total",
				Help: "Total number of rendered schema bytes",
			},
			[]string{"format"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "schemagen_stage_duration_seconds",
				Help: "Duration of generator stages in seconds",
				Buckets: []float64{
					0.0001, // 100μs - synthesis of small connectors
					0.001,  // 1ms
					0.01,   // 10ms - rendering, local writes
					0.1,    // 100ms
					1,      // 1s - slow disks, large runs
				},
			},
			[]string{"stage"},
		),
		startTime: time.Now(),
	}
}

// Registry exposes the collector's registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// StartTime returns when the collector was created
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// RecordSchema counts one generated schema and the bytes it produced
func (c *Collector) RecordSchema(format, status string, bytes int) {
	c.schemasGenerated.WithLabelValues(format, status).Inc()
	if bytes > 0 {
		c.bytesWritten.WithLabelValues(format).Add(float64(bytes))
	}
}

// ObserveStage records the time elapsed on timer under its stage name
func (c *Collector) ObserveStage(t *Timer) time.Duration {
	d := t.Stop()
	c.stageDuration.WithLabelValues(t.name).Observe(d.Seconds())
	return d
}

// WriteTextfile writes all metrics to path in the Prometheus text format
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write metrics textfile").
			WithDetail("path", path)
	}
	return nil
}

// Timer provides a simple timing mechanism for measuring operation durations.
// It captures the start time on creation and calculates elapsed time on stop.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop returns the elapsed duration since creation. The timer can be stopped
// multiple times.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// Name returns the timer's stage name
func (t *Timer) Name() string {
	return t.name
}
