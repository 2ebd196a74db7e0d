// Package generator runs one schema generation: it loads every registered
// connector, resolves the requested schema format and writes one schema
// document per connector.
//
// A run moves through
//
//	START -> LOAD_CONNECTORS -> RESOLVE_FORMAT -> [SYNTHESIZE -> RENDER -> (VALIDATE) -> WRITE]* -> DONE
//
// and ends in FAILED on the first error. Every output path is computed and
// checked for collisions before anything is written.
package generator

import (
	"context"
	"iter"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/nebula-schemagen/pkg/artifact"
	"github.com/ajitpratap0/nebula-schemagen/pkg/config"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/metrics"
	"github.com/ajitpratap0/nebula-schemagen/pkg/observability"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

// State is a step of a generation run
type State string

const (
	StateStart          State = "START"
	StateLoadConnectors State = "LOAD_CONNECTORS"
	StateResolveFormat  State = "RESOLVE_FORMAT"
	StateSynthesize     State = "SYNTHESIZE"
	StateRender         State = "RENDER"
	StateValidate       State = "VALIDATE"
	StateWrite          State = "WRITE"
	StateDone           State = "DONE"
	StateFailed         State = "FAILED"
)

// Discoverer enumerates connector providers and schema formats
type Discoverer interface {
	DiscoverConnectorProviders() iter.Seq[metadata.Provider]
	DiscoverSchemaFormats() iter.Seq[format.Format]
}

// Options tune a run without changing its output
type Options struct {
	// Workers above 1 generate connectors concurrently
	Workers int
	// Validate checks rendered documents with formats that support it
	Validate bool
	// DryRun renders everything but writes nothing
	DryRun bool
}

// Report summarizes a successful run
type Report struct {
	Format   string
	Outputs  []artifact.Output
	Bytes    int64
	Duration time.Duration
}

// Generator runs schema generation. A Generator is meant for a single Run.
type Generator struct {
	cfg       config.GeneratorConfig
	opts      Options
	discovery Discoverer
	naming    artifact.Naming
	writer    *artifact.Writer
	metrics   *metrics.Collector
	logger    *zap.Logger

	mu      sync.Mutex
	state   State
	history []State
}

// New creates a generator for cfg. collector may be nil.
func New(cfg config.GeneratorConfig, opts Options, discovery Discoverer, collector *metrics.Collector, logger *zap.Logger) *Generator {
	if collector == nil {
		collector = metrics.NewCollector()
	}
	logger = logger.With(zap.String("component", "generator"))

	return &Generator{
		cfg:       cfg,
		opts:      opts,
		discovery: discovery,
		naming: artifact.Naming{
			BaseDir:           cfg.OutputDir,
			GroupPerConnector: cfg.GroupPerConnector,
			Prefix:            cfg.Prefix,
			Suffix:            cfg.Suffix,
		},
		writer:  artifact.NewWriter(logger, opts.DryRun),
		metrics: collector,
		logger:  logger,
		state:   StateStart,
		history: []State{StateStart},
	}
}

// State returns the current state of the run
func (g *Generator) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// History returns every state the run went through, in order
func (g *Generator) History() []State {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]State, len(g.history))
	copy(out, g.history)
	return out
}

func (g *Generator) setState(s State) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = s
	g.history = append(g.history, s)
}

// job is one connector to generate
type job struct {
	md   metadata.Metadata
	id   string
	path string
}

// Run performs the generation
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	g.logger.Info("starting schema generation",
		zap.String("format", g.cfg.Format),
		zap.String("output_dir", g.cfg.OutputDir),
		zap.Bool("group_per_connector", g.cfg.GroupPerConnector),
		zap.Int("workers", g.opts.Workers),
		zap.Bool("dry_run", g.opts.DryRun))

	var jobs []job
	err := g.stage(ctx, StateLoadConnectors, metrics.StageLoad, nil, func(context.Context) error {
		var err error
		jobs, err = g.load()
		return err
	})
	if err != nil {
		return nil, g.fail(err)
	}

	var f format.Format
	err = g.stage(ctx, StateResolveFormat, metrics.StageResolve, map[string]interface{}{"format": g.cfg.Format}, func(context.Context) error {
		var err error
		f, err = format.Select(g.cfg.Format, g.discovery.DiscoverSchemaFormats())
		return err
	})
	if err != nil {
		return nil, g.fail(err)
	}
	g.logger.Info("schema format selected",
		zap.String("format", f.Descriptor().Name),
		zap.Int("connectors", len(jobs)))

	outputs, err := g.generateAll(ctx, f, jobs)
	if err != nil {
		return nil, g.fail(err)
	}

	report := &Report{
		Format:   f.Descriptor().Name,
		Outputs:  outputs,
		Duration: time.Since(start),
	}
	for _, out := range outputs {
		report.Bytes += int64(len(out.Content))
	}

	g.setState(StateDone)
	g.logger.Info("schema generation completed",
		zap.Int("schemas", len(outputs)),
		zap.Int64("bytes", report.Bytes),
		zap.Duration("duration", report.Duration))
	return report, nil
}

// load collects connector metadata and plans every output path
func (g *Generator) load() ([]job, error) {
	var jobs []job
	for p := range g.discovery.DiscoverConnectorProviders() {
		md := p.ConnectorMetadata()
		d := md.Descriptor()
		if err := d.Validate(); err != nil {
			return nil, err
		}
		jobs = append(jobs, job{md: md, id: d.ID})
	}

	if len(jobs) == 0 {
		return nil, errors.New(errors.ErrorTypeNoConnectors, "no connector providers found").
			WithDetail("format", g.cfg.Format)
	}

	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.id
	}
	paths, err := g.naming.Plan(ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].path = paths[i]
	}

	g.logger.Debug("connectors loaded", zap.Int("count", len(jobs)))
	return jobs, nil
}

func (g *Generator) generateAll(ctx context.Context, f format.Format, jobs []job) ([]artifact.Output, error) {
	outputs := make([]artifact.Output, len(jobs))

	if g.opts.Workers <= 1 {
		for i, j := range jobs {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, errors.ErrorTypeInternal, "schema generation cancelled")
			}
			out, err := g.generate(ctx, f, j)
			if err != nil {
				return nil, err
			}
			outputs[i] = out
		}
		return outputs, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return errors.Wrap(err, errors.ErrorTypeInternal, "schema generation cancelled")
			}
			out, err := g.generate(egCtx, f, j)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// generate synthesizes, renders, optionally validates and writes the schema
// of one connector
func (g *Generator) generate(ctx context.Context, f format.Format, j job) (artifact.Output, error) {
	name := f.Descriptor().Name
	g.logger.Info("generating connector schema",
		zap.String("connector", j.id),
		zap.String("path", j.path))

	attrs := map[string]interface{}{"connector": j.id, "format": name}
	out := artifact.Output{ConnectorID: j.id, Path: j.path}

	err := g.runConnector(ctx, f, j, attrs, &out)
	if err != nil {
		g.metrics.RecordSchema(name, metrics.StatusFailure, 0)
		return artifact.Output{}, err
	}

	g.metrics.RecordSchema(name, metrics.StatusSuccess, len(out.Content))
	return out, nil
}

func (g *Generator) runConnector(ctx context.Context, f format.Format, j job, attrs map[string]interface{}, out *artifact.Output) error {
	name := f.Descriptor().Name

	var s *schema.Schema
	err := g.stage(ctx, StateSynthesize, metrics.StageSynthesize, attrs, func(ctx context.Context) error {
		s = schema.Build(j.md, f.FieldFilter())
		return ctx.Err()
	})
	if err != nil {
		return connectorError(err, errors.ErrorTypeInternal, "failed to synthesize schema", j.id, name)
	}

	err = g.stage(ctx, StateRender, metrics.StageRender, attrs, func(context.Context) error {
		content, err := f.Render(s)
		if err != nil {
			return connectorError(err, errors.ErrorTypeRender, "failed to render schema", j.id, name)
		}
		out.Content = content
		return nil
	})
	if err != nil {
		return err
	}

	if v, ok := f.(format.Validator); ok && g.opts.Validate {
		err = g.stage(ctx, StateValidate, metrics.StageValidate, attrs, func(context.Context) error {
			if err := v.Validate(out.Content); err != nil {
				return connectorError(err, errors.ErrorTypeValidation, "rendered schema failed validation", j.id, name)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return g.stage(ctx, StateWrite, metrics.StageWrite, attrs, func(context.Context) error {
		return g.writer.Write(*out)
	})
}

// stage moves to state and runs fn inside a span, timing it under the
// metrics stage name
func (g *Generator) stage(ctx context.Context, state State, stage string, attrs map[string]interface{}, fn func(context.Context) error) error {
	g.setState(state)
	timer := metrics.NewTimer(stage)
	err := observability.Trace(ctx, stage, attrs, fn)
	g.metrics.ObserveStage(timer)
	return err
}

func (g *Generator) fail(err error) error {
	g.setState(StateFailed)
	g.logger.Error("schema generation failed",
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err))
	return err
}

// connectorError keeps the type of structured errors and falls back to
// fallback for anything else
func connectorError(err error, fallback errors.ErrorType, msg, id, formatName string) error {
	t := fallback
	var typed *errors.Error
	if errors.As(err, &typed) {
		t = typed.Type
	}
	return errors.Wrap(err, t, msg).
		WithDetail("connector", id).
		WithDetail("format", formatName)
}
