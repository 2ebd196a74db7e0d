package generator

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ajitpratap0/nebula-schemagen/pkg/config"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format/jsonschema"
	"github.com/ajitpratap0/nebula-schemagen/pkg/metrics"
	tu "github.com/ajitpratap0/nebula-schemagen/pkg/testutil"
)

type GeneratorSuite struct {
	tu.OutputSuite
	reg *registry.Registry
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorSuite))
}

func (s *GeneratorSuite) SetupTest() {
	s.OutputSuite.SetupTest()
	s.reg = registry.NewRegistry()
}

func (s *GeneratorSuite) register(ids ...string) {
	for _, id := range ids {
		s.Require().NoError(s.reg.RegisterProvider(tu.Provider(id,
			metadata.Field{Name: "host", Type: metadata.TypeString, Required: true},
			metadata.Field{Name: "secret", Type: metadata.TypePassword, Internal: true},
		)))
	}
}

func (s *GeneratorSuite) config(formatName string, group bool, prefix, suffix string) config.GeneratorConfig {
	return config.GeneratorConfig{
		Format:            formatName,
		OutputDir:         s.OutputDir(),
		GroupPerConnector: group,
		Prefix:            prefix,
		Suffix:            suffix,
	}
}

func (s *GeneratorSuite) run(cfg config.GeneratorConfig, opts Options) (*Generator, *Report, error) {
	g := New(cfg, opts, s.reg, nil, tu.TestLogger(s.T()))
	report, err := g.Run(s.Context())
	return g, report, err
}

func (s *GeneratorSuite) TestGroupedOutputWithSuffix() {
	s.register("postgres", "mysql")
	s.Require().NoError(s.reg.RegisterFormat(jsonschema.New()))

	g, report, err := s.run(s.config("jsonschema", true, "", "-schema"), Options{Validate: true})
	s.Require().NoError(err)

	files := s.Files()
	s.Len(files, 2)
	s.Contains(files, "postgres/postgres-schema.json")
	s.Contains(files, "mysql/mysql-schema.json")
	s.Contains(files["postgres/postgres-schema.json"], `"x-connector-id"`)
	s.NotContains(files["postgres/postgres-schema.json"], "secret")
	s.True(strings.HasSuffix(files["mysql/mysql-schema.json"], "}\n"))

	s.Equal("jsonschema", report.Format)
	s.Len(report.Outputs, 2)
	s.Equal("postgres", report.Outputs[0].ConnectorID)
	s.Equal(filepath.Join(s.OutputDir(), "postgres", "postgres-schema.json"), report.Outputs[0].Path)
	s.Equal(int64(len(files["postgres/postgres-schema.json"])+len(files["mysql/mysql-schema.json"])), report.Bytes)

	s.Equal(StateDone, g.State())
	s.Equal([]State{
		StateStart, StateLoadConnectors, StateResolveFormat,
		StateSynthesize, StateRender, StateValidate, StateWrite,
		StateSynthesize, StateRender, StateValidate, StateWrite,
		StateDone,
	}, g.History())
}

func (s *GeneratorSuite) TestFlatOutputWithPrefix() {
	s.register("csv")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	_, _, err := s.run(s.config("plain", false, "nebula-", ""), Options{})
	s.Require().NoError(err)

	s.Equal(map[string]string{"nebula-csv.json": "csv\nhost\nsecret\n"}, s.Files())
}

func (s *GeneratorSuite) TestNoConnectors() {
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	g, report, err := s.run(s.config("missing-format", false, "", ""), Options{})
	s.Require().Error(err)
	s.Nil(report)
	// checked before the format is resolved
	s.True(errors.IsType(err, errors.ErrorTypeNoConnectors))
	s.Equal(StateFailed, g.State())
	s.NotContains(g.History(), StateResolveFormat)
	s.Empty(s.Files())
}

func (s *GeneratorSuite) TestFormatNotFound() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	g, _, err := s.run(s.config("PLAIN", false, "", ""), Options{})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeFormatNotFound))
	s.Equal(StateFailed, g.State())

	_, statErr := os.Stat(s.OutputDir())
	s.True(os.IsNotExist(statErr), "nothing may be written")
}

func (s *GeneratorSuite) TestAmbiguousFormat() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	_, _, err := s.run(s.config("plain", false, "", ""), Options{})
	s.True(errors.IsType(err, errors.ErrorTypeConflict))
	s.Empty(s.Files())
}

func (s *GeneratorSuite) TestPathCollision() {
	s.register("postgres", "mysql", "postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	_, _, err := s.run(s.config("plain", true, "", ""), Options{})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeConflict))
	s.Empty(s.Files(), "collisions are detected before any write")
}

func (s *GeneratorSuite) TestInvalidConnectorID() {
	s.register("../escape")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	_, _, err := s.run(s.config("plain", false, "", ""), Options{})
	s.True(errors.IsType(err, errors.ErrorTypeConfig))
	s.Empty(s.Files())
}

func (s *GeneratorSuite) TestIdempotent() {
	s.register("postgres", "mysql")
	s.Require().NoError(s.reg.RegisterFormat(jsonschema.New()))
	cfg := s.config("jsonschema", true, "p-", "-s")

	_, _, err := s.run(cfg, Options{})
	s.Require().NoError(err)
	first := s.Files()

	_, _, err = s.run(cfg, Options{})
	s.Require().NoError(err)
	s.Equal(first, s.Files())
}

func (s *GeneratorSuite) TestOverwritesExistingFiles() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	path := filepath.Join(s.OutputDir(), "postgres.json")
	s.Require().NoError(os.MkdirAll(s.OutputDir(), 0o755))
	s.Require().NoError(os.WriteFile(path, []byte("stale content that is longer than the schema"), 0o644))

	_, _, err := s.run(s.config("plain", false, "", ""), Options{})
	s.Require().NoError(err)
	s.Equal("postgres\nhost\nsecret\n", s.Files()["postgres.json"])
}

func (s *GeneratorSuite) TestRenderFailureStopsRun() {
	s.register("postgres", "mysql")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain", Err: stderrors.New("boom")}))

	g, _, err := s.run(s.config("plain", false, "", ""), Options{})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeRender))
	s.Contains(err.Error(), "connector=postgres")
	s.Equal(StateFailed, g.State())
	s.Empty(s.Files())
}

func (s *GeneratorSuite) TestValidationFailure() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain", Invalid: stderrors.New("bad document")}))

	_, _, err := s.run(s.config("plain", false, "", ""), Options{Validate: true})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeValidation))
	s.Empty(s.Files())

	// without validation the same format writes its output
	_, _, err = s.run(s.config("plain", false, "", ""), Options{})
	s.Require().NoError(err)
	s.Len(s.Files(), 1)
}

func (s *GeneratorSuite) TestWriteFailure() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	// a regular file where the output directory should be
	s.Require().NoError(os.WriteFile(s.OutputDir(), []byte("x"), 0o644))

	g, _, err := s.run(s.config("plain", true, "", ""), Options{})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeWrite))
	s.Equal(StateFailed, g.State())
}

func (s *GeneratorSuite) TestDryRun() {
	s.register("postgres", "mysql")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	_, report, err := s.run(s.config("plain", true, "", ""), Options{DryRun: true})
	s.Require().NoError(err)
	s.Len(report.Outputs, 2)
	s.Positive(report.Bytes)
	s.Empty(s.Files())
}

func (s *GeneratorSuite) TestParallelMatchesSequential() {
	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	s.register(ids...)
	s.Require().NoError(s.reg.RegisterFormat(jsonschema.New()))
	cfg := s.config("jsonschema", true, "", "")

	_, sequential, err := s.run(cfg, Options{Workers: 1})
	s.Require().NoError(err)
	want := s.Files()

	s.Require().NoError(os.RemoveAll(s.OutputDir()))

	_, parallel, err := s.run(cfg, Options{Workers: 4})
	s.Require().NoError(err)
	s.Equal(want, s.Files())
	s.Len(want, len(ids))

	// outputs keep discovery order regardless of completion order
	for i := range ids {
		s.Equal(sequential.Outputs[i].ConnectorID, parallel.Outputs[i].ConnectorID)
	}
}

func (s *GeneratorSuite) TestParallelAbortsOnError() {
	s.register("a", "b", "c", "d")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain", Err: stderrors.New("boom")}))

	g, _, err := s.run(s.config("plain", false, "", ""), Options{Workers: 2})
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeRender))
	s.Equal(StateFailed, g.State())
}

func (s *GeneratorSuite) TestCancelledContext() {
	s.register("postgres")
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	ctx, cancel := tu.TestContext(s.T())
	cancel()

	g := New(s.config("plain", false, "", ""), Options{}, s.reg, nil, tu.TestLogger(s.T()))
	_, err := g.Run(ctx)
	s.Require().Error(err)
	s.Empty(s.Files())
}

// cancellingMetadata cancels the run while its fields are being read
type cancellingMetadata struct {
	metadata.Static
	cancel context.CancelFunc
}

func (m *cancellingMetadata) Fields() []metadata.Field {
	m.cancel()
	return m.Static.Fields()
}

func (s *GeneratorSuite) TestCancelledDuringSynthesis() {
	ctx, cancel := context.WithCancel(s.Context())
	defer cancel()

	md := &cancellingMetadata{
		Static: metadata.Static{Desc: metadata.Descriptor{ID: "postgres", Name: "postgres"}},
		cancel: cancel,
	}
	s.Require().NoError(s.reg.RegisterProvider(metadata.ProviderFunc(func() metadata.Metadata { return md })))
	s.Require().NoError(s.reg.RegisterFormat(&tu.Format{Name: "plain"}))

	g := New(s.config("plain", false, "", ""), Options{}, s.reg, nil, tu.TestLogger(s.T()))
	_, err := g.Run(ctx)
	s.Require().Error(err)
	s.True(errors.IsType(err, errors.ErrorTypeInternal))
	s.True(errors.Is(err, context.Canceled))
	s.Contains(err.Error(), "connector=postgres")

	history := g.History()
	s.Equal([]State{StateSynthesize, StateFailed}, history[len(history)-2:])
	s.Empty(s.Files())
}

func TestMetricsRecorded(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.RegisterProvider(tu.Provider("postgres")))
	require.NoError(t, reg.RegisterProvider(tu.Provider("mysql")))
	require.NoError(t, reg.RegisterFormat(&tu.Format{Name: "plain"}))

	collector := metrics.NewCollector()
	cfg := config.GeneratorConfig{Format: "plain", OutputDir: t.TempDir()}
	g := New(cfg, Options{}, reg, collector, tu.TestLogger(t))

	report, err := g.Run(context.Background())
	require.NoError(t, err)

	families, err := collector.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				values[mf.GetName()] += c.GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, values["schemagen_schemas_generated_total"])
	assert.Equal(t, float64(report.Bytes), values["schemagen_bytes_written_total"])

	count, err := testutil.GatherAndCount(collector.Registry(), "schemagen_stage_duration_seconds")
	require.NoError(t, err)
	// load, resolve, then synthesize, render and write per connector
	assert.Equal(t, 5, count)
}
