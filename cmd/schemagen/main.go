package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/internal/generator"
	"github.com/ajitpratap0/nebula-schemagen/pkg/config"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/logger"
	"github.com/ajitpratap0/nebula-schemagen/pkg/metrics"
	"github.com/ajitpratap0/nebula-schemagen/pkg/observability"

	// Import all built-in connectors and schema formats to register them
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/destinations/bigquery"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/destinations/gcs"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/destinations/s3"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/destinations/snowflake"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/csv"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/kafka"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/mongodb_cdc"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/mysql"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/mysql_cdc"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/postgresql"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/connector/sources/postgresql_cdc"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/format/arrow"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/format/avro"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/format/jsonschema"
	_ "github.com/ajitpratap0/nebula-schemagen/pkg/format/openapi"
)

var version = "0.1.0"

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(registry.GetRegistry()).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	_ = logger.Sync()
	os.Exit(exitCode(err))
}

func newRootCommand(discovery generator.Discoverer) *cobra.Command {
	return &cobra.Command{
		Use:   "schemagen " + config.Usage,
		Short: "Generate configuration schemas for every registered connector",
		Long: `schemagen renders one schema document per registered connector in the
requested format and writes it below the output directory.

Runtime settings are read from SCHEMAGEN_* environment variables and the
optional YAML file named by SCHEMAGEN_CONFIG.`,
		// prefixes and suffixes may start with a dash
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == config.ArgCount {
				return nil
			}
			log := logger.Get()
			log.Error("wrong number of arguments",
				zap.Int("expected", config.ArgCount),
				zap.Int("received", len(args)))
			for i, arg := range args {
				log.Error("received argument", zap.Int("index", i), zap.String("value", arg))
			}
			_, err := config.ParseArgs(args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, discovery)
		},
	}
}

func run(ctx context.Context, args []string, discovery generator.Discoverer) error {
	cfg, err := config.ParseArgs(args)
	if err != nil {
		return err
	}

	runtimeCfg, err := config.LoadRuntime()
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = runtimeCfg.LogLevel
	logCfg.Encoding = runtimeCfg.LogEncoding
	if err := logger.Init(logCfg); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to initialize logger")
	}
	ctx = context.WithValue(ctx, logger.RunIDKey, uuid.NewString())
	ctx = context.WithValue(ctx, logger.FormatKey, cfg.Format)
	log := logger.WithContext(ctx).With(zap.String("component", "schemagen-cli"))

	tracingCfg := observability.DefaultTracingConfig()
	tracingCfg.Enabled = runtimeCfg.Trace
	tracingCfg.ServiceVersion = version
	shutdown, err := observability.InitTracing(tracingCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("failed to shutdown tracing", zap.Error(err))
		}
	}()

	collector := metrics.NewCollector()
	gen := generator.New(cfg, generator.Options{
		Workers:  runtimeCfg.Workers,
		Validate: runtimeCfg.ValidateOutput,
		DryRun:   runtimeCfg.DryRun,
	}, discovery, collector, log)

	report, runErr := gen.Run(ctx)

	if runtimeCfg.MetricsFile != "" {
		if err := collector.WriteTextfile(runtimeCfg.MetricsFile); err != nil {
			log.Warn("failed to export metrics", zap.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	log.Info("schemas written",
		zap.String("format", report.Format),
		zap.Int("count", len(report.Outputs)),
		zap.String("output_dir", cfg.OutputDir))
	return nil
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.IsType(err, errors.ErrorTypeUsage):
		return exitUsage
	default:
		return exitError
	}
}
