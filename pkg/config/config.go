// Package config turns the command line and the environment into the
// settings of one generator run.
//
// The generator takes exactly five positional arguments, parsed by ParseArgs
// into a GeneratorConfig. Everything else is a RuntimeConfig setting, resolved
// in this order (later wins):
//   - built-in defaults (DefaultRuntimeConfig)
//   - the YAML file named by SCHEMAGEN_CONFIG, with ${VAR} substitution
//   - SCHEMAGEN_* environment variables
package config

import (
	"os"
	"strings"

	env "github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

const (
	// ArgCount is the number of positional arguments the generator takes
	ArgCount = 5

	// EnvPrefix prefixes every runtime environment variable
	EnvPrefix = "SCHEMAGEN_"

	// ConfigFileEnv names the optional YAML runtime configuration file
	ConfigFileEnv = EnvPrefix + "CONFIG"

	// Usage describes the positional arguments
	Usage = "<format-name> <output-directory> <groupDirectoryPerConnector: true|false> <filename-prefix> <filename-suffix>"
)

// GeneratorConfig is what to generate and where to put it
type GeneratorConfig struct {
	// Format is the name of the schema format to render
	Format            string
	OutputDir         string
	GroupPerConnector bool
	Prefix            string
	Suffix            string
}

// ParseArgs maps the positional arguments onto a GeneratorConfig. The format
// name is trimmed; the grouping flag accepts true or false in any case.
func ParseArgs(args []string) (GeneratorConfig, error) {
	if len(args) != ArgCount {
		return GeneratorConfig{}, errors.Newf(errors.ErrorTypeUsage,
			"expected %d arguments, got %d", ArgCount, len(args)).
			WithDetail("usage", Usage)
	}

	group, err := parseBool(args[2])
	if err != nil {
		return GeneratorConfig{}, err
	}

	cfg := GeneratorConfig{
		Format:            strings.TrimSpace(args[0]),
		OutputDir:         args[1],
		GroupPerConnector: group,
		Prefix:            args[3],
		Suffix:            args[4],
	}
	if cfg.Format == "" {
		return GeneratorConfig{}, errors.New(errors.ErrorTypeUsage, "format name must not be empty").
			WithDetail("usage", Usage)
	}
	if cfg.OutputDir == "" {
		return GeneratorConfig{}, errors.New(errors.ErrorTypeUsage, "output directory must not be empty").
			WithDetail("usage", Usage)
	}
	return cfg, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.New(errors.ErrorTypeUsage, "groupDirectoryPerConnector must be true or false").
		WithDetail("value", s)
}

// RuntimeConfig holds the operational settings of a run
type RuntimeConfig struct {
	// LogLevel is a zap level name (debug, info, warn, error)
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// LogEncoding is console or json
	LogEncoding string `yaml:"log_encoding" env:"LOG_ENCODING"`
	// Workers bounds how many connectors are generated concurrently
	Workers int `yaml:"workers" env:"WORKERS"`
	// ValidateOutput checks every rendered document before it is written
	ValidateOutput bool `yaml:"validate" env:"VALIDATE"`
	// DryRun renders everything but writes nothing
	DryRun bool `yaml:"dry_run" env:"DRY_RUN"`
	// MetricsFile receives the run metrics in Prometheus text format
	MetricsFile string `yaml:"metrics_file" env:"METRICS_FILE"`
	// Trace exports spans to stderr
	Trace bool `yaml:"trace" env:"TRACE"`
}

// DefaultRuntimeConfig returns the settings used when nothing is configured
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		LogLevel:    "info",
		LogEncoding: "console",
		Workers:     1,
		ValidateOutput: true,
	}
}

// LoadRuntime resolves the runtime configuration from defaults, the optional
// YAML file and the environment.
func LoadRuntime() (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := Load(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid environment configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for consistency
func (c *RuntimeConfig) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid log level").
			WithDetail("log_level", c.LogLevel)
	}
	switch c.LogEncoding {
	case "console", "json":
	default:
		return errors.New(errors.ErrorTypeConfig, "log encoding must be console or json").
			WithDetail("log_encoding", c.LogEncoding)
	}
	if c.Workers < 1 {
		return errors.New(errors.ErrorTypeConfig, "workers must be at least 1").
			WithDetail("workers", c.Workers)
	}
	return nil
}
