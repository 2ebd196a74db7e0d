// Package postgresql describes the PostgreSQL batch source connector.
//
// Connection and pool defaults are read from pgx so the published schema
// follows the client library the connector runs on.
package postgresql

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
	"github.com/ajitpratap0/nebula-schemagen/pkg/logger"
)

// ID is the connector id of the PostgreSQL source
const ID = "postgresql"

// referenceDSN is parsed to read the library defaults. Every part that
// the environment could override is spelled out.
const referenceDSN = "postgres://localhost:5432/postgres"

// Config is the configuration accepted by the PostgreSQL source
type Config struct {
	shared.ConnectionConfig

	Database         string `json:"database" required:"true" group:"connection" order:"5"`
	SSLMode          string `json:"ssl_mode" default:"prefer" enum:"disable,allow,prefer,require,verify-ca,verify-full" group:"connection" order:"6"`
	ConnectionString string `json:"connection_string" format:"password" group:"connection" order:"7" desc:"Full connection string, overrides the individual connection fields"`

	Table                  string `json:"table" group:"query" order:"1" desc:"Table name to read from"`
	Query                  string `json:"query" group:"query" order:"2" desc:"Custom SQL query, takes precedence over table"`
	QueryExecMode          string `json:"query_exec_mode" group:"query" order:"3" importance:"low"`
	StatementCacheCapacity int    `json:"statement_cache_capacity" group:"query" order:"4" importance:"low"`

	Pool Pool `json:"pool" group:"pool" desc:"Connection pool settings"`

	shared.Base
}

// Pool configures the pgx connection pool
type Pool struct {
	MaxConns          int           `json:"max_conns" order:"1" desc:"Maximum pool size, 0 uses the larger of 4 and the number of CPUs"`
	MinConns          int           `json:"min_conns" order:"2"`
	MaxConnLifetime   time.Duration `json:"max_conn_lifetime" order:"3"`
	MaxConnIdleTime   time.Duration `json:"max_conn_idle_time" order:"4"`
	HealthCheckPeriod time.Duration `json:"health_check_period" order:"5"`
}

// execModes lists the query execution modes pgx supports
var execModes = []pgx.QueryExecMode{
	pgx.QueryExecModeCacheStatement,
	pgx.QueryExecModeCacheDescribe,
	pgx.QueryExecModeDescribeExec,
	pgx.QueryExecModeExec,
	pgx.QueryExecModeSimpleProtocol,
}

// ExecModeName returns the connection string spelling of m ("cache_statement")
func ExecModeName(m pgx.QueryExecMode) string {
	return strings.ReplaceAll(m.String(), " ", "_")
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "PostgreSQL",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "PostgreSQL source connector with connection pooling",
	}
}

// Provider returns the metadata provider of the PostgreSQL source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{}, libraryDefaults)
}

func libraryDefaults(fields []metadata.Field) {
	names := make([]string, len(execModes))
	for i, m := range execModes {
		names[i] = ExecModeName(m)
	}
	shared.SetEnum("query_exec_mode", names...)(fields)

	cfg, err := pgxpool.ParseConfig(referenceDSN)
	if err != nil {
		logger.Get().Warn("failed to read pgx defaults", zap.String("connector", ID), zap.Error(err))
		return
	}

	conn := cfg.ConnConfig
	for path, v := range map[string]any{
		"host":                     conn.Host,
		"port":                     int64(conn.Port),
		"database":                 conn.Database,
		"query_exec_mode":          ExecModeName(conn.DefaultQueryExecMode),
		"statement_cache_capacity": int64(conn.StatementCacheCapacity),
		"pool.min_conns":           int64(cfg.MinConns),
		"pool.max_conn_lifetime":   cfg.MaxConnLifetime.String(),
		"pool.max_conn_idle_time":  cfg.MaxConnIdleTime.String(),
		"pool.health_check_period": cfg.HealthCheckPeriod.String(),
	} {
		shared.SetDefault(path, v)(fields)
	}
}
