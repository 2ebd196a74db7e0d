// Package snowflake describes the Snowflake destination connector, which
// stages files and loads them with COPY INTO.
package snowflake

import (
	"time"

	"github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
	"github.com/ajitpratap0/nebula-schemagen/pkg/logger"
)

// ID is the connector id of the Snowflake destination
const ID = "snowflake"

// referenceDSN carries every part the driver requires so ParseDSN fills in
// the rest with its defaults.
const referenceDSN = "user:secret@account/database/public"

// Config is the configuration accepted by the Snowflake destination
type Config struct {
	Account   string `json:"account" required:"true" group:"connection" order:"1" importance:"high" desc:"Account identifier, e.g. xy12345.eu-central-1"`
	User      string `json:"user" required:"true" group:"connection" order:"2" importance:"high"`
	Password  string `json:"password" format:"password" group:"connection" order:"3"`
	Database  string `json:"database" required:"true" group:"connection" order:"4"`
	Schema    string `json:"schema" default:"PUBLIC" group:"connection" order:"5"`
	Warehouse string `json:"warehouse" group:"connection" order:"6"`
	Role      string `json:"role" group:"connection" order:"7"`
	Table     string `json:"table" required:"true" group:"connection" order:"8"`

	Protocol               string        `json:"protocol" enum:"https,http" group:"driver" order:"1" importance:"low"`
	Port                   int           `json:"port" group:"driver" order:"2" importance:"low"`
	LoginTimeout           time.Duration `json:"login_timeout" group:"driver" order:"3"`
	MaxRetryCount          int           `json:"max_retry_count" group:"driver" order:"4" importance:"low"`
	OCSPFailOpen           bool          `json:"ocsp_fail_open" default:"true" group:"driver" order:"5" importance:"low"`
	ClientSessionKeepAlive bool          `json:"client_session_keep_alive" default:"true" group:"driver" order:"6"`
	ConnectionPoolSize     int           `json:"connection_pool_size" default:"8" group:"driver" order:"7"`

	Stage Stage `json:"stage" group:"stage" desc:"Where files are staged before COPY INTO"`

	FileFormat        string        `json:"file_format" default:"CSV" enum:"CSV,JSON,PARQUET" group:"loading" order:"1"`
	CompressionType   string        `json:"compression_type" default:"GZIP" enum:"GZIP,SNAPPY,LZ4,ZSTD,S2,DEFLATE" group:"loading" order:"2"`
	ParallelUploads   int           `json:"parallel_uploads" default:"4" group:"loading" order:"3"`
	MicroBatchSize    int           `json:"micro_batch_size" default:"10000" group:"loading" order:"4"`
	MicroBatchTimeout time.Duration `json:"micro_batch_timeout" default:"5s" group:"loading" order:"5"`
	FilesPerCopy      int           `json:"files_per_copy" default:"10" group:"loading" order:"6"`
	MaxFileSize       int64         `json:"max_file_size" default:"104857600" group:"loading" order:"7"`
	AsyncCopy         bool          `json:"async_copy" default:"true" group:"loading" order:"8"`

	shared.Base
}

// Stage configures internal or external staging
type Stage struct {
	Name         string `json:"name" default:"NEBULA_STAGE" order:"1"`
	Prefix       string `json:"prefix" order:"2"`
	UseExternal  bool   `json:"use_external" default:"false" order:"3"`
	ExternalType string `json:"external_type" enum:"s3,gcs,azure" order:"4"`
	ExternalURL  string `json:"external_url" order:"5" desc:"URL of the external stage, e.g. s3://bucket/path"`
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "Snowflake",
		Type:        metadata.ConnectorTypeDestination,
		Version:     "1.0.0",
		Description: "Snowflake destination connector with staged bulk loading",
	}
}

// Provider returns the metadata provider of the Snowflake destination
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{}, driverDefaults)
}

func driverDefaults(fields []metadata.Field) {
	cfg, err := gosnowflake.ParseDSN(referenceDSN)
	if err != nil {
		logger.Get().Warn("failed to read gosnowflake defaults", zap.String("connector", ID), zap.Error(err))
		return
	}

	shared.SetDefault("protocol", cfg.Protocol)(fields)
	shared.SetDefault("port", int64(cfg.Port))(fields)
	shared.SetDefault("login_timeout", cfg.LoginTimeout.String())(fields)
	shared.SetDefault("max_retry_count", int64(cfg.MaxRetryCount))(fields)
}
