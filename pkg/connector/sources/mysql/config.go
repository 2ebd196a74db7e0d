// Package mysql describes the MySQL batch source connector. Driver defaults
// come from go-sql-driver/mysql.
package mysql

import (
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
	"github.com/ajitpratap0/nebula-schemagen/pkg/logger"
)

// ID is the connector id of the MySQL source
const ID = "mysql"

// Config is the configuration accepted by the MySQL source
type Config struct {
	shared.ConnectionConfig

	Database string `json:"database" required:"true" group:"connection" order:"5"`
	TLS      string `json:"tls" default:"false" enum:"false,true,skip-verify,preferred" group:"connection" order:"6" desc:"TLS mode, or the name of a registered TLS config"`

	Table string `json:"table" group:"query" order:"1"`
	Query string `json:"query" group:"query" order:"2" desc:"Custom SQL query, takes precedence over table"`

	MaxAllowedPacket     int    `json:"max_allowed_packet" group:"driver" order:"1" importance:"low" desc:"Max packet size in bytes, 0 asks the server"`
	Location             string `json:"loc" group:"driver" order:"2" desc:"Time zone used for DATETIME and TIMESTAMP values"`
	ParseTime            bool   `json:"parse_time" default:"true" group:"driver" order:"3"`
	AllowNativePasswords bool   `json:"allow_native_passwords" group:"driver" order:"4" importance:"low"`
	CheckConnLiveness    bool   `json:"check_conn_liveness" group:"driver" order:"5" importance:"low"`
	InterpolateParams    bool   `json:"interpolate_params" default:"false" group:"driver" order:"6" internal:"true"`

	shared.Base
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "MySQL",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "MySQL source connector for table and query extraction",
	}
}

// Provider returns the metadata provider of the MySQL source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{}, driverDefaults)
}

func driverDefaults(fields []metadata.Field) {
	// the empty DSN yields the driver's normalized defaults
	cfg, err := mysql.ParseDSN("/")
	if err != nil {
		logger.Get().Warn("failed to read mysql driver defaults", zap.String("connector", ID), zap.Error(err))
		return
	}

	if host, port, err := net.SplitHostPort(cfg.Addr); err == nil {
		shared.SetDefault("host", host)(fields)
		if p, err := strconv.ParseInt(port, 10, 64); err == nil {
			shared.SetDefault("port", p)(fields)
		}
	}
	shared.SetDefault("max_allowed_packet", int64(cfg.MaxAllowedPacket))(fields)
	shared.SetDefault("loc", cfg.Loc.String())(fields)
	shared.SetDefault("allow_native_passwords", cfg.AllowNativePasswords)(fields)
	shared.SetDefault("check_conn_liveness", cfg.CheckConnLiveness)(fields)
}
