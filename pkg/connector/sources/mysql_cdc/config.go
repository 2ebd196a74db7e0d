// Package mysql_cdc describes the MySQL change data capture source, which
// follows the binlog through go-mysql's canal.
package mysql_cdc

import (
	"net"
	"strconv"
	"time"

	"github.com/go-mysql-org/go-mysql/canal"
	gomysql "github.com/go-mysql-org/go-mysql/mysql"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the MySQL CDC source
const ID = "mysql_cdc"

// Config is the configuration accepted by the MySQL CDC source
type Config struct {
	shared.ConnectionConfig

	Database string   `json:"database" required:"true" group:"connection" order:"5"`
	Tables   []string `json:"tables" required:"true" group:"connection" order:"6"`
	Charset  string   `json:"charset" group:"connection" order:"7" importance:"low"`

	ServerID        int           `json:"server_id" default:"1001" group:"binlog" order:"1" desc:"Replica server id, unique among the replicas of the source"`
	Flavor          string        `json:"flavor" group:"binlog" order:"2"`
	StartPosition   string        `json:"start_position" group:"binlog" order:"3" desc:"Binlog position as file:offset, or a GTID set when gtid_enabled is set"`
	GTIDEnabled     bool          `json:"gtid_enabled" default:"false" group:"binlog" order:"4"`
	HeartbeatPeriod time.Duration `json:"heartbeat_period" default:"30s" group:"binlog" order:"5"`
	UseDecimal      bool          `json:"use_decimal" default:"false" group:"binlog" order:"6"`

	IgnoreJSONDecodeError bool   `json:"ignore_json_decode_error" default:"false" group:"binlog" order:"7" importance:"low"`
	DumpExecutionPath     string `json:"dump_execution_path" group:"snapshot" order:"1" desc:"mysqldump binary used for the initial snapshot, empty skips the snapshot"`

	shared.Base
}

// Flavors lists the server flavors the binlog reader understands
func Flavors() []string {
	return []string{gomysql.MySQLFlavor, gomysql.MariaDBFlavor}
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "MySQL CDC",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "MySQL change data capture from the binary log",
	}
}

// Provider returns the metadata provider of the MySQL CDC source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetEnum("flavor", Flavors()...),
		canalDefaults,
	)
}

func canalDefaults(fields []metadata.Field) {
	cfg := canal.NewDefaultConfig()

	if host, port, err := net.SplitHostPort(cfg.Addr); err == nil {
		shared.SetDefault("host", host)(fields)
		if p, err := strconv.ParseInt(port, 10, 64); err == nil {
			shared.SetDefault("port", p)(fields)
		}
	}
	shared.SetDefault("username", cfg.User)(fields)
	shared.SetDefault("charset", cfg.Charset)(fields)
	shared.SetDefault("flavor", cfg.Flavor)(fields)
	shared.SetDefault("dump_execution_path", cfg.Dump.ExecutionPath)(fields)
}
