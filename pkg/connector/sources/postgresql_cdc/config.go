// Package postgresql_cdc describes the PostgreSQL change data capture source,
// which streams row changes through logical replication.
package postgresql_cdc

import (
	"time"

	"github.com/jackc/pglogrepl"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the PostgreSQL CDC source
const ID = "postgresql_cdc"

// Config is the configuration accepted by the PostgreSQL CDC source
type Config struct {
	ConnectionString string   `json:"connection_string" required:"true" format:"password" group:"connection" order:"1" importance:"high" desc:"PostgreSQL connection string of a user with the REPLICATION attribute"`
	Database         string   `json:"database" required:"true" group:"connection" order:"2"`
	Tables           []string `json:"tables" required:"true" group:"connection" order:"3" desc:"Tables to capture as schema.table"`

	SlotName       string        `json:"slot_name" default:"nebula_cdc_slot" group:"replication" order:"1"`
	Publication    string        `json:"publication" default:"nebula_cdc_pub" group:"replication" order:"2"`
	StartLSN       string        `json:"start_lsn" group:"replication" order:"3" desc:"Log sequence number to resume from, 0/0 starts at the slot position"`
	TempSlot       bool          `json:"temp_slot" default:"false" group:"replication" order:"4" desc:"Drop the replication slot when the connection closes"`
	PluginName     string        `json:"plugin_name" default:"pgoutput" enum:"pgoutput" group:"replication" order:"5" importance:"low"`
	StatusInterval time.Duration `json:"status_interval" default:"10s" group:"replication" order:"6" desc:"Interval between standby status updates"`

	shared.Base
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "PostgreSQL CDC",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "PostgreSQL change data capture through logical replication",
	}
}

// Provider returns the metadata provider of the PostgreSQL CDC source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetDefault("start_lsn", pglogrepl.LSN(0).String()),
	)
}

// ParseStartLSN parses a configured start_lsn. Empty means the slot position.
func ParseStartLSN(s string) (pglogrepl.LSN, error) {
	if s == "" {
		return 0, nil
	}
	return pglogrepl.ParseLSN(s)
}
