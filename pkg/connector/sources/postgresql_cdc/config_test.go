package postgresql_cdc

import (
	"testing"

	"github.com/jackc/pglogrepl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

func TestProvider(t *testing.T) {
	md := Provider().ConnectorMetadata()
	require.NoError(t, md.Descriptor().Validate())

	fields := md.Fields()
	assert.Equal(t, "0/0", metadata.Lookup(fields, "start_lsn").Default)
	assert.Equal(t, "nebula_cdc_slot", metadata.Lookup(fields, "slot_name").Default)
	assert.Equal(t, "10s", metadata.Lookup(fields, "status_interval").Default)

	tables := metadata.Lookup(fields, "tables")
	require.NotNil(t, tables)
	assert.Equal(t, metadata.TypeList, tables.Type)
	assert.True(t, tables.Required)
}

func TestParseStartLSN(t *testing.T) {
	lsn, err := ParseStartLSN("")
	require.NoError(t, err)
	assert.Zero(t, lsn)

	lsn, err = ParseStartLSN("16/B374D848")
	require.NoError(t, err)
	assert.Equal(t, pglogrepl.LSN(0x16B374D848), lsn)
	assert.Equal(t, "16/B374D848", lsn.String())

	_, err = ParseStartLSN("not-an-lsn")
	assert.Error(t, err)
}
