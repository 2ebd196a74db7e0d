package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

func TestProviderDriverDefaults(t *testing.T) {
	md := Provider().ConnectorMetadata()
	require.NoError(t, md.Descriptor().Validate())

	fields := md.Fields()
	assert.Equal(t, "127.0.0.1", metadata.Lookup(fields, "host").Default)
	assert.Equal(t, int64(3306), metadata.Lookup(fields, "port").Default)
	assert.Equal(t, int64(64<<20), metadata.Lookup(fields, "max_allowed_packet").Default)
	assert.Equal(t, "UTC", metadata.Lookup(fields, "loc").Default)
	assert.Equal(t, true, metadata.Lookup(fields, "allow_native_passwords").Default)
	assert.Equal(t, true, metadata.Lookup(fields, "parse_time").Default)
	assert.True(t, metadata.Lookup(fields, "interpolate_params").Internal)
}
