package snowflake

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
	assert.Equal(t, "https", metadata.Lookup(fields, "protocol").Default)
	assert.Equal(t, int64(443), metadata.Lookup(fields, "port").Default)
	assert.NotNil(t, metadata.Lookup(fields, "login_timeout").Default)
	assert.Equal(t, metadata.TypePassword, metadata.Lookup(fields, "password").Type)

	stage := metadata.Lookup(fields, "stage")
	require.NotNil(t, stage)
	assert.Equal(t, metadata.TypeObject, stage.Type)
	assert.Equal(t, []string{"s3", "gcs", "azure"}, metadata.Lookup(fields, "stage.external_type").AllowedValues)
}
