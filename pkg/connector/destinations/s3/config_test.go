package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

func TestSDKEnums(t *testing.T) {
	assert.Contains(t, StorageClasses(), "STANDARD")
	assert.Contains(t, StorageClasses(), "GLACIER")
	assert.Contains(t, Encryptions(), "AES256")
	assert.Contains(t, Encryptions(), "aws:kms")
}

func TestProvider(t *testing.T) {
	md := Provider().ConnectorMetadata()
	require.NoError(t, md.Descriptor().Validate())
	assert.Equal(t, metadata.ConnectorTypeDestination, md.Descriptor().Type)

	fields := md.Fields()
	cases := map[string]any{
		"storage_class":         "STANDARD",
		"format":                "csv",
		"max_file_size":         int64(104857600),
		"upload.part_size":      int64(5 * 1024 * 1024),
		"upload.concurrency":    int64(5),
		"upload.retry_mode":     "standard",
		"upload.max_attempts":   int64(3),
		"compression.algorithm": "none",
	}
	for path, want := range cases {
		f := metadata.Lookup(fields, path)
		require.NotNil(t, f, path)
		assert.Equal(t, want, f.Default, path)
	}

	assert.Equal(t, []string{"standard", "adaptive"}, metadata.Lookup(fields, "upload.retry_mode").AllowedValues)
	assert.Equal(t, metadata.TypePassword, metadata.Lookup(fields, "aws_secret_access_key").Type)
}
