package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"postgresql", true},
		{"mysql_cdc", true},
		{"s3-v2", true},
		{"kafka.source", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../etc", false},
		{"a/b", false},
		{"Postgres", false},
		{"-dash", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := Descriptor{ID: tt.id, Name: "Test"}.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
		})
	}
}

func TestProviderFunc(t *testing.T) {
	md := &Static{
		Desc:      Descriptor{ID: "csv", Name: "CSV", Type: ConnectorTypeSource},
		FieldList: []Field{{Name: "file_path", Type: TypeString}},
	}
	var p Provider = ProviderFunc(func() Metadata { return md })

	got := p.ConnectorMetadata()
	assert.Equal(t, "csv", got.Descriptor().ID)
	assert.Len(t, got.Fields(), 1)
}
