package shared

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

// Adjuster edits reflected fields in place, typically to attach values
// that come from a client library.
type Adjuster func(fields []metadata.Field)

// NewProvider returns a provider that reflects cfg on every call, so each
// run sees a fresh field list. A struct that cannot be reflected is a
// programming error and panics at first use.
func NewProvider(desc metadata.Descriptor, cfg any, adjust ...Adjuster) metadata.Provider {
	return metadata.ProviderFunc(func() metadata.Metadata {
		fields := metadata.MustReflect(cfg)
		for _, fn := range adjust {
			fn(fields)
		}
		return &metadata.Static{Desc: desc, FieldList: fields}
	})
}

// SetEnum replaces the allowed values of the field at path
func SetEnum(path string, values ...string) Adjuster {
	return func(fields []metadata.Field) {
		if f := metadata.Lookup(fields, path); f != nil {
			f.AllowedValues = values
		}
	}
}

// SetDefault replaces the default of the field at path
func SetDefault(path string, v any) Adjuster {
	return func(fields []metadata.Field) {
		if f := metadata.Lookup(fields, path); f != nil {
			f.Default = v
		}
	}
}

// WithCompression applies ApplyCompression to the section at prefix
func WithCompression(prefix string) Adjuster {
	return func(fields []metadata.Field) {
		ApplyCompression(fields, prefix)
	}
}
