// Package metadata defines how a connector describes itself to the schema
// generator: an identity (Descriptor) and the configuration fields it accepts.
//
// Connector packages expose a Provider and register it with the connector
// registry from their init() functions. The generator never inspects the
// connector implementation itself, only the Metadata returned by the provider.
//
// # Field surface
//
// Fields are usually derived from a tagged configuration struct with Reflect:
//
//	type Config struct {
//		shared.ConnectionConfig `json:",inline"`
//
//		Database string `json:"database" desc:"Database to read from" required:"true" group:"connection"`
//		SSLMode  string `json:"ssl_mode" enum:"disable,require,verify-full" default:"require"`
//	}
//
//	fields, err := metadata.Reflect(Config{})
//
// Providers may then adjust individual fields with Lookup, e.g. to attach
// allowed values that come from a client library.
package metadata

import (
	"regexp"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

// ConnectorType tells whether a connector reads or writes data
type ConnectorType string

const (
	// ConnectorTypeSource marks connectors that read from an external system
	ConnectorTypeSource ConnectorType = "source"
	// ConnectorTypeDestination marks connectors that write to an external system
	ConnectorTypeDestination ConnectorType = "destination"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Descriptor identifies a connector.
type Descriptor struct {
	// ID is stable and filesystem-safe; it names the generated files
	ID string
	// Name is the human readable connector name
	Name        string
	Type        ConnectorType
	Version     string
	Description string
}

// Validate checks that the descriptor can be used to name an output file
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return errors.New(errors.ErrorTypeConfig, "connector id must not be empty").
			WithDetail("connector_name", d.Name)
	}
	if !idPattern.MatchString(d.ID) || d.ID == "." || d.ID == ".." {
		return errors.New(errors.ErrorTypeConfig, "connector id is not filesystem-safe").
			WithDetail("connector", d.ID)
	}
	return nil
}

// FieldType is the logical type of a configuration field
type FieldType string

const (
	TypeBoolean  FieldType = "boolean"
	TypeInt      FieldType = "int"
	TypeLong     FieldType = "long"
	TypeDouble   FieldType = "double"
	TypeString   FieldType = "string"
	TypePassword FieldType = "password"
	TypeDuration FieldType = "duration"
	// TypeList is a list of Elem values
	TypeList FieldType = "list"
	// TypeMap is a string keyed map of Elem values
	TypeMap FieldType = "map"
	// TypeObject is a nested group of Fields
	TypeObject FieldType = "object"
)

// Importance hints how prominently a field should be presented
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// Field describes a single configuration option of a connector.
type Field struct {
	Name          string
	DisplayName   string
	Description   string
	Type          FieldType
	Required      bool
	Default       any
	AllowedValues []string
	// Group is the category the field is shown under; GroupOrder orders
	// fields inside that category (0 means unordered)
	Group      string
	GroupOrder int
	Importance Importance
	Deprecated bool
	// Internal fields are implementation details most formats filter out
	Internal bool

	// Elem describes list items and map values
	Elem *Field
	// Fields holds the children of an object field
	Fields []Field
}

// Metadata is the read-only view of a connector consumed by the generator
type Metadata interface {
	Descriptor() Descriptor
	Fields() []Field
}

// Provider supplies the metadata of one connector
type Provider interface {
	ConnectorMetadata() Metadata
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func() Metadata

// ConnectorMetadata calls f
func (f ProviderFunc) ConnectorMetadata() Metadata {
	return f()
}

// Static is a Metadata backed by plain values
type Static struct {
	Desc      Descriptor
	FieldList []Field
}

// Descriptor returns the connector descriptor
func (s *Static) Descriptor() Descriptor {
	return s.Desc
}

// Fields returns the connector fields
func (s *Static) Fields() []Field {
	return s.FieldList
}

// Lookup finds a field by its dotted path ("performance.batch_size") and
// returns a pointer into fields so callers can adjust it in place.
func Lookup(fields []Field, path string) *Field {
	head, rest := path, ""
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			head, rest = path[:i], path[i+1:]
			break
		}
	}

	for i := range fields {
		if fields[i].Name != head {
			continue
		}
		if rest == "" {
			return &fields[i]
		}
		return Lookup(fields[i].Fields, rest)
	}
	return nil
}
