// Package schema holds the format-agnostic schema tree built from connector
// metadata, and the synthesizer that builds it.
//
// A Schema is produced fresh for every connector, handed to a format renderer
// and then dropped. Renderers must treat it as read-only.
package schema

import "sort"

// Kind is the structural type of a schema node
type Kind string

const (
	KindObject  Kind = "object"
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
)

// Well-known values of Schema.Format
const (
	FormatInt32    = "int32"
	FormatInt64    = "int64"
	FormatDouble   = "double"
	FormatPassword = "password"
	FormatDuration = "duration"
)

// Extension keys set by the synthesizer
const (
	ExtConnectorID   = "x-connector-id"
	ExtConnectorName = "x-connector-name"
	ExtConnectorType = "x-connector-type"
	ExtVersion       = "x-version"
	ExtName          = "x-name"
	ExtCategory      = "x-category"
	ExtOrdinal       = "x-ordinal"
	ExtImportance    = "x-importance"
)

// Schema is a node of the intermediate schema tree.
type Schema struct {
	Kind        Kind
	Title       string
	Description string
	Format      string
	Default     any
	Enum        []string
	Deprecated  bool
	WriteOnly   bool

	// Properties of an object, in presentation order
	Properties []*Property
	// Items of an array
	Items *Schema
	// AdditionalProperties describes the values of a string keyed map
	AdditionalProperties *Schema

	// Extensions are vendor keys (x-*) copied into formats that support them
	Extensions map[string]any
}

// Property is a named member of an object schema
type Property struct {
	Name     string
	Required bool
	Schema   *Schema
}

// Required returns the names of the required properties in declaration order
func (s *Schema) Required() []string {
	var names []string
	for _, p := range s.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// Property returns the property with the given name, or nil
func (s *Schema) Property(name string) *Property {
	for _, p := range s.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ExtensionKeys returns the extension keys sorted, for deterministic rendering
func (s *Schema) ExtensionKeys() []string {
	keys := make([]string, 0, len(s.Extensions))
	for k := range s.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Walk calls fn for every property in the tree, depth first. path holds the
// names of the enclosing properties.
func (s *Schema) Walk(fn func(path []string, p *Property)) {
	s.walk(nil, fn)
}

func (s *Schema) walk(path []string, fn func(path []string, p *Property)) {
	if s == nil {
		return
	}
	for _, p := range s.Properties {
		fn(path, p)
		child := append(append([]string(nil), path...), p.Name)
		p.Schema.walk(child, fn)
	}
	s.Items.walk(path, fn)
	s.AdditionalProperties.walk(path, fn)
}
