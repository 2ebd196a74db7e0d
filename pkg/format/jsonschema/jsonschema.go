// Package jsonschema renders connector schemas as JSON Schema (draft 2020-12).
package jsonschema

import (
	"bytes"

	jschema "github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/json"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

// Name selects this format
const Name = "jsonschema"

// resourceURL is the address rendered documents are compiled under
const resourceURL = "https://schemagen.local/connector.schema.json"

func init() {
	registry.MustRegisterFormat(New())
}

// Format renders JSON Schema documents
type Format struct{}

// New creates the JSON Schema format
func New() *Format {
	return &Format{}
}

// Descriptor implements format.Format
func (f *Format) Descriptor() format.Descriptor {
	return format.Descriptor{
		Name:        Name,
		Description: "JSON Schema draft 2020-12",
		MediaType:   "application/schema+json",
	}
}

// FieldFilter hides internal fields
func (f *Format) FieldFilter() schema.FieldFilter {
	return schema.ExcludeInternal
}

// Render implements format.Format
func (f *Format) Render(s *schema.Schema) ([]byte, error) {
	doc := Convert(s)
	doc.Version = jschema.Version

	out, err := json.MarshalDocument(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeRender, "failed to encode JSON Schema").
			WithDetail("format", Name)
	}
	return out, nil
}

// Validate compiles content as a draft 2020-12 schema
func (f *Format) Validate(content []byte) error {
	return Compile(content)
}

// Compile checks that content is a well formed draft 2020-12 schema
func Compile(content []byte) error {
	c := validator.NewCompiler()
	c.Draft = validator.Draft2020

	if err := c.AddResource(resourceURL, bytes.NewReader(content)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "rendered JSON Schema is not valid JSON")
	}
	if _, err := c.Compile(resourceURL); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "rendered JSON Schema does not compile")
	}
	return nil
}

// Convert maps a schema node onto the JSON Schema object model. Property
// order is preserved and extensions become top level keywords.
func Convert(s *schema.Schema) *jschema.Schema {
	out := &jschema.Schema{
		Type:        string(s.Kind),
		Title:       s.Title,
		Description: s.Description,
		Format:      s.Format,
		Default:     s.Default,
		Deprecated:  s.Deprecated,
		WriteOnly:   s.WriteOnly,
	}

	for _, v := range s.Enum {
		out.Enum = append(out.Enum, v)
	}

	if s.Kind == schema.KindObject && s.AdditionalProperties == nil {
		out.Properties = jschema.NewProperties()
		for _, p := range s.Properties {
			out.Properties.Set(p.Name, Convert(p.Schema))
		}
		out.Required = s.Required()
	}
	if s.Items != nil {
		out.Items = Convert(s.Items)
	}
	if s.AdditionalProperties != nil {
		out.AdditionalProperties = Convert(s.AdditionalProperties)
	}

	if len(s.Extensions) > 0 {
		out.Extras = make(map[string]any, len(s.Extensions))
		for _, k := range s.ExtensionKeys() {
			out.Extras[k] = s.Extensions[k]
		}
	}
	return out
}
