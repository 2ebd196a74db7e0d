// Package arrow renders connector schemas as Apache Arrow schemas, encoded in
// the JSON layout of the Arrow integration format.
package arrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/json"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

// Name selects this format
const Name = "arrow"

// Field metadata keys
const (
	MetaTitle       = "title"
	MetaDescription = "description"
	MetaDefault     = "default"
	MetaEnum        = "enum"
	MetaFormat      = "format"
	MetaDeprecated  = "deprecated"
)

func init() {
	registry.MustRegisterFormat(New())
}

// Format renders Arrow schemas
type Format struct{}

// New creates the Arrow format
func New() *Format {
	return &Format{}
}

// Descriptor implements format.Format
func (f *Format) Descriptor() format.Descriptor {
	return format.Descriptor{
		Name:        Name,
		Description: "Apache Arrow schema (integration JSON layout)",
		MediaType:   "application/json",
	}
}

// FieldFilter hides internal fields
func (f *Format) FieldFilter() schema.FieldFilter {
	return schema.ExcludeInternal
}

// Render implements format.Format
func (f *Format) Render(s *schema.Schema) ([]byte, error) {
	as, err := Build(s)
	if err != nil {
		return nil, err
	}

	out, err := json.MarshalDocument(document{Schema: encodeSchema(as)})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeRender, "failed to encode Arrow schema").
			WithDetail("format", Name)
	}
	return out, nil
}

// Build converts the root object of s into an Arrow schema. Optional
// properties become nullable fields.
func Build(s *schema.Schema) (*arrow.Schema, error) {
	if s.Kind != schema.KindObject {
		return nil, errors.New(errors.ErrorTypeRender, "arrow schema root must be an object").
			WithDetail("kind", string(s.Kind))
	}

	fields := make([]arrow.Field, 0, len(s.Properties))
	for _, p := range s.Properties {
		f, err := field(p.Name, !p.Required, p.Schema)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	md, err := metadataOf(s)
	if err != nil {
		return nil, err
	}
	return arrow.NewSchema(fields, &md), nil
}

func field(name string, nullable bool, s *schema.Schema) (arrow.Field, error) {
	dt, err := dataType(s)
	if err != nil {
		return arrow.Field{}, errors.Wrap(err, errors.ErrorTypeRender, "unsupported field type").
			WithDetail("field", name)
	}
	md, err := metadataOf(s)
	if err != nil {
		return arrow.Field{}, err
	}
	return arrow.Field{Name: name, Type: dt, Nullable: nullable, Metadata: md}, nil
}

func dataType(s *schema.Schema) (arrow.DataType, error) {
	switch s.Kind {
	case schema.KindBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case schema.KindInteger:
		if s.Format == schema.FormatInt32 {
			return arrow.PrimitiveTypes.Int32, nil
		}
		return arrow.PrimitiveTypes.Int64, nil
	case schema.KindNumber:
		return arrow.PrimitiveTypes.Float64, nil
	case schema.KindString:
		return arrow.BinaryTypes.String, nil
	case schema.KindArray:
		items := s.Items
		if items == nil {
			items = &schema.Schema{Kind: schema.KindString}
		}
		elem, err := field("item", true, items)
		if err != nil {
			return nil, err
		}
		return arrow.ListOfField(elem), nil
	case schema.KindObject:
		if s.AdditionalProperties != nil {
			value, err := dataType(s.AdditionalProperties)
			if err != nil {
				return nil, err
			}
			return arrow.MapOf(arrow.BinaryTypes.String, value), nil
		}
		children := make([]arrow.Field, 0, len(s.Properties))
		for _, p := range s.Properties {
			f, err := field(p.Name, !p.Required, p.Schema)
			if err != nil {
				return nil, err
			}
			children = append(children, f)
		}
		return arrow.StructOf(children...), nil
	}
	return nil, fmt.Errorf("unknown schema kind %q", s.Kind)
}

// metadataOf flattens annotations and extensions into key/value metadata.
// Non-string values are JSON encoded.
func metadataOf(s *schema.Schema) (arrow.Metadata, error) {
	var keys, values []string
	add := func(k string, v any) error {
		str, ok := v.(string)
		if !ok {
			raw, err := json.Marshal(v)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeRender, "failed to encode metadata value").
					WithDetail("key", k)
			}
			str = string(raw)
		}
		keys = append(keys, k)
		values = append(values, str)
		return nil
	}

	var err error
	set := func(k string, v any, present bool) {
		if err == nil && present {
			err = add(k, v)
		}
	}
	set(MetaTitle, s.Title, s.Title != "")
	set(MetaDescription, s.Description, s.Description != "")
	set(MetaFormat, s.Format, s.Format != "")
	set(MetaDefault, s.Default, s.Default != nil)
	set(MetaEnum, s.Enum, len(s.Enum) > 0)
	set(MetaDeprecated, "true", s.Deprecated)
	for _, k := range s.ExtensionKeys() {
		set(k, s.Extensions[k], true)
	}
	if err != nil {
		return arrow.Metadata{}, err
	}
	return arrow.NewMetadata(keys, values), nil
}
