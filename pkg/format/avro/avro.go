// Package avro renders connector schemas as Avro record schemas.
//
// Avro names are restricted to [A-Za-z_][A-Za-z0-9_]*. Field names are
// sanitised to that alphabet and de-duplicated inside their record; the
// original name is always kept in the x-name attribute.
package avro

import (
	"strconv"
	"strings"

	"github.com/linkedin/goavro/v2"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/json"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

const (
	// Name selects this format
	Name = "avro"

	// Namespace is the namespace of every generated record
	Namespace = "nebula.connectors"
)

func init() {
	registry.MustRegisterFormat(New())
}

type object = *orderedmap.OrderedMap[string, any]

// Format renders Avro schemas
type Format struct{}

// New creates the Avro format
func New() *Format {
	return &Format{}
}

// Descriptor implements format.Format
func (f *Format) Descriptor() format.Descriptor {
	return format.Descriptor{
		Name:        Name,
		Description: "Apache Avro record schema",
		MediaType:   "application/vnd.apache.avro+json",
	}
}

// FieldFilter hides internal fields and secrets
func (f *Format) FieldFilter() schema.FieldFilter {
	return schema.All(schema.ExcludeInternal, schema.ExcludePasswords)
}

// Render implements format.Format
func (f *Format) Render(s *schema.Schema) ([]byte, error) {
	id, _ := s.Extensions[schema.ExtConnectorID].(string)
	if id == "" {
		return nil, errors.New(errors.ErrorTypeRender, "schema has no connector id").
			WithDetail("format", Name)
	}

	rec := record(SanitizeName(id), s)
	rec.Set("namespace", Namespace)
	for _, k := range s.ExtensionKeys() {
		rec.Set(k, s.Extensions[k])
	}

	out, err := json.MarshalDocument(rec)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeRender, "failed to encode Avro schema").
			WithDetail("format", Name).
			WithDetail("connector", id)
	}
	return out, nil
}

// Validate parses content with the Avro codec
func (f *Format) Validate(content []byte) error {
	if _, err := goavro.NewCodec(string(content)); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "rendered Avro schema is invalid")
	}
	return nil
}

// record builds a named record from an object node. Nested named types take
// the record name as prefix so full names stay unique.
func record(name string, s *schema.Schema) object {
	rec := orderedmap.New[string, any]()
	rec.Set("type", "record")
	rec.Set("name", name)
	if doc := docOf(s); doc != "" {
		rec.Set("doc", doc)
	}

	fields := make([]object, 0, len(s.Properties))
	used := make(map[string]bool, len(s.Properties))
	for _, p := range s.Properties {
		fieldName := uniqueName(SanitizeName(p.Name), used)
		fields = append(fields, field(name, fieldName, p))
	}
	rec.Set("fields", fields)
	return rec
}

func field(parent, name string, p *schema.Property) object {
	f := orderedmap.New[string, any]()
	f.Set("name", name)
	if doc := docOf(p.Schema); doc != "" {
		f.Set("doc", doc)
	}

	t := typeOf(parent+"_"+name, p.Schema)
	def, hasDefault := defaultOf(p.Schema)

	switch {
	case p.Required:
		f.Set("type", t)
		if hasDefault {
			f.Set("default", def)
		}
	case hasDefault:
		// a union default must match its first branch
		f.Set("type", []any{t, "null"})
		f.Set("default", def)
	default:
		f.Set("type", []any{"null", t})
		f.Set("default", nil)
	}

	for _, k := range p.Schema.ExtensionKeys() {
		f.Set(k, p.Schema.Extensions[k])
	}
	if p.Schema.Deprecated {
		f.Set("x-deprecated", true)
	}
	return f
}

// typeOf maps a node to an Avro type. name is used for named types.
func typeOf(name string, s *schema.Schema) any {
	switch s.Kind {
	case schema.KindBoolean:
		return "boolean"
	case schema.KindInteger:
		if s.Format == schema.FormatInt32 {
			return "int"
		}
		return "long"
	case schema.KindNumber:
		return "double"
	case schema.KindArray:
		items := s.Items
		if items == nil {
			items = &schema.Schema{Kind: schema.KindString}
		}
		arr := orderedmap.New[string, any]()
		arr.Set("type", "array")
		arr.Set("items", typeOf(name+"_item", items))
		return arr
	case schema.KindObject:
		if s.AdditionalProperties != nil {
			m := orderedmap.New[string, any]()
			m.Set("type", "map")
			m.Set("values", typeOf(name+"_value", s.AdditionalProperties))
			return m
		}
		return record(name, s)
	default:
		if isEnum(s.Enum) {
			e := orderedmap.New[string, any]()
			e.Set("type", "enum")
			e.Set("name", name)
			e.Set("symbols", append([]string(nil), s.Enum...))
			return e
		}
		if s.Format == "" {
			return "string"
		}
		str := orderedmap.New[string, any]()
		str.Set("type", "string")
		str.Set("x-format", s.Format)
		return str
	}
}

// defaultOf returns the Avro encoding of a node's default value
func defaultOf(s *schema.Schema) (any, bool) {
	if s.Default == nil {
		return nil, false
	}
	switch v := s.Default.(type) {
	case int:
		if s.Kind == schema.KindNumber {
			return float64(v), true
		}
	case int64:
		if s.Kind == schema.KindNumber {
			return float64(v), true
		}
	}
	return s.Default, true
}

func docOf(s *schema.Schema) string {
	if s.Description != "" {
		return s.Description
	}
	return s.Title
}

// isEnum reports whether values can be Avro enum symbols
func isEnum(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v == "" || SanitizeName(v) != v {
			return false
		}
	}
	return true
}

// SanitizeName maps name onto the Avro name alphabet
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 1)
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

func uniqueName(name string, used map[string]bool) string {
	candidate := name
	for n := 2; used[candidate]; n++ {
		candidate = name + "_" + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}
