package schema

import (
	"math"
	"sort"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
)

// Build synthesizes the schema of one connector. The filter is applied to
// every field at every depth; a nil filter keeps everything.
//
// Build is pure: it performs no I/O, does not modify md and copies every value
// it keeps, so the result holds no reference into the connector metadata.
func Build(md metadata.Metadata, filter FieldFilter) *Schema {
	if filter == nil {
		filter = IncludeAll
	}

	d := md.Descriptor()
	root := &Schema{
		Kind:        KindObject,
		Title:       d.Name,
		Description: d.Description,
		Extensions: map[string]any{
			ExtConnectorID:   d.ID,
			ExtConnectorName: d.Name,
		},
	}
	if d.Type != "" {
		root.Extensions[ExtConnectorType] = string(d.Type)
	}
	if d.Version != "" {
		root.Extensions[ExtVersion] = d.Version
	}

	root.Properties = buildProperties(md.Fields(), filter)
	return root
}

func buildProperties(fields []metadata.Field, filter FieldFilter) []*Property {
	kept := make([]metadata.Field, 0, len(fields))
	for _, f := range fields {
		if filter(f) {
			kept = append(kept, f)
		}
	}
	sortFields(kept)

	props := make([]*Property, 0, len(kept))
	for _, f := range kept {
		props = append(props, &Property{
			Name:     f.Name,
			Required: f.Required,
			Schema:   fieldSchema(f, filter),
		})
	}
	return props
}

// sortFields groups fields by category in order of first appearance. Inside a
// category, fields with an explicit order come first; ties keep declaration order.
func sortFields(fields []metadata.Field) {
	rank := make(map[string]int)
	for _, f := range fields {
		if _, ok := rank[f.Group]; !ok {
			rank[f.Group] = len(rank)
		}
	}

	order := func(f metadata.Field) int {
		if f.GroupOrder > 0 {
			return f.GroupOrder
		}
		return math.MaxInt
	}

	sort.SliceStable(fields, func(i, j int) bool {
		ri, rj := rank[fields[i].Group], rank[fields[j].Group]
		if ri != rj {
			return ri < rj
		}
		return order(fields[i]) < order(fields[j])
	})
}

func fieldSchema(f metadata.Field, filter FieldFilter) *Schema {
	s := typeSchema(f, filter)
	s.Title = f.DisplayName
	s.Description = f.Description
	s.Deprecated = f.Deprecated

	s.Extensions = map[string]any{ExtName: f.Name}
	if f.Group != "" {
		s.Extensions[ExtCategory] = f.Group
	}
	if f.GroupOrder > 0 {
		s.Extensions[ExtOrdinal] = f.GroupOrder
	}
	if f.Importance != "" {
		s.Extensions[ExtImportance] = string(f.Importance)
	}
	return s
}

// typeSchema maps the field type, allowed values and default onto a node.
func typeSchema(f metadata.Field, filter FieldFilter) *Schema {
	s := &Schema{}

	switch f.Type {
	case metadata.TypeBoolean:
		s.Kind = KindBoolean
	case metadata.TypeInt:
		s.Kind, s.Format = KindInteger, FormatInt32
	case metadata.TypeLong:
		s.Kind, s.Format = KindInteger, FormatInt64
	case metadata.TypeDouble:
		s.Kind, s.Format = KindNumber, FormatDouble
	case metadata.TypePassword:
		s.Kind, s.Format, s.WriteOnly = KindString, FormatPassword, true
	case metadata.TypeDuration:
		s.Kind, s.Format = KindString, FormatDuration
	case metadata.TypeList:
		s.Kind = KindArray
		s.Items = elemSchema(f.Elem, filter)
	case metadata.TypeMap:
		s.Kind = KindObject
		s.AdditionalProperties = elemSchema(f.Elem, filter)
	case metadata.TypeObject:
		s.Kind = KindObject
		s.Properties = buildProperties(f.Fields, filter)
	default:
		s.Kind = KindString
	}

	if len(f.AllowedValues) > 0 {
		s.Enum = append([]string(nil), f.AllowedValues...)
	}
	if f.Default != nil {
		s.Default = copyValue(f.Default)
	}
	return s
}

func elemSchema(elem *metadata.Field, filter FieldFilter) *Schema {
	if elem == nil {
		return &Schema{Kind: KindString}
	}
	return typeSchema(*elem, filter)
}

func copyValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		return append([]any(nil), t...)
	case map[string]string:
		m := make(map[string]string, len(t))
		for k, val := range t {
			m[k] = val
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = val
		}
		return m
	default:
		return v
	}
}
