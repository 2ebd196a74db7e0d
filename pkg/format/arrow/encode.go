package arrow

import "github.com/apache/arrow-go/v18/arrow"

type document struct {
	Schema jsonSchema `json:"schema"`
}

type jsonSchema struct {
	Fields   []jsonField    `json:"fields"`
	Metadata []jsonMetadata `json:"metadata,omitempty"`
}

type jsonField struct {
	Name     string         `json:"name"`
	Nullable bool           `json:"nullable"`
	Type     jsonType       `json:"type"`
	Children []jsonField    `json:"children"`
	Metadata []jsonMetadata `json:"metadata,omitempty"`
}

type jsonType struct {
	Name       string `json:"name"`
	BitWidth   int    `json:"bitWidth,omitempty"`
	IsSigned   *bool  `json:"isSigned,omitempty"`
	Precision  string `json:"precision,omitempty"`
	KeysSorted *bool  `json:"keysSorted,omitempty"`
}

type jsonMetadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func encodeSchema(s *arrow.Schema) jsonSchema {
	md := s.Metadata()
	return jsonSchema{
		Fields:   encodeFields(s.Fields()),
		Metadata: encodeMetadata(md),
	}
}

func encodeFields(fields []arrow.Field) []jsonField {
	out := make([]jsonField, 0, len(fields))
	for _, f := range fields {
		out = append(out, encodeField(f))
	}
	return out
}

func encodeField(f arrow.Field) jsonField {
	jf := jsonField{
		Name:     f.Name,
		Nullable: f.Nullable,
		Children: []jsonField{},
		Metadata: encodeMetadata(f.Metadata),
	}

	signed := true
	switch dt := f.Type.(type) {
	case *arrow.BooleanType:
		jf.Type = jsonType{Name: "bool"}
	case *arrow.Int32Type:
		jf.Type = jsonType{Name: "int", BitWidth: 32, IsSigned: &signed}
	case *arrow.Int64Type:
		jf.Type = jsonType{Name: "int", BitWidth: 64, IsSigned: &signed}
	case *arrow.Float64Type:
		jf.Type = jsonType{Name: "floatingpoint", Precision: "DOUBLE"}
	case *arrow.StringType:
		jf.Type = jsonType{Name: "utf8"}
	case *arrow.MapType:
		sorted := dt.KeysSorted
		jf.Type = jsonType{Name: "map", KeysSorted: &sorted}
		jf.Children = []jsonField{{
			Name:     "entries",
			Type:     jsonType{Name: "struct"},
			Children: encodeFields([]arrow.Field{dt.KeyField(), dt.ItemField()}),
		}}
	case *arrow.ListType:
		jf.Type = jsonType{Name: "list"}
		jf.Children = encodeFields([]arrow.Field{dt.ElemField()})
	case *arrow.StructType:
		jf.Type = jsonType{Name: "struct"}
		jf.Children = encodeFields(dt.Fields())
	default:
		jf.Type = jsonType{Name: dt.Name()}
	}
	return jf
}

func encodeMetadata(md arrow.Metadata) []jsonMetadata {
	if md.Len() == 0 {
		return nil
	}
	keys, values := md.Keys(), md.Values()
	out := make([]jsonMetadata, 0, len(keys))
	for i := range keys {
		out = append(out, jsonMetadata{Key: keys[i], Value: values[i]})
	}
	return out
}
