package schema

import "github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"

// FieldFilter decides whether a connector field appears in the generated
// schema. It returns true to include the field.
type FieldFilter func(metadata.Field) bool

// IncludeAll keeps every field
func IncludeAll(metadata.Field) bool { return true }

// ExcludeInternal drops fields marked internal
func ExcludeInternal(f metadata.Field) bool { return !f.Internal }

// ExcludeDeprecated drops deprecated fields
func ExcludeDeprecated(f metadata.Field) bool { return !f.Deprecated }

// ExcludePasswords drops secret fields
func ExcludePasswords(f metadata.Field) bool { return f.Type != metadata.TypePassword }

// ExcludeNames drops fields with any of the given names, at any depth
func ExcludeNames(names ...string) FieldFilter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(f metadata.Field) bool {
		_, excluded := set[f.Name]
		return !excluded
	}
}

// All keeps a field only when every filter keeps it
func All(filters ...FieldFilter) FieldFilter {
	return func(f metadata.Field) bool {
		for _, filter := range filters {
			if filter != nil && !filter(f) {
				return false
			}
		}
		return true
	}
}
