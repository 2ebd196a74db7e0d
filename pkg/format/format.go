// Package format defines the schema format plugin contract and selects the
// format requested for a run.
//
// Formats live in sub-packages (jsonschema, openapi, avro, arrow) and register
// themselves with the connector registry from init(). Linking a format package
// into the binary is all it takes to make it selectable by name.
package format

import (
	"iter"
	"sort"
	"strings"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

// Descriptor identifies a schema format
type Descriptor struct {
	// Name is the value callers select the format by
	Name        string
	Description string
	MediaType   string
}

// Format renders connector schemas in one target syntax.
//
// Render must be deterministic: identical input yields byte-identical output.
type Format interface {
	Descriptor() Descriptor
	// FieldFilter decides which connector fields this format publishes
	FieldFilter() schema.FieldFilter
	Render(s *schema.Schema) ([]byte, error)
}

// Validator is implemented by formats that can check a rendered document
// against the rules of their target syntax.
type Validator interface {
	Validate(content []byte) error
}

// Select returns the discovered format whose name equals requested. The match
// is exact and case-sensitive.
//
// It fails with ErrorTypeFormatNotFound when nothing was discovered or nothing
// matches, and with ErrorTypeConflict when several formats share the name.
func Select(requested string, formats iter.Seq[Format]) (Format, error) {
	available := Names(formats)
	if len(available) == 0 {
		return nil, errors.New(errors.ErrorTypeFormatNotFound, "no schema formats found").
			WithDetail("format", requested)
	}

	var matches []Format
	for f := range formats {
		if f.Descriptor().Name == requested {
			matches = append(matches, f)
		}
	}

	switch {
	case len(matches) == 0:
		return nil, errors.New(errors.ErrorTypeFormatNotFound, "no schema format matches the requested name").
			WithDetail("format", requested).
			WithDetail("available", strings.Join(available, ","))
	case len(matches) > 1:
		return nil, errors.New(errors.ErrorTypeConflict, "several schema formats are registered under the requested name").
			WithDetail("format", requested).
			WithDetail("count", len(matches))
	}

	return matches[0], nil
}

// Names returns the sorted names of the given formats. Select reports them
// when the requested name is unknown.
func Names(formats iter.Seq[Format]) []string {
	var names []string
	for f := range formats {
		names = append(names, f.Descriptor().Name)
	}
	sort.Strings(names)
	return names
}
