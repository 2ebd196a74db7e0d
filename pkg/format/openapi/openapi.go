// Package openapi renders connector schemas as OpenAPI 3.1 documents. The
// connector configuration is published under components.schemas keyed by the
// connector id.
package openapi

import (
	jschema "github.com/invopop/jsonschema"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format/jsonschema"
	"github.com/ajitpratap0/nebula-schemagen/pkg/json"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

const (
	// Name selects this format
	Name = "openapi"

	// Version is the OpenAPI version documents declare
	Version = "3.1.0"

	dialect        = "https://spec.openapis.org/oas/3.1/dialect/base"
	defaultVersion = "1.0.0"
)

func init() {
	registry.MustRegisterFormat(New())
}

// Document is the subset of the OpenAPI object model the renderer emits
type Document struct {
	OpenAPI           string     `json:"openapi"`
	Info              Info       `json:"info"`
	JSONSchemaDialect string     `json:"jsonSchemaDialect"`
	Components        Components `json:"components"`
}

// Info is the OpenAPI info object
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Components holds reusable schemas
type Components struct {
	Schemas map[string]*jschema.Schema `json:"schemas"`
}

// Format renders OpenAPI documents
type Format struct{}

// New creates the OpenAPI format
func New() *Format {
	return &Format{}
}

// Descriptor implements format.Format
func (f *Format) Descriptor() format.Descriptor {
	return format.Descriptor{
		Name:        Name,
		Description: "OpenAPI " + Version + " components document",
		MediaType:   "application/vnd.oai.openapi+json",
	}
}

// FieldFilter hides internal and deprecated fields
func (f *Format) FieldFilter() schema.FieldFilter {
	return schema.All(schema.ExcludeInternal, schema.ExcludeDeprecated)
}

// Render implements format.Format
func (f *Format) Render(s *schema.Schema) ([]byte, error) {
	id, _ := s.Extensions[schema.ExtConnectorID].(string)
	if id == "" {
		return nil, errors.New(errors.ErrorTypeRender, "schema has no connector id").
			WithDetail("format", Name)
	}

	version, _ := s.Extensions[schema.ExtVersion].(string)
	if version == "" {
		version = defaultVersion
	}

	doc := Document{
		OpenAPI: Version,
		Info: Info{
			Title:       s.Title,
			Description: s.Description,
			Version:     version,
		},
		JSONSchemaDialect: dialect,
		Components: Components{
			Schemas: map[string]*jschema.Schema{id: jsonschema.Convert(s)},
		},
	}

	out, err := json.MarshalDocument(doc)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeRender, "failed to encode OpenAPI document").
			WithDetail("format", Name).
			WithDetail("connector", id)
	}
	return out, nil
}

// Validate checks the document header and compiles every component schema
func (f *Format) Validate(content []byte) error {
	var doc struct {
		OpenAPI    string `json:"openapi"`
		Components struct {
			Schemas map[string]json.RawMessage `json:"schemas"`
		} `json:"components"`
	}
	if err := json.Unmarshal(content, &doc); err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "rendered OpenAPI document is not valid JSON")
	}
	if doc.OpenAPI != Version {
		return errors.New(errors.ErrorTypeValidation, "unexpected OpenAPI version").
			WithDetail("openapi", doc.OpenAPI)
	}
	if len(doc.Components.Schemas) == 0 {
		return errors.New(errors.ErrorTypeValidation, "OpenAPI document has no component schemas")
	}

	for name, raw := range doc.Components.Schemas {
		if err := jsonschema.Compile(raw); err != nil {
			return errors.Wrap(err, errors.ErrorTypeValidation, "invalid component schema").
				WithDetail("schema", name)
		}
	}
	return nil
}
