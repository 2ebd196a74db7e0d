// Package registry discovers connector metadata providers and schema formats.
//
// Connector and format packages register themselves from init(); the binary
// decides what is available by which packages it links in (see
// cmd/schemagen). Callers enumerate what was registered without knowing any
// implementation in advance.
package registry

import (
	"iter"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/logger"
)

// Registry holds connector providers and schema formats in registration order
type Registry struct {
	providers []metadata.Provider
	formats   []format.Format
	mu        sync.RWMutex
}

// Global registry instance
var globalRegistry = NewRegistry()

// NewRegistry creates a new, empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// log resolves the global logger on every call; registration from init()
// runs before the CLI configures logging.
func (r *Registry) log() *zap.Logger {
	return logger.With(zap.String("component", "plugin_registry"))
}

// RegisterProvider adds a connector metadata provider. Providers are not
// deduplicated; colliding connector ids are detected by the generator.
func (r *Registry) RegisterProvider(p metadata.Provider) error {
	if p == nil {
		return errors.New(errors.ErrorTypeConfig, "connector provider must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = append(r.providers, p)
	r.log().Debug("connector provider registered", zap.Int("position", len(r.providers)))
	return nil
}

// RegisterFormat adds a schema format. Formats sharing a name are kept; the
// format selector rejects ambiguous names.
func (r *Registry) RegisterFormat(f format.Format) error {
	if f == nil {
		return errors.New(errors.ErrorTypeConfig, "schema format must not be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.formats = append(r.formats, f)
	r.log().Debug("schema format registered", zap.String("format", f.Descriptor().Name))
	return nil
}

// DiscoverConnectorProviders returns the registered providers in registration
// order. The sequence reads a snapshot taken when it is created; an empty
// sequence is a valid result.
func (r *Registry) DiscoverConnectorProviders() iter.Seq[metadata.Provider] {
	r.mu.RLock()
	snapshot := slices.Clone(r.providers)
	r.mu.RUnlock()
	return slices.Values(snapshot)
}

// DiscoverSchemaFormats returns the registered formats in registration order
func (r *Registry) DiscoverSchemaFormats() iter.Seq[format.Format] {
	r.mu.RLock()
	snapshot := slices.Clone(r.formats)
	r.mu.RUnlock()
	return slices.Values(snapshot)
}

// Counts returns how many providers and formats are registered
func (r *Registry) Counts() (providers, formats int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers), len(r.formats)
}

// Reset removes everything (mainly for testing)
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers = nil
	r.formats = nil
}

// Global registry functions

// RegisterProvider registers a connector provider in the global registry
func RegisterProvider(p metadata.Provider) error {
	return globalRegistry.RegisterProvider(p)
}

// RegisterFormat registers a schema format in the global registry
func RegisterFormat(f format.Format) error {
	return globalRegistry.RegisterFormat(f)
}

// MustRegisterProvider is RegisterProvider for init() functions
func MustRegisterProvider(p metadata.Provider) {
	if err := RegisterProvider(p); err != nil {
		panic(err)
	}
}

// MustRegisterFormat is RegisterFormat for init() functions
func MustRegisterFormat(f format.Format) {
	if err := RegisterFormat(f); err != nil {
		panic(err)
	}
}

// DiscoverConnectorProviders enumerates the global registry's providers
func DiscoverConnectorProviders() iter.Seq[metadata.Provider] {
	return globalRegistry.DiscoverConnectorProviders()
}

// DiscoverSchemaFormats enumerates the global registry's formats
func DiscoverSchemaFormats() iter.Seq[format.Format] {
	return globalRegistry.DiscoverSchemaFormats()
}

// GetRegistry returns the global registry instance.
func GetRegistry() *Registry {
	return globalRegistry
}
