// Package testutil provides testing utilities for schemagen
package testutil

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/format"
	"github.com/ajitpratap0/nebula-schemagen/pkg/schema"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// Provider returns a connector provider with the given id and fields
func Provider(id string, fields ...metadata.Field) metadata.Provider {
	return metadata.ProviderFunc(func() metadata.Metadata {
		return &metadata.Static{
			Desc:      metadata.Descriptor{ID: id, Name: id, Type: metadata.ConnectorTypeSource},
			FieldList: fields,
		}
	})
}

// Format is a scriptable schema format. Its output lists the root property
// names, one per line, after the connector id.
type Format struct {
	Name   string
	Filter schema.FieldFilter
	// Err is returned by Render when set
	Err error
	// Invalid makes Validate fail
	Invalid error
}

// Descriptor implements format.Format
func (f *Format) Descriptor() format.Descriptor {
	return format.Descriptor{Name: f.Name, MediaType: "text/plain"}
}

// FieldFilter implements format.Format
func (f *Format) FieldFilter() schema.FieldFilter {
	return f.Filter
}

// Render implements format.Format
func (f *Format) Render(s *schema.Schema) ([]byte, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	out := []byte(s.Extensions[schema.ExtConnectorID].(string) + "\n")
	for _, p := range s.Properties {
		out = append(out, p.Name+"\n"...)
	}
	return out, nil
}

// Validate implements format.Validator
func (f *Format) Validate([]byte) error {
	return f.Invalid
}

// ReadTree returns the content of every regular file under root, keyed by
// slash separated path relative to root.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read tree %s: %v", root, err)
	}
	return files
}
