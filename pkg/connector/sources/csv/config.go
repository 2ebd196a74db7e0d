// Package csv describes the CSV file source connector.
package csv

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the CSV source
const ID = "csv"

// Config is the configuration accepted by the CSV source
type Config struct {
	Path      string   `json:"path" required:"true" group:"file" order:"1" importance:"high" desc:"File or glob pattern to read"`
	Delimiter string   `json:"delimiter" default:"," group:"file" order:"2"`
	Quote     string   `json:"quote" default:"\"" group:"file" order:"3" importance:"low"`
	HasHeader bool     `json:"has_header" default:"true" group:"file" order:"4" desc:"Treat the first row as column names"`
	Headers   []string `json:"headers" group:"file" order:"5" desc:"Column names to use when the file has no header row"`
	SkipRows  int      `json:"skip_rows" default:"0" group:"file" order:"6"`
	Encoding  string   `json:"encoding" default:"utf-8" enum:"utf-8,utf-16,latin1" group:"file" order:"7"`

	Compression shared.Compression `json:"compression" group:"file" desc:"Compression of the input files"`

	Parallel Parallel `json:"parallel" group:"parallel" importance:"low"`

	shared.Base
}

// Parallel configures chunked parsing
type Parallel struct {
	Enabled    bool `json:"enabled" default:"false" order:"1"`
	NumWorkers int  `json:"num_workers" default:"0" order:"2" desc:"Parser workers, 0 uses the number of CPUs"`
	ChunkSize  int  `json:"chunk_size" default:"1000" order:"3" desc:"Lines handed to a worker at a time"`
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "CSV",
		Type:        metadata.ConnectorTypeSource,
		Version:     "1.0.0",
		Description: "CSV file source with optional parallel parsing",
	}
}

// Provider returns the metadata provider of the CSV source
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{}, shared.WithCompression("compression"))
}
