// Package gcs describes the Google Cloud Storage destination connector.
package gcs

import (
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the GCS destination
const ID = "gcs"

// Config is the configuration accepted by the GCS destination
type Config struct {
	Bucket          string `json:"bucket" required:"true" group:"storage" order:"1" importance:"high" desc:"GCS bucket name"`
	ProjectID       string `json:"project_id" required:"true" group:"storage" order:"2" desc:"Google Cloud project ID"`
	Prefix          string `json:"prefix" group:"storage" order:"3" desc:"Object name prefix for uploaded files"`
	CredentialsFile string `json:"credentials_file" group:"credentials" order:"1" desc:"Path to Google Cloud service account credentials JSON file"`
	Scope           string `json:"scope" group:"credentials" order:"2" importance:"low" desc:"OAuth scope requested for the client"`

	FileFormat        string        `json:"file_format" default:"parquet" enum:"csv,json,jsonl,parquet,avro,orc" group:"output" order:"1" desc:"Output file format"`
	Compression       string        `json:"compression" default:"snappy" enum:"none,gzip,snappy,lz4,zstd" group:"output" order:"2" desc:"Compression type"`
	PartitionStrategy string        `json:"partition_strategy" default:"daily" enum:"none,hourly,daily,monthly,yearly" group:"output" order:"3" desc:"Data partitioning strategy"`
	BatchSize         int           `json:"batch_size" default:"10000" group:"output" order:"4" desc:"Number of records per file"`
	ChunkSize         int           `json:"chunk_size" group:"upload" order:"1" desc:"Resumable upload chunk size in bytes, 0 uploads in a single request"`
	UploadTimeout     time.Duration `json:"upload_timeout" default:"5m0s" group:"upload" order:"2" desc:"Upload timeout duration"`
	MaxConcurrency    int           `json:"max_concurrency" default:"10" group:"upload" order:"3" desc:"Maximum concurrent uploads"`

	shared.Base
}

// Scopes lists the OAuth scopes of the storage client
func Scopes() []string {
	return []string{storage.ScopeReadOnly, storage.ScopeReadWrite, storage.ScopeFullControl}
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "Google Cloud Storage",
		Type:        metadata.ConnectorTypeDestination,
		Version:     "1.0.0",
		Description: "Google Cloud Storage destination connector with Parquet support",
	}
}

// Provider returns the metadata provider of the GCS destination
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetEnum("scope", Scopes()...),
		shared.SetDefault("scope", storage.ScopeReadWrite),
		shared.SetDefault("chunk_size", int64(googleapi.DefaultUploadChunkSize)),
	)
}
