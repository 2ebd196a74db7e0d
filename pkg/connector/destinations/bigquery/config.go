// Package bigquery describes the Google BigQuery destination connector.
package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the BigQuery destination
const ID = "bigquery"

// Config is the configuration accepted by the BigQuery destination
type Config struct {
	ProjectID       string `json:"project_id" required:"true" group:"connection" order:"1" importance:"high"`
	DatasetID       string `json:"dataset_id" required:"true" group:"connection" order:"2" importance:"high"`
	TableID         string `json:"table_id" required:"true" group:"connection" order:"3" importance:"high"`
	CredentialsPath string `json:"credentials_path" group:"connection" order:"4" desc:"Service account key file, empty uses application default credentials"`
	Location        string `json:"location" default:"US" group:"connection" order:"5"`

	CreateDisposition string `json:"create_disposition" group:"load" order:"1"`
	WriteDisposition  string `json:"write_disposition" group:"load" order:"2"`
	AutoDetectSchema  bool   `json:"auto_detect_schema" default:"true" group:"load" order:"3"`
	EnableStreaming   bool   `json:"enable_streaming" default:"false" group:"load" order:"4" desc:"Use the streaming insert API instead of load jobs"`
	StreamingBuffer   int    `json:"streaming_buffer" default:"10000" group:"load" order:"5" importance:"low"`

	BatchTimeout         time.Duration `json:"batch_timeout" default:"30s" group:"load" order:"6"`
	MaxConcurrentBatches int           `json:"max_concurrent_batches" default:"4" group:"load" order:"7"`

	Partitioning Partitioning `json:"partitioning" group:"partitioning"`

	shared.Base
}

// Partitioning configures time partitioning and clustering of the target table
type Partitioning struct {
	Field                  string   `json:"field" order:"1" desc:"Column to partition by, empty partitions by ingestion time"`
	Type                   string   `json:"type" order:"2"`
	ClusteringFields       []string `json:"clustering_fields" order:"3" desc:"Up to four columns to cluster by"`
	RequirePartitionFilter bool     `json:"require_partition_filter" default:"false" order:"4"`
}

// WriteDispositions lists the table write dispositions of load jobs
func WriteDispositions() []string {
	return []string{
		string(bigquery.WriteAppend),
		string(bigquery.WriteTruncate),
		string(bigquery.WriteEmpty),
	}
}

// CreateDispositions lists the table create dispositions of load jobs
func CreateDispositions() []string {
	return []string{string(bigquery.CreateIfNeeded), string(bigquery.CreateNever)}
}

// PartitioningTypes lists the supported time partitioning granularities
func PartitioningTypes() []string {
	return []string{
		string(bigquery.HourPartitioningType),
		string(bigquery.DayPartitioningType),
		string(bigquery.MonthPartitioningType),
		string(bigquery.YearPartitioningType),
	}
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "Google BigQuery",
		Type:        metadata.ConnectorTypeDestination,
		Version:     "1.0.0",
		Description: "BigQuery destination connector with load jobs and streaming inserts",
	}
}

// Provider returns the metadata provider of the BigQuery destination
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.SetEnum("create_disposition", CreateDispositions()...),
		shared.SetDefault("create_disposition", string(bigquery.CreateIfNeeded)),
		shared.SetEnum("write_disposition", WriteDispositions()...),
		shared.SetDefault("write_disposition", string(bigquery.WriteAppend)),
		shared.SetEnum("partitioning.type", PartitioningTypes()...),
		shared.SetDefault("partitioning.type", string(bigquery.DayPartitioningType)),
	)
}
