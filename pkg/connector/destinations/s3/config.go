// Package s3 describes the Amazon S3 destination connector. Enumerations and
// upload defaults come from the AWS SDK so the schema moves with it.
package s3

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/metadata"
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/shared"
)

// ID is the connector id of the S3 destination
const ID = "s3"

// Config is the configuration accepted by the S3 destination
type Config struct {
	Bucket             string `json:"bucket" required:"true" group:"storage" order:"1" importance:"high" desc:"S3 bucket name"`
	Region             string `json:"region" required:"true" group:"storage" order:"2" importance:"high" desc:"AWS region (e.g., us-east-1)"`
	Prefix             string `json:"prefix" group:"storage" order:"3" desc:"Object key prefix for uploaded files"`
	Endpoint           string `json:"endpoint" group:"storage" order:"4" importance:"low" desc:"Custom endpoint for S3 compatible stores"`
	UsePathStyle       bool   `json:"use_path_style" default:"false" group:"storage" order:"5" importance:"low"`
	AWSAccessKeyID     string `json:"aws_access_key_id" group:"credentials" order:"1" desc:"AWS access key ID (optional if using IAM roles)"`
	AWSSecretAccessKey string `json:"aws_secret_access_key" format:"password" group:"credentials" order:"2" desc:"AWS secret access key (optional if using IAM roles)"`
	AWSSessionToken    string `json:"aws_session_token" format:"password" group:"credentials" order:"3"`

	Format       string `json:"format" default:"csv" enum:"csv,json,jsonl,parquet" group:"output" order:"1" desc:"Output file format"`
	MaxFileSize  int64  `json:"max_file_size" default:"104857600" group:"output" order:"2" desc:"Maximum file size in bytes"`
	StorageClass string `json:"storage_class" group:"output" order:"3"`
	SSE          string `json:"server_side_encryption" group:"output" order:"4"`
	KMSKeyID     string `json:"kms_key_id" group:"output" order:"5" desc:"KMS key used when server_side_encryption is aws:kms"`

	Compression shared.Compression `json:"compression" group:"output"`

	Upload Upload `json:"upload" group:"upload" desc:"Multipart upload and retry settings"`

	shared.Base
}

// Upload configures the multipart uploader and the SDK retryer
type Upload struct {
	PartSize    int64  `json:"part_size" order:"1" desc:"Multipart part size in bytes"`
	Concurrency int    `json:"concurrency" order:"2" desc:"Parts uploaded in parallel per file"`
	RetryMode   string `json:"retry_mode" order:"3"`
	MaxAttempts int    `json:"max_attempts" order:"4"`
}

// StorageClasses returns the storage classes known to the SDK
func StorageClasses() []string {
	values := types.StorageClass("").Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Encryptions returns the server side encryption modes known to the SDK
func Encryptions() []string {
	values := types.ServerSideEncryption("").Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// Descriptor returns the connector identity
func Descriptor() metadata.Descriptor {
	return metadata.Descriptor{
		ID:          ID,
		Name:        "Amazon S3",
		Type:        metadata.ConnectorTypeDestination,
		Version:     "1.0.0",
		Description: "Amazon S3 destination connector with batching and compression support",
	}
}

// Provider returns the metadata provider of the S3 destination
func Provider() metadata.Provider {
	return shared.NewProvider(Descriptor(), Config{},
		shared.WithCompression("compression"),
		shared.SetEnum("storage_class", StorageClasses()...),
		shared.SetDefault("storage_class", string(types.StorageClassStandard)),
		shared.SetEnum("server_side_encryption", Encryptions()...),
		shared.SetEnum("upload.retry_mode", string(aws.RetryModeStandard), string(aws.RetryModeAdaptive)),
		shared.SetDefault("upload.retry_mode", string(aws.RetryModeStandard)),
		shared.SetDefault("upload.part_size", manager.DefaultUploadPartSize),
		shared.SetDefault("upload.concurrency", int64(manager.DefaultUploadConcurrency)),
		shared.SetDefault("upload.max_attempts", int64(retry.DefaultMaxAttempts)),
	)
}
