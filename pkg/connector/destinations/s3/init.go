package s3

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
)

func init() {
	// Register the S3 destination connector metadata
	registry.MustRegisterProvider(Provider())
}
