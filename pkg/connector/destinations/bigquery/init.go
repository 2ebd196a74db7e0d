package bigquery

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
)

func init() {
	// Register BigQuery destination connector metadata
	registry.MustRegisterProvider(Provider())
}
