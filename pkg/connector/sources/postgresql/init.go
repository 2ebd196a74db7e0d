package postgresql

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
)

func init() {
	// Register the PostgreSQL source connector metadata
	registry.MustRegisterProvider(Provider())
}
