package snowflake

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
)

func init() {
	// Register Snowflake destination connector metadata
	registry.MustRegisterProvider(Provider())
}
