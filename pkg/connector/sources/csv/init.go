package csv

import (
	"github.com/ajitpratap0/nebula-schemagen/pkg/connector/registry"
)

func init() {
	registry.MustRegisterProvider(Provider())
}
