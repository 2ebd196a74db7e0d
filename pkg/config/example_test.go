package config_test

import (
	"fmt"

	"github.com/ajitpratap0/nebula-schemagen/pkg/config"
)

// ExampleParseArgs shows how the positional arguments map onto a run
func ExampleParseArgs() {
	cfg, err := config.ParseArgs([]string{" openapi ", "build/schemas", "TRUE", "", "-schema"})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("format=%s dir=%s grouped=%t suffix=%s\n", cfg.Format, cfg.OutputDir, cfg.GroupPerConnector, cfg.Suffix)

	// Output:
	// format=openapi dir=build/schemas grouped=true suffix=-schema
}

// ExampleDefaultRuntimeConfig shows the settings used without configuration
func ExampleDefaultRuntimeConfig() {
	cfg := config.DefaultRuntimeConfig()

	fmt.Printf("level=%s encoding=%s workers=%d validate=%t\n", cfg.LogLevel, cfg.LogEncoding, cfg.Workers, cfg.ValidateOutput)

	// Output:
	// level=info encoding=console workers=1 validate=true
}
