package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/nebula-schemagen/pkg/errors"
)

// Load reads a YAML file into config, replacing ${VAR} references with
// environment values first. Keys missing from the file keep their current value.
func Load(filePath string, config interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: path comes from the operator
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to read config file").
			WithDetail("path", filePath)
	}

	content := substituteEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to parse YAML").
			WithDetail("path", filePath)
	}
	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	var b strings.Builder
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		b.WriteString(content[:start])
		b.WriteString(os.Getenv(content[start+2 : end]))
		content = content[end+1:]
	}
	b.WriteString(content)
	return b.String()
}
