package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a configuration document. JSON is attempted first and YAML is
// used as a fallback so hand-written configs can use either syntax. The
// result is normalised and validated; source only decorates error messages.
func Parse(data []byte, source string) (Config, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: document %s is empty", source)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON (%v) or YAML (%v)", source, err, yamlErr)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", source, err)
	}
	return cfg, nil
}

// MustParse panics when the document cannot be parsed. Useful for tests and
// embedded defaults.
func MustParse(data []byte, source string) Config {
	cfg, err := Parse(data, source)
	if err != nil {
		panic(err)
	}
	return cfg
}
