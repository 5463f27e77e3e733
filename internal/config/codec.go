package config

import (
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// unmarshalTOML parses TOML data over an existing Config.
func unmarshalTOML(data []byte, cfg *Config) error {
	return toml.Unmarshal(data, cfg)
}

// unmarshalYAML parses YAML data over an existing Config.
func unmarshalYAML(data []byte, cfg *Config) error {
	return yaml.Unmarshal(data, cfg)
}
