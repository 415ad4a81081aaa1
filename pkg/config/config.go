// Package config loads the optional .contractlint.yaml settings file.
// Command-line flags override anything set here.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds linter settings shared across a batch run.
type Config struct {
	// Glossary is the path to the external term list (.json or .yaml).
	Glossary string `yaml:"glossary"`
	// GlossaryPolicy overrides the per-contract policy: strict, warn or off.
	GlossaryPolicy string `yaml:"glossary_policy"`
	// TokenSources selects glossary token extraction: parameters,
	// artifacts, steps. Empty means all three.
	TokenSources []string `yaml:"token_sources"`
	// Threads bounds batch concurrency.
	Threads int `yaml:"threads"`
	// Format is the default output format: text, json or sarif.
	Format string `yaml:"format"`
	// SchemaCheck also runs the JSON-Schema pass before linting.
	SchemaCheck bool `yaml:"schema_check"`
	// LogLevel sets the hclog level: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Threads:  1,
		Format:   "text",
		LogLevel: "info",
	}
}

// LoadFile reads a config file with strict decoding so misspelled keys
// fail loudly instead of being ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
