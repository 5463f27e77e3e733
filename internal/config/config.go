// Package config provides configuration loading for Quarz.
//
// Configuration files may be TOML or YAML; the format is chosen by
// file extension. A missing file is not an error: defaults apply.
// A Watcher can reload the file on change so history settings take
// effect without restarting the editor.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Errors returned by configuration loading.
var (
	ErrUnknownFormat = errors.New("unknown config file format")
)

// Default configuration values.
const (
	// DefaultMinDistance is the history merge threshold in bytes.
	DefaultMinDistance = 1000

	// DefaultMaxEntries is the history backward-stack cap.
	DefaultMaxEntries = 30
)

// Config is the root configuration.
type Config struct {
	History HistoryConfig `toml:"history" yaml:"history"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// HistoryConfig configures the location history.
type HistoryConfig struct {
	// MinDistance is the merge threshold in bytes: motions closer
	// than this within one buffer coalesce into one history point.
	MinDistance int64 `toml:"min_distance" yaml:"min_distance"`

	// MaxEntries caps the backward stack.
	MaxEntries int `toml:"max_entries" yaml:"max_entries"`

	// ExcludePatterns lists glob patterns (filepath.Match syntax)
	// naming buffers whose positions are never recorded, such as
	// transient helper panes.
	ExcludePatterns []string `toml:"exclude_patterns" yaml:"exclude_patterns"`

	// TriggerCommands lists the command names whose completion
	// records the cursor position.
	TriggerCommands []string `toml:"trigger_commands" yaml:"trigger_commands"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is the minimum level to emit: debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		History: HistoryConfig{
			MinDistance:     DefaultMinDistance,
			MaxEntries:      DefaultMaxEntries,
			ExcludePatterns: []string{"*scratch*", "*completions*", "*minibuf*"},
			TriggerCommands: []string{"insert", "delete", "paste"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, layered over the defaults.
// If the file does not exist the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		err = unmarshalTOML(data, &cfg)
	case ".yaml", ".yml":
		err = unmarshalYAML(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, &ParseError{Path: path, Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration values.
func (c Config) Validate() error {
	if c.History.MinDistance <= 0 {
		return fmt.Errorf("history.min_distance must be positive, got %d", c.History.MinDistance)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive, got %d", c.History.MaxEntries)
	}
	for _, pattern := range c.History.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("history.exclude_patterns: bad pattern %q: %w", pattern, err)
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
