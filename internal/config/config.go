// Package config loads the command-line tool's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FileName is the config file looked up under the user config directory.
const FileName = "cratemeta.yaml"

// Config holds settings shared by every subcommand. Zero fields mean
// "use the default".
type Config struct {
	// SeratoDir is the library directory that holds Subcrates/.
	SeratoDir string `yaml:"serato_dir,omitempty"`

	// MountRoot is joined to track paths, which crates store relative to
	// the drive they live on.
	MountRoot string `yaml:"mount_root,omitempty"`

	// Concurrency bounds parallel crate and track decodes.
	Concurrency int `yaml:"concurrency,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// DefaultPath returns the config path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cratemeta", FileName), nil
}

// Load reads the config at path. A missing file yields an empty Config,
// so callers can always apply flag overrides on top.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, defaulting to warn.
func (c *Config) Level() (slog.Level, error) {
	if c.LogLevel == "" {
		return slog.LevelWarn, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Merge overrides fields of c with the non-zero fields of o.
func (c *Config) Merge(o Config) {
	if o.SeratoDir != "" {
		c.SeratoDir = o.SeratoDir
	}
	if o.MountRoot != "" {
		c.MountRoot = o.MountRoot
	}
	if o.Concurrency != 0 {
		c.Concurrency = o.Concurrency
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
