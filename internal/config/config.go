package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds settings for version metadata extraction.
type Config struct {
	// Repository is the directory the git queries run in.
	Repository string `yaml:"repository"`
	// Format selects the output rendering: text, json or yaml.
	Format string `yaml:"format"`
	// Output is the file the rendered metadata is written to.
	// Empty means standard output.
	Output string `yaml:"output"`
	// Attempts bounds the number of describe query retries.
	Attempts int `yaml:"attempts"`
	// LogLevel sets the minimum diagnostic level.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for extraction settings.
	DefaultConfigFilename = "liga-gitinfo.yaml"

	// DefaultFormat is the rendering used when none is configured.
	DefaultFormat = "text"

	// DefaultAttempts is the describe retry bound used when none is configured.
	DefaultAttempts = 1

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownFormat is returned for output formats other than text, json and yaml.
	errUnknownFormat = errors.New("unknown output format")
	// errNegativeAttempts is returned when the retry bound is negative.
	errNegativeAttempts = errors.New("attempts must not be negative")
)

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	return &Config{
		Repository: ".",
		Format:     DefaultFormat,
		Attempts:   DefaultAttempts,
		LogLevel:   "info",
	}
}

// Load reads configuration from the provided path and validates it.
// With an empty path the default filename is tried and, when the file is
// absent, built-in defaults are returned so the tool works without any
// configuration at all.
func Load(path string) (*Config, error) {
	optional := path == ""
	if optional {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills in defaults for
// unspecified fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Repository == "" {
		cfg.Repository = "."
	}

	switch cfg.Format {
	case "":
		cfg.Format = DefaultFormat
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, cfg.Format)
	}

	if cfg.Attempts < 0 {
		return fmt.Errorf("%w: %d", errNegativeAttempts, cfg.Attempts)
	}

	if cfg.Attempts == 0 {
		cfg.Attempts = DefaultAttempts
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return nil
}
