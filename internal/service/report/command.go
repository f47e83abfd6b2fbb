// Package report renders extracted version metadata for the build system
// and the documentation generator: to stdout for inspection or to a stamp
// file embedded into build artifacts.
package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diffpy/liga/internal/config"
	"github.com/diffpy/liga/internal/gitinfo"
	"github.com/diffpy/liga/internal/logger"
)

// Options contains inputs for the report entry point.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Repository overrides the configured repository directory.
	Repository string
	// Format overrides the configured output format (text, json or yaml).
	Format string
	// Output overrides the configured output file. Empty keeps the
	// configured destination; "-" forces standard output.
	Output string
	// LogLevel overrides the configured diagnostic level.
	LogLevel string
	// Stdout receives the rendered metadata when no output file is set.
	// Defaults to os.Stdout.
	Stdout io.Writer
	// Provider supplies version metadata. Built from settings when nil;
	// tests inject a fake here.
	Provider *gitinfo.Provider
}

// stampFilePermissions is the file mode for written stamp files.
const stampFilePermissions = 0o644

// Run extracts version metadata from the configured repository and renders
// it to the configured destination.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "liga-gitinfo")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Command line arguments override the settings file.
	if opts.Repository != "" {
		cfg.Repository = opts.Repository
	}

	if opts.Format != "" {
		cfg.Format = opts.Format
	}

	switch opts.Output {
	case "":
	case "-":
		cfg.Output = ""
	default:
		cfg.Output = opts.Output
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if lvl, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(lvl)
	}

	provider := opts.Provider
	if provider == nil {
		provider = gitinfo.NewProvider(
			gitinfo.WithDir(cfg.Repository),
			gitinfo.WithAttempts(cfg.Attempts),
		)
	}

	logger.InfoKV(ctx, "Extracting version metadata", "repository", cfg.Repository)

	info, err := provider.Get(ctx)
	if err != nil {
		return fmt.Errorf("extract version metadata: %w", err)
	}

	payload, err := Render(info, cfg.Format)
	if err != nil {
		return err
	}

	if cfg.Output == "" {
		out := opts.Stdout
		if out == nil {
			out = os.Stdout
		}

		_, err = out.Write(payload)

		return err
	}

	if err = os.WriteFile(filepath.Clean(cfg.Output), payload, stampFilePermissions); err != nil {
		return fmt.Errorf("write stamp file: %w", err)
	}

	logger.InfoKV(ctx, "Wrote version stamp", "path", cfg.Output, "version", info.Version)

	return nil
}
