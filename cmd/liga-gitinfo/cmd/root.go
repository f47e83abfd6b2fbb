package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diffpy/liga/internal/config"
	"github.com/diffpy/liga/internal/service/report"
	"github.com/diffpy/liga/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// format selects the output rendering.
	format string
	// output is the stamp file path, "-" for stdout.
	output string
	// logLevel overrides the diagnostic level for troubleshooting.
	logLevel string

	// rootCmd represents the base command for extracting version metadata.
	rootCmd = &cobra.Command{
		Use:   "liga-gitinfo [repository]",
		Short: "Extract version metadata from git history.",
		Long: `Extract version metadata from git history for build and documentation stamping.

Queries the nearest v-tag with git describe and the HEAD commit with git log,
derives the version string (tag body plus ".post<distance>" when commits were
made past the tag) and its parsed parts, and renders the record as text, JSON
or YAML. The repository directory can be provided as argument or loaded from
the configuration file; without either, the current directory is used.

The build system and the documentation generator consume the rendered record
to embed version strings into artifacts and generated pages.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Honor Ctrl-C while git queries are running.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use repository argument if provided, otherwise rely on config.
			var repository string
			if len(args) > 0 {
				repository = args[0]
			}

			reportOptions := &report.Options{
				ConfigPath: configPath,
				Repository: repository,
				Format:     format,
				Output:     output,
				LogLevel:   logLevel,
			}

			return report.Run(ctx, reportOptions)
		},
	}
)

// Execute runs the liga-gitinfo CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "",
		"path to configuration file (default "+config.DefaultConfigFilename+" when present)")
	rootCmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or yaml")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", `stamp file to write, "-" for stdout`)

	// Hidden troubleshooting flag.
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "diagnostic log level")

	err := rootCmd.Flags().MarkHidden("log-level")
	if err != nil {
		panic(err)
	}
}
