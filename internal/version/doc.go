// Package version exposes build metadata for the tool itself.
//
// Variables Version, Commit, and BuildTime are injected at build time via
// Go ldflags and fall back to the module build info for local builds.
// Helper functions Short and Full render the version string for CLI output and logs.
package version
