// Package config defines extraction settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the repository directory, the output format and
// destination, the describe retry bound and the log level.
package config
