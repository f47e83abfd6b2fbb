// Package logger wraps a global zap sugared logger with level management
// and context helpers so every command logs through the same instance.
package logger
