// Package testhelpers provides shared setup for repository and handler
// tests.
package testhelpers

import "github.com/jonesrussell/keyword-monitor/internal/logger"

// NewTestLogger creates a logger suitable for testing (discards output).
func NewTestLogger() logger.Logger {
	return logger.NewNop()
}
