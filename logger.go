// logger.go
// Package thronesaudit provides shared utilities for the go_thrones_audit package.
package thronesaudit

import (
	"github.com/baditaflorin/go_thrones_audit/internal/adapters/logger"
	"github.com/baditaflorin/go_thrones_audit/internal/ports"
)

// createDefaultLogger creates and returns a default logger instance.
func createDefaultLogger() (ports.Logger, error) {
	return logger.NewStdLogger()
}
