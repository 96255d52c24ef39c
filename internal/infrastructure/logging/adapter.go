// Package logging adapts the zap-backed logger to the application's
// Logger port.
package logging

import (
	"context"

	"github.com/shiraberu/pricing-go/internal/application/port"
	"github.com/shiraberu/pricing-go/pkg/logger"
)

// Adapter wraps *logger.Logger to satisfy port.Logger. The wrapper exists
// because With and WithContext must return the port interface, not the
// concrete type.
type Adapter struct {
	l *logger.Logger
}

// NewAdapter wraps a concrete logger as a port.Logger.
func NewAdapter(l *logger.Logger) *Adapter {
	return &Adapter{l: l}
}

var _ port.Logger = (*Adapter)(nil)

// Debug logs a debug message with optional key-value pairs.
func (a *Adapter) Debug(msg string, keysAndValues ...interface{}) {
	a.l.Debug(msg, keysAndValues...)
}

// Info logs an info message with optional key-value pairs.
func (a *Adapter) Info(msg string, keysAndValues ...interface{}) {
	a.l.Info(msg, keysAndValues...)
}

// Warn logs a warning message with optional key-value pairs.
func (a *Adapter) Warn(msg string, keysAndValues ...interface{}) {
	a.l.Warn(msg, keysAndValues...)
}

// Error logs an error message with optional key-value pairs.
func (a *Adapter) Error(msg string, keysAndValues ...interface{}) {
	a.l.Error(msg, keysAndValues...)
}

// With returns a logger with additional context fields.
func (a *Adapter) With(keysAndValues ...interface{}) port.Logger {
	return &Adapter{l: a.l.With(keysAndValues...)}
}

// WithContext returns a logger with context information.
func (a *Adapter) WithContext(ctx context.Context) port.Logger {
	return &Adapter{l: a.l.WithContext(ctx)}
}
