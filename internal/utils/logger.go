// Package utils holds the small contracts shared by the library packages.
package utils

// Logger is the leveled printf contract the library packages log
// through. Resolution code takes it as an option so callers decide where
// the debug trail goes.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// NoopLogger discards everything. It is the default for library
// components constructed without an explicit logger.
type NoopLogger struct{}

func (NoopLogger) Debug(format string, args ...interface{}) {}
func (NoopLogger) Info(format string, args ...interface{})  {}
func (NoopLogger) Warn(format string, args ...interface{})  {}
func (NoopLogger) Error(format string, args ...interface{}) {}
