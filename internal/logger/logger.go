// Package logger implements the leveled writer behind the application's
// logging interface.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Level is a log severity threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

// Logger writes level-tagged, timestamped lines to one output.
type Logger struct {
	out       io.Writer
	useColors bool
	level     Level
}

// New creates a Logger writing to out. Verbose lowers the threshold to
// debug; SetLevel can change it afterwards.
func New(out io.Writer, verbose bool, useColors bool) *Logger {
	level := LevelInfo
	if verbose {
		level = LevelDebug
	}

	return &Logger{out: out, useColors: useColors, level: level}
}

// SetLevel sets the threshold from its textual form. Unknown names keep
// the info threshold.
func (l *Logger) SetLevel(name string) {
	l.level = parseLevel(name)
}

func parseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none", "off":
		return LevelOff
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.print(LevelDebug, color.CyanString, "DEBUG", format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.print(LevelInfo, color.BlueString, "INFO", format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.print(LevelWarn, color.YellowString, "WARN", format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.print(LevelError, color.RedString, "ERROR", format, args...)
}

func (l *Logger) print(level Level, paint func(string, ...interface{}) string, tag, format string, args ...interface{}) {
	if l.level > level {
		return
	}

	if l.useColors {
		tag = paint(tag)
	}

	stamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.out, "[%s %s] %s\n", stamp, tag, fmt.Sprintf(format, args...))
}
