// Package config holds the runtime settings shared by the commands.
package config

import (
	"os"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
)

// Config holds all application configuration settings. The CLI layer
// populates it from flags, environment, and an optional config file.
type Config struct {
	// Project settings
	RootDir string

	// Logging settings
	Verbose   bool
	Quiet     bool
	LogLevel  string
	NoColor   bool
	UseColors bool

	// Processing settings
	Concurrent bool
	MaxWorkers int
	Timeout    time.Duration

	// Scan filtering
	IncludeHidden bool
	CustomIgnore  []string

	// Output format
	JSONOutput  bool
	ShowSkipped bool

	// Version info
	Version string
}

// Default returns a Config with the built-in defaults applied.
func Default() *Config {
	return &Config{
		RootDir:    ".",
		LogLevel:   "info",
		Concurrent: true,
		MaxWorkers: runtime.NumCPU(),
		Version:    "dev",
	}
}

// Finalize derives the settings that depend on other settings and on the
// environment, such as whether colored output is usable.
func (c *Config) Finalize() {
	if c.MaxWorkers < 1 {
		c.MaxWorkers = runtime.NumCPU()
	}

	if c.Verbose {
		c.LogLevel = "debug"
	} else if c.Quiet && c.LogLevel == "info" {
		c.LogLevel = "warn"
	}

	c.UseColors = !c.NoColor && !c.JSONOutput &&
		isatty.IsTerminal(os.Stdout.Fd())
}
