// Package cli defines the relic command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/relictool/relic/internal/config"
)

// version is stamped at build time with -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:           "relic",
	Short:         "License and copyright resolution for project trees",
	Long:          "Relic resolves the license and copyright information of every file in a project from file headers, nested REUSE.toml files, and the legacy flat copyright file.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .relic.yaml)")
	flags.StringP("root", "r", ".", "project root directory")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolP("verbose", "v", false, "verbose output")
	flags.BoolP("quiet", "q", false, "suppress informational output")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("json", false, "emit results as JSON")
	flags.Bool("concurrent", true, "process files concurrently")
	flags.Int("workers", 0, "worker pool size (0 = number of CPUs)")
	flags.Duration("timeout", 0, "maximum run time (e.g. 30s, 5m)")
	flags.Bool("hidden", false, "include hidden files and directories")
	flags.StringSlice("ignore", nil, "extra exclusion patterns (gitignore syntax)")

	for _, name := range []string{
		"root", "log-level", "verbose", "quiet", "no-color", "json",
		"concurrent", "workers", "timeout", "hidden", "ignore",
	} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".relic")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("RELIC")
	viper.AutomaticEnv()

	// No config file is fine; flags and defaults apply.
	_ = viper.ReadInConfig()
}

// loadConfig merges defaults, config file, environment, and flags.
func loadConfig() *config.Config {
	cfg := config.Default()

	cfg.RootDir = viper.GetString("root")
	cfg.LogLevel = viper.GetString("log-level")
	cfg.Verbose = viper.GetBool("verbose")
	cfg.Quiet = viper.GetBool("quiet")
	cfg.NoColor = viper.GetBool("no-color")
	cfg.JSONOutput = viper.GetBool("json")
	cfg.Concurrent = viper.GetBool("concurrent")
	cfg.MaxWorkers = viper.GetInt("workers")
	cfg.Timeout = viper.GetDuration("timeout")
	cfg.IncludeHidden = viper.GetBool("hidden")
	cfg.CustomIgnore = viper.GetStringSlice("ignore")
	cfg.Version = version

	cfg.Finalize()
	return cfg
}

// commandContext derives a cancellable context honoring the configured
// timeout and SIGINT.
func commandContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout > 0 {
		tctx, tcancel := context.WithTimeout(ctx, timeout)
		return tctx, func() {
			tcancel()
			cancel()
		}
	}
	return ctx, cancel
}
