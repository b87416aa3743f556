package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/lockstep/internal/config"
	"github.com/aretw0/lockstep/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lockstep",
	Short: "lockstep runs tick-driven component configurations",
	Long: `lockstep composes independent state machines that talk only through ports and events.
Every tick the whole configuration advances one deterministic step.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", logging.FormatAuto, "Log format (auto, text, json)")
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelStr, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format)
}

// loadConfig reads the file and environment, applies the flags the command
// declares and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if f := flags.Lookup("transport"); f != nil && f.Changed {
		cfg.Transport = f.Value.String()
	}
	if f := flags.Lookup("total-spaces"); f != nil && f.Changed {
		cfg.TotalSpaces, _ = flags.GetInt("total-spaces")
	}
	if f := flags.Lookup("tick"); f != nil && f.Changed {
		tick, _ := flags.GetDuration("tick")
		cfg.TickIntervalMS = int(tick.Milliseconds())
	}
	if f := flags.Lookup("metrics-addr"); f != nil && f.Changed {
		cfg.MetricsAddr = f.Value.String()
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
