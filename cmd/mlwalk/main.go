package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nvandessel/mlwalk/internal/config"
	"github.com/nvandessel/mlwalk/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mlwalk",
		Short: "Ensemble simulator for random walks with Mittag-Leffler waiting times",
		Long: `mlwalk simulates many independent particles hopping between discrete
states. Each particle waits in a state for a Mittag-Leffler distributed time
whose exponent depends on the state, then steps to a neighboring state with a
bias toward the middle of the range. The number of particles in each state is
recorded at fixed checkpoint times and written as a delimited text table.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./mlwalk.yaml or ~/.mlwalk/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace (overrides config)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newParamsCmd(),
		newSummarizeCmd(),
		newPlotCmd(),
		newConfigCmd(),
		newHistoryCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration named by --config (or the default
// locations) and applies --log-level.
func loadConfig(cmd *cobra.Command) (*config.MlwalkConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// newLogger returns the operational logger, writing to the command's stderr.
func newLogger(cmd *cobra.Command, cfg *config.MlwalkConfig) *slog.Logger {
	return logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
}
