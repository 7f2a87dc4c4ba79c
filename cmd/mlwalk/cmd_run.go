package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/nvandessel/mlwalk/internal/config"
	"github.com/nvandessel/mlwalk/internal/constants"
	"github.com/nvandessel/mlwalk/internal/ensemble"
	"github.com/nvandessel/mlwalk/internal/logging"
	"github.com/nvandessel/mlwalk/internal/output"
	"github.com/nvandessel/mlwalk/internal/randsrc"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the ensemble and write the occupancy table",
		Long: `Simulate every particle of the ensemble in parallel and write one row per
checkpoint, plus a final row at the end time, to the output file.

Parameters come from the config file and MLWALK_* environment variables;
flags given here take precedence. All parameters are validated before any
particle is simulated.

Examples:
  mlwalk run                                  # reference run, writes test.txt
  mlwalk run -o occ.txt --particles 1000      # smaller ensemble
  mlwalk run --seed 42 --workers 1            # reproducible single-worker run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			applyRunFlags(cmd, cfg)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			params, sched, pop, err := cfg.Simulation.Tables()
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			seed := cfg.Simulation.Seed
			if seed == 0 {
				if seed, err = randsrc.RandomSeed(); err != nil {
					return fmt.Errorf("failed to draw seed: %w", err)
				}
			}

			logger := newLogger(cmd, cfg)
			runLog, err := logging.OpenRunLog(runLogDir(cfg.Run.Output), cfg.Logging.Level)
			if err != nil {
				logger.Warn("run log disabled", "error", err)
			}
			defer runLog.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			sigCh := make(chan os.Signal, 1)
			notifySignals(sigCh)
			defer signal.Stop(sigCh)
			go func() {
				select {
				case <-sigCh:
					logger.Info("interrupted, stopping run")
					cancel()
				case <-ctx.Done():
				}
			}()

			logger.Debug("starting run",
				"particles", pop.Total(),
				"states", params.States(),
				"checkpoints", len(sched.Times),
				"end_time", sched.End,
				"seed", seed,
				"workers", cfg.Run.Workers,
				"merge", cfg.Run.Merge)
			runLog.Start(logging.RunRecord{
				Seed:        seed,
				Particles:   pop.Total(),
				States:      params.States(),
				Checkpoints: len(sched.Times),
				EndTime:     sched.End,
				Merge:       string(cfg.Run.Merge),
				Output:      cfg.Run.Output,
			})

			res, err := ensemble.Run(ctx, ensemble.Config{
				Params:     params,
				Schedule:   sched,
				Population: pop,
				Workers:    cfg.Run.Workers,
				Seed:       seed,
				Merge:      cfg.Run.Merge,
				Progress:   logging.Progress(logger),
			})
			if err != nil {
				runLog.Fail(err)
				return err
			}
			logger.Info("parallel phase finished", "elapsed", res.Elapsed, "workers", res.Workers)
			logger.Debug("run statistics", "steps", res.Steps, "rejected_draws", res.Rejections)

			table, err := output.NewTable(sched, res.Occupancy)
			if err == nil {
				err = output.WriteFile(cfg.Run.Output, table)
			}
			if err != nil {
				err = fmt.Errorf("failed to write occupancy table: %w", err)
				runLog.Fail(err)
				return err
			}
			runLog.Finish(logging.RunOutcome{
				Workers:       res.Workers,
				Elapsed:       res.Elapsed,
				Steps:         res.Steps,
				RejectedDraws: res.Rejections,
				Rows:          len(table.Counts),
			})

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				json.NewEncoder(out).Encode(map[string]interface{}{
					"output":         cfg.Run.Output,
					"particles":      res.Particles,
					"states":         params.States(),
					"rows":           len(table.Counts),
					"seed":           seed,
					"workers":        res.Workers,
					"elapsed_s":      res.Elapsed.Seconds(),
					"steps":          res.Steps,
					"rejected_draws": res.Rejections,
				})
			} else {
				fmt.Fprintf(out, "Parallel elapsed time: %.3fs\n", res.Elapsed.Seconds())
				fmt.Fprintf(out, "Wrote %d rows for %d particles in %d states to %s (seed %d)\n",
					len(table.Counts), res.Particles, params.States(), cfg.Run.Output, seed)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default from config: test.txt)")
	cmd.Flags().Int("particles", 0, "Number of particles")
	cmd.Flags().Int("states", 0, "Number of states")
	cmd.Flags().Float64("end-time", 0, "Simulated end time")
	cmd.Flags().Int("checkpoints", 0, "Number of evenly spaced checkpoints before the end time")
	cmd.Flags().String("initial", "", "Initial condition: uniform or upper-half")
	cmd.Flags().Uint64("seed", 0, "Base seed (0 draws a fresh seed)")
	cmd.Flags().Int("workers", 0, "Worker goroutines (0 uses all CPUs)")
	cmd.Flags().String("merge", "", "Merge strategy: local or shared")

	return cmd
}

// applyRunFlags copies explicitly set flags over the loaded configuration.
func applyRunFlags(cmd *cobra.Command, cfg *config.MlwalkConfig) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Run.Output, _ = flags.GetString("output")
	}
	if flags.Changed("particles") {
		cfg.Simulation.Particles, _ = flags.GetInt("particles")
	}
	if flags.Changed("states") {
		cfg.Simulation.States, _ = flags.GetInt("states")
	}
	if flags.Changed("end-time") {
		cfg.Simulation.EndTime, _ = flags.GetFloat64("end-time")
	}
	if flags.Changed("checkpoints") {
		cfg.Simulation.Checkpoints, _ = flags.GetInt("checkpoints")
	}
	if flags.Changed("initial") {
		v, _ := flags.GetString("initial")
		cfg.Simulation.Initial = constants.InitialCondition(v)
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("workers") {
		cfg.Run.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("merge") {
		v, _ := flags.GetString("merge")
		cfg.Run.Merge = constants.MergeStrategy(v)
	}
}

// runLogDir is the directory holding the run log for an output file.
func runLogDir(output string) string {
	return filepath.Join(filepath.Dir(output), constants.RunLogDirName)
}
