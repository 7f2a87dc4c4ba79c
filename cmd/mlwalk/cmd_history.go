package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/nvandessel/mlwalk/internal/logging"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past runs from the run log",
		Long: `Print the runs recorded in .mlwalk/runs.jsonl next to the output file.
Runs are only recorded at --log-level debug or trace.

Examples:
  mlwalk run --log-level debug && mlwalk history
  mlwalk history -o results/occ.txt --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Run.Output, _ = cmd.Flags().GetString("output")
			}

			path := filepath.Join(runLogDir(cfg.Run.Output), logging.RunLogFileName)
			records, err := logging.ReadRunLog(path)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				if records == nil {
					records = []logging.RunRecord{}
				}
				return json.NewEncoder(out).Encode(records)
			}

			fmt.Fprintf(out, "%-20s  %-12s  %20s  %9s  %7s  %9s  %s\n",
				"TIME", "EVENT", "SEED", "PARTICLES", "WORKERS", "ELAPSED", "OUTPUT")
			for _, r := range records {
				elapsed, workers := "-", "-"
				if r.Event == logging.RunFinished {
					elapsed = fmt.Sprintf("%.3fs", r.ElapsedSeconds)
					workers = fmt.Sprintf("%d", r.Workers)
				}
				fmt.Fprintf(out, "%-20s  %-12s  %20d  %9d  %7s  %9s  %s\n",
					r.Time.Format("2006-01-02T15:04:05"), r.Event, r.Seed, r.Particles, workers, elapsed, r.Output)
				if r.Error != "" {
					fmt.Fprintf(out, "  error: %s\n", r.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file whose run log to read (default from config)")

	return cmd
}
