package main

import (
	"encoding/json"
	"fmt"

	"github.com/nvandessel/mlwalk/internal/analysis"
	"github.com/nvandessel/mlwalk/internal/output"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <file>",
		Short: "Print per-checkpoint moments of an occupancy table",
		Long: `Read an occupancy table written by "mlwalk run" and print, for every row,
the particle total and the mean, variance and drift of the state index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := output.ReadFile(args[0])
			if err != nil {
				return err
			}
			rows := analysis.Summarize(table)

			jsonOut, _ := cmd.Flags().GetBool("json")
			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]interface{}{
					"file":   args[0],
					"states": table.States(),
					"rows":   rows,
				})
			}

			fmt.Fprintf(out, "%12s  %8s  %10s  %10s  %10s\n", "TIME", "TOTAL", "MEAN", "VARIANCE", "DRIFT")
			for _, r := range rows {
				fmt.Fprintf(out, "%12s  %8d  %10.4f  %10.4f  %+10.4f\n",
					output.FormatTime(r.Time), r.Total, r.Mean, r.Variance, r.Drift)
			}
			return nil
		},
	}
}
