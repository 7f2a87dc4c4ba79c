package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvandessel/mlwalk/internal/output"
	"github.com/nvandessel/mlwalk/internal/plot"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Render an occupancy table as a PNG chart",
		Long: `Draw one line per checkpoint showing how many particles occupy each state.

Examples:
  mlwalk plot test.txt                   # writes test.png
  mlwalk plot test.txt -o profile.png --title "mu 0.4..0.9"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := output.ReadFile(args[0])
			if err != nil {
				return err
			}

			opts := plot.DefaultOptions()
			if cmd.Flags().Changed("width") {
				opts.Width, _ = cmd.Flags().GetInt("width")
			}
			if cmd.Flags().Changed("height") {
				opts.Height, _ = cmd.Flags().GetInt("height")
			}
			opts.Title, _ = cmd.Flags().GetString("title")

			dest, _ := cmd.Flags().GetString("output")
			if dest == "" {
				dest = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}

			var buf bytes.Buffer
			if err := plot.Render(&buf, table, opts); err != nil {
				return err
			}
			if err := os.WriteFile(dest, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"input":  args[0],
					"output": dest,
					"rows":   len(table.Counts),
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote chart of %d rows to %s\n", len(table.Counts), dest)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "PNG file (default: input name with .png)")
	cmd.Flags().String("title", "", "Chart title")
	cmd.Flags().Int("width", 0, "Image width in pixels")
	cmd.Flags().Int("height", 0, "Image height in pixels")

	return cmd
}
