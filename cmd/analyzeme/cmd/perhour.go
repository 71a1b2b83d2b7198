package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/render"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var perhourPlot bool

var perhourCmd = &cobra.Command{
	Use:   "perhour <data>",
	Short: "Messages per user by hour of day",
	Long: `Report a 24-bucket histogram of when each user sends messages.

Hours follow --timezone (default: local time). The chart stacks at most
two users; narrow the export with --where for larger groups.

Examples:
  analyzeme perhour messages.json
  analyzeme perhour messages.json --where 'name in ["Alice", "Bob"]' --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runPerhour,
}

func init() {
	rootCmd.AddCommand(perhourCmd)

	perhourCmd.Flags().BoolVarP(&perhourPlot, "plot", "p", false, "draw a stacked hour chart (at most two users)")
}

func runPerhour(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		hours := aggregate("per_hour", func() stats.Hours {
			return stats.HourHistogram(msgs, loc)
		})

		switch {
		case perhourPlot:
			return newChart(w).Stacked("Message Distribution by Hour", hours)
		case format == "text":
			return render.TextHours(w, hours)
		default:
			return newExporter(w).ExportHours(hours)
		}
	})
}
