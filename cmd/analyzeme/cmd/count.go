package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var countPlot string

var countCmd = &cobra.Command{
	Use:   "count <data>",
	Short: "Count messages per user",
	Long: `Count the messages each user sent, least active first.

Examples:
  # Message counts
  analyzeme count messages.json

  # Share of the conversation as a pie chart
  analyzeme count messages.json --plot pie

  # Counts for 2023 as CSV
  analyzeme count messages.json --from 2023-01-01 --to 2023-12-31 -f csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().StringVarP(&countPlot, "plot", "p", "", "draw a chart (bar, pie)")
}

func runCount(cmd *cobra.Command, args []string) error {
	switch countPlot {
	case "", "bar", "pie":
	default:
		return fmt.Errorf("invalid plot: %s (use bar or pie)", countPlot)
	}

	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		counts := aggregate("message_count", func() stats.Counts {
			return stats.MessageCount(msgs)
		})
		entries := stats.SortByValue(counts)

		switch countPlot {
		case "bar":
			return newChart(w).Bar("Message Count", stats.ToFloat(entries))
		case "pie":
			return newChart(w).Pie("Total Message Count", stats.ToFloat(entries))
		}
		return writeRanked(w, "messages", entries)
	})
}
