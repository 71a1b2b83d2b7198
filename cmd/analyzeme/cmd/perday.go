package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/render"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var perdayPlot bool

var perdayCmd = &cobra.Command{
	Use:   "perday <data>",
	Short: "Messages per user per day",
	Long: `Report how many messages each user sent on each calendar day, oldest day first.

Days follow --timezone (default: local time).

Examples:
  analyzeme perday messages.json
  analyzeme perday messages.json --timezone Europe/Berlin -f json

  # Daily totals as a bar chart
  analyzeme perday messages.json --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runPerday,
}

func init() {
	rootCmd.AddCommand(perdayCmd)

	perdayCmd.Flags().BoolVarP(&perdayPlot, "plot", "p", false, "draw daily totals as a bar chart")
}

func runPerday(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		days := aggregate("per_day", func() stats.DayCounts {
			return stats.MessagesPerDay(msgs, loc)
		})

		switch {
		case perdayPlot:
			return newChart(w).Bar("Messages per Day", stats.ToFloat(stats.DayTotals(days)))
		case format == "text":
			return render.TextDays(w, days)
		default:
			return newExporter(w).ExportDays(days)
		}
	})
}
