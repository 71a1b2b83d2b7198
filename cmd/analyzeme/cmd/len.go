package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var (
	lenThreshold int
	lenPlot      bool
)

var lenCmd = &cobra.Command{
	Use:   "len <data>",
	Short: "Average message length per user",
	Long: `Report the average message length in characters for each user.

Users with threshold or fewer messages are left out.

Examples:
  # Average length for everyone with more than 50 messages
  analyzeme len messages.json -t 50

  # As a bar chart
  analyzeme len messages.json --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runLen,
}

func init() {
	rootCmd.AddCommand(lenCmd)

	lenCmd.Flags().IntVarP(&lenThreshold, "threshold", "t", 0, "only users with more than N messages")
	lenCmd.Flags().BoolVarP(&lenPlot, "plot", "p", false, "draw a bar chart")
}

func runLen(cmd *cobra.Command, args []string) error {
	threshold, err := resolveThreshold(cmd, lenThreshold)
	if err != nil {
		return err
	}

	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		lengths := aggregate("average_length", func() stats.Averages {
			return stats.AverageLength(msgs, statsOptions(threshold, false))
		})
		entries := stats.SortByValue(lengths)

		if lenPlot {
			return newChart(w).Bar("Average Message Length", entries)
		}
		return writeRanked(w, "average_length", entries)
	})
}
