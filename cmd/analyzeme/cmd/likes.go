package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var (
	likesThreshold int
	likesAverage   bool
	likesPlot      bool
)

var likesCmd = &cobra.Command{
	Use:   "likes <data>",
	Short: "Likes received per user",
	Long: `Report the likes each user's messages received, in total or per message.

Examples:
  # Total likes
  analyzeme likes messages.json

  # Likes per message for users with more than 20 messages
  analyzeme likes messages.json --average -t 20

  # As a bar chart
  analyzeme likes messages.json -a -p`,
	Args: cobra.ExactArgs(1),
	RunE: runLikes,
}

func init() {
	rootCmd.AddCommand(likesCmd)

	likesCmd.Flags().IntVarP(&likesThreshold, "threshold", "t", 0, "only users with more than N messages")
	likesCmd.Flags().BoolVarP(&likesAverage, "average", "a", false, "likes per message instead of the total")
	likesCmd.Flags().BoolVarP(&likesPlot, "plot", "p", false, "draw a bar chart")
}

func runLikes(cmd *cobra.Command, args []string) error {
	threshold, err := resolveThreshold(cmd, likesThreshold)
	if err != nil {
		return err
	}

	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		likes := aggregate("likes", func() stats.Averages {
			return stats.Likes(msgs, statsOptions(threshold, likesAverage))
		})

		if likesAverage {
			entries := stats.SortByValue(likes)
			if likesPlot {
				return newChart(w).Bar("Average Number of Likes", entries)
			}
			return writeRanked(w, "average_likes", entries)
		}

		// Totals are whole numbers.
		totals := make(stats.Counts, len(likes))
		for user, v := range likes {
			totals[user] = int(v)
		}
		entries := stats.SortByValue(totals)
		if likesPlot {
			return newChart(w).Bar("Number of Likes", stats.ToFloat(entries))
		}
		return writeRanked(w, "likes", entries)
	})
}
