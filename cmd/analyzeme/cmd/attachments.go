package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var attachmentsPlot bool

var attachmentsCmd = &cobra.Command{
	Use:   "attachments <data>",
	Short: "Count attachments per user",
	Long: `Count the attachments (images, links, locations, ...) each user sent.

Examples:
  analyzeme attachments messages.json
  analyzeme attachments messages.json --plot`,
	Args: cobra.ExactArgs(1),
	RunE: runAttachments,
}

func init() {
	rootCmd.AddCommand(attachmentsCmd)

	attachmentsCmd.Flags().BoolVarP(&attachmentsPlot, "plot", "p", false, "draw a bar chart")
}

func runAttachments(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		counts := aggregate("attachment_count", func() stats.Counts {
			return stats.AttachmentCount(msgs)
		})
		entries := stats.SortByValue(counts)

		if attachmentsPlot {
			return newChart(w).Bar("Attachment Count", stats.ToFloat(entries))
		}
		return writeRanked(w, "attachments", entries)
	})
}
