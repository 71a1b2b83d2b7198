package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/render"
)

var readableCmd = &cobra.Command{
	Use:   "readable <data>",
	Short: "Print the conversation as a readable transcript",
	Long: `Print every message oldest first as

  [YYYY/MM/DD HH:MM] name [<3]: text

where [<3] marks messages that received at least one like.

Examples:
  analyzeme readable messages.json -o transcript.txt
  analyzeme readable messages.json --from 2024-03-07 --to 2024-03-07`,
	Args: cobra.ExactArgs(1),
	RunE: runReadable,
}

func init() {
	rootCmd.AddCommand(readableCmd)
}

func runReadable(cmd *cobra.Command, args []string) error {
	return withMessages(cmd, args[0], func(w io.Writer, msgs []models.Message) error {
		if format == "text" {
			return render.Transcript(w, msgs, loc)
		}
		return newExporter(w).ExportMessages(msgs, loc)
	})
}
