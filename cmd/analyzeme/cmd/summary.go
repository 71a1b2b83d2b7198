package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/batch"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

var summaryThreshold int

var summaryCmd = &cobra.Command{
	Use:   "summary <data>",
	Short: "Run every report at once",
	Long: `Run all aggregations over the export and print a combined report.

JSON and CSV output include the per-day and per-hour breakdowns and a
run ID for tracking exported reports.

Examples:
  analyzeme summary messages.json
  analyzeme summary messages.json -f json -o report.json
  analyzeme summary messages.json -t 10 --from 2024-01-01`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().IntVarP(&summaryThreshold, "threshold", "t", 0, "only users with more than N messages in length and likes")
}

func runSummary(cmd *cobra.Command, args []string) error {
	threshold, err := resolveThreshold(cmd, summaryThreshold)
	if err != nil {
		return err
	}

	ctx, stop := newContext()
	defer stop()

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, args[0], statsOptions(threshold, false))
	if err != nil {
		return err
	}

	return writeOutput(cmd, func(w io.Writer) error {
		if format == "text" {
			return outputReportTable(w, report)
		}
		return newExporter(w).ExportReport(report)
	})
}

func outputReportTable(out io.Writer, report *batch.Report) error {
	s := report.Summary

	fmt.Fprintln(out, "Conversation Summary")
	fmt.Fprintln(out, "====================")

	if report.DateRange != nil {
		if report.DateRange.Filtered {
			fmt.Fprintf(out, "Date Filter: %s → %s\n",
				formatBound(report.DateRange.From),
				formatBound(report.DateRange.To))
		}
		if report.DateRange.Earliest != nil {
			fmt.Fprintf(out, "Actual Range: %s → %s\n",
				report.DateRange.Earliest.Format("2006-01-02 15:04"),
				report.DateRange.Latest.Format("2006-01-02 15:04"))
		}
	}
	if report.Where != "" {
		fmt.Fprintf(out, "Where: %s\n", report.Where)
	}

	fmt.Fprintf(out, "Messages: %d | Users: %d | Days: %d | Timezone: %s\n",
		s.Messages, s.Users, len(s.PerDay), s.Location)
	if report.FilteredOut > 0 {
		fmt.Fprintf(out, "Filtered Out: %d of %d\n", report.FilteredOut, report.Loaded)
	}
	fmt.Fprintln(out)

	if s.Users == 0 {
		return nil
	}

	fmt.Fprintln(out, "By User:")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  USER\tMESSAGES\t%%\tAVG LEN\tATTACH\tLIKES\tLIKES/MSG\n")
	fmt.Fprintf(w, "  ----\t--------\t-\t-------\t------\t-----\t---------\n")

	// Most active first
	entries := stats.SortByValue(s.MessageCount)
	for i := len(entries) - 1; i >= 0; i-- {
		user := entries[i].Key
		fmt.Fprintf(w, "  %s\t%d\t%.1f%%\t%s\t%d\t%s\t%s\n",
			displayName(user),
			entries[i].Value,
			report.UserShare(user),
			optionalCell(s.AverageLength, user, "%.1f"),
			s.Attachments[user],
			optionalCell(s.Likes, user, "%.0f"),
			optionalCell(s.AverageLikes, user, "%.2f"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)

	if days := stats.DayTotals(s.PerDay); len(days) > 0 {
		busiest := days[0]
		for _, d := range days[1:] {
			if d.Value > busiest.Value {
				busiest = d
			}
		}
		fmt.Fprintf(out, "Busiest Day: %s (%d messages)\n", busiest.Key, busiest.Value)
	}

	var hourTotals [stats.HoursPerDay]int
	for _, hist := range s.PerHour {
		for h, n := range hist {
			hourTotals[h] += n
		}
	}
	busiestHour := 0
	for h, n := range hourTotals {
		if n > hourTotals[busiestHour] {
			busiestHour = h
		}
	}
	fmt.Fprintf(out, "Busiest Hour: %02d:00 (%d messages)\n", busiestHour, hourTotals[busiestHour])
	return nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "*"
	}
	return t.Format("2006-01-02 15:04")
}

func optionalCell(m stats.Averages, user, layout string) string {
	v, ok := m[user]
	if !ok {
		return "-"
	}
	return fmt.Sprintf(layout, v)
}

func displayName(user string) string {
	if user == "" {
		return "(unknown)"
	}
	return user
}
