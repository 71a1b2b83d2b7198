package batch

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// ExportFormat defines the output format for exports.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

// ParseExportFormat parses a string to ExportFormat.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch s {
	case "json":
		return ExportJSON, true
	case "csv":
		return ExportCSV, true
	default:
		return "", false
	}
}

// Exporter writes aggregates, reports and messages in a structured format.
type Exporter struct {
	format ExportFormat
	writer io.Writer
}

// NewExporter creates an exporter for the given format.
func NewExporter(format ExportFormat, w io.Writer) *Exporter {
	return &Exporter{
		format: format,
		writer: w,
	}
}

// ExportReport writes the analysis report in the configured format.
func (e *Exporter) ExportReport(report *Report) error {
	switch e.format {
	case ExportCSV:
		return e.exportReportCSV(report)
	default:
		return e.encodeJSON(report)
	}
}

func (e *Exporter) encodeJSON(v any) error {
	encoder := json.NewEncoder(e.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (e *Exporter) exportReportCSV(report *Report) error {
	w := csv.NewWriter(e.writer)
	s := report.Summary

	// Run header
	w.Write([]string{"# Run"})
	w.Write([]string{"run_id", report.RunID})
	w.Write([]string{"source", report.Source})
	w.Write([]string{"loaded", strconv.Itoa(report.Loaded)})
	w.Write([]string{"filtered_out", strconv.Itoa(report.FilteredOut)})
	w.Write([]string{"messages", strconv.Itoa(s.Messages)})
	w.Write([]string{"users", strconv.Itoa(s.Users)})
	w.Write([]string{"threshold", strconv.Itoa(s.Threshold)})
	w.Write([]string{"location", s.Location})
	w.Write([]string{"duration_ms", strconv.FormatInt(report.Duration.Milliseconds(), 10)})
	w.Write([]string{})

	// Per-user statistics
	w.Write([]string{"# Users"})
	w.Write([]string{"user", "messages", "average_length", "attachments", "likes", "average_likes"})
	for _, user := range s.PerHour.Users() {
		w.Write([]string{
			user,
			strconv.Itoa(s.MessageCount[user]),
			optionalFloat(s.AverageLength, user),
			strconv.Itoa(s.Attachments[user]),
			optionalFloat(s.Likes, user),
			optionalFloat(s.AverageLikes, user),
		})
	}
	w.Write([]string{})

	// Per-day counts
	w.Write([]string{"# Per Day"})
	writeDays(w, s.PerDay)
	w.Write([]string{})

	// Per-hour histogram
	w.Write([]string{"# Per Hour"})
	writeHours(w, s.PerHour)

	w.Flush()
	return w.Error()
}

// ExportEntries writes a ranked mapping. valueName labels the value column.
func ExportEntries[V stats.Number](e *Exporter, valueName string, entries []stats.Entry[V]) error {
	if e.format != ExportCSV {
		return e.encodeJSON(entries)
	}

	w := csv.NewWriter(e.writer)
	w.Write([]string{"user", valueName})
	for _, entry := range entries {
		w.Write([]string{entry.Key, formatNumber(float64(entry.Value))})
	}
	w.Flush()
	return w.Error()
}

// dayRow is the JSON shape of one day of a per-day export.
type dayRow struct {
	Day    string       `json:"day"`
	Counts stats.Counts `json:"counts"`
}

// ExportDays writes per-day counts in chronological order.
func (e *Exporter) ExportDays(days stats.DayCounts) error {
	if e.format != ExportCSV {
		rows := make([]dayRow, 0, len(days))
		for _, day := range stats.SortedDays(days) {
			rows = append(rows, dayRow{Day: day, Counts: days[day]})
		}
		return e.encodeJSON(rows)
	}

	w := csv.NewWriter(e.writer)
	writeDays(w, days)
	w.Flush()
	return w.Error()
}

// ExportHours writes the hour histogram.
func (e *Exporter) ExportHours(hours stats.Hours) error {
	if e.format != ExportCSV {
		return e.encodeJSON(hours)
	}

	w := csv.NewWriter(e.writer)
	writeHours(w, hours)
	w.Flush()
	return w.Error()
}

// messageRow is the exported shape of one message.
type messageRow struct {
	Time        time.Time `json:"time"`
	Name        string    `json:"name"`
	Text        string    `json:"text"`
	Likes       int       `json:"likes"`
	Attachments int       `json:"attachments"`
}

// ExportMessages writes newest-first messages oldest first, with send times in loc.
func (e *Exporter) ExportMessages(msgs []models.Message, loc *time.Location) error {
	rows := make([]messageRow, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		m := &msgs[i]
		rows = append(rows, messageRow{
			Time:        m.Time(loc),
			Name:        m.Name,
			Text:        m.Text,
			Likes:       m.Likes(),
			Attachments: len(m.Attachments),
		})
	}

	if e.format != ExportCSV {
		return e.encodeJSON(rows)
	}

	w := csv.NewWriter(e.writer)
	w.Write([]string{"time", "name", "text", "likes", "attachments"})
	for _, r := range rows {
		w.Write([]string{
			r.Time.Format(time.RFC3339),
			r.Name,
			r.Text,
			strconv.Itoa(r.Likes),
			strconv.Itoa(r.Attachments),
		})
	}
	w.Flush()
	return w.Error()
}

func writeDays(w *csv.Writer, days stats.DayCounts) {
	w.Write([]string{"day", "user", "count"})
	for _, day := range stats.SortedDays(days) {
		counts := days[day]
		for _, entry := range stats.SortByValue(counts) {
			w.Write([]string{day, entry.Key, strconv.Itoa(entry.Value)})
		}
	}
}

func writeHours(w *csv.Writer, hours stats.Hours) {
	header := make([]string, 0, stats.HoursPerDay+1)
	header = append(header, "user")
	for h := 0; h < stats.HoursPerDay; h++ {
		header = append(header, strconv.Itoa(h))
	}
	w.Write(header)

	for _, user := range hours.Users() {
		hist := hours[user]
		row := make([]string, 0, stats.HoursPerDay+1)
		row = append(row, user)
		for _, n := range hist {
			row = append(row, strconv.Itoa(n))
		}
		w.Write(row)
	}
}

func optionalFloat(m stats.Averages, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	return formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
