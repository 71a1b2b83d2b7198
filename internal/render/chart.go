package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// ErrTooManySeries is returned when a stacked chart gets more than two users.
var ErrTooManySeries = errors.New("stacked chart supports at most two users")

// ColorMode selects when charts are colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a string to ColorMode.
func ParseColorMode(s string) (ColorMode, bool) {
	switch ColorMode(s) {
	case ColorAuto, ColorAlways, ColorNever:
		return ColorMode(s), true
	default:
		return "", false
	}
}

const (
	defaultWidth = 80
	minBarWidth  = 10
	maxLabel     = 24

	glyphPrimary   = "█"
	glyphSecondary = "▒"
)

// ChartOptions configures a Chart.
type ChartOptions struct {
	Width int       // Total line width (0 = terminal width or 80)
	Color ColorMode // Empty means auto
}

// Chart draws horizontal bar charts on a terminal.
type Chart struct {
	w      io.Writer
	width  int
	title  *color.Color
	series [2]*color.Color
	muted  *color.Color
}

// NewChart creates a chart writer for w.
func NewChart(w io.Writer, opts ChartOptions) *Chart {
	tty := isTerminal(w)

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
		if f, ok := w.(*os.File); ok && tty {
			if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
				width = cols
			}
		}
	}

	enabled := tty && !color.NoColor
	switch opts.Color {
	case ColorAlways:
		enabled = true
	case ColorNever:
		enabled = false
	}

	c := &Chart{
		w:      w,
		width:  width,
		title:  color.New(color.FgHiCyan, color.Bold),
		series: [2]*color.Color{color.New(color.FgBlue), color.New(color.FgYellow)},
		muted:  color.New(color.FgHiBlack),
	}
	for _, col := range []*color.Color{c.title, c.series[0], c.series[1], c.muted} {
		if enabled {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Bar draws one bar per entry, scaled to the largest value.
func (c *Chart) Bar(title string, entries []stats.Entry[float64]) error {
	bw := bufio.NewWriter(c.w)
	c.writeTitle(bw, title)

	values := make([]string, len(entries))
	maxValue := 0.0
	for i, e := range entries {
		values[i] = formatChartValue(e.Value)
		maxValue = math.Max(maxValue, e.Value)
	}

	labelWidth, valueWidth := columnWidths(entries, values)
	barWidth := c.barWidth(labelWidth, valueWidth)

	for i, e := range entries {
		n := scale(e.Value, maxValue, barWidth)
		fmt.Fprintf(bw, "%s %s%s %s\n",
			pad(truncate(e.Key, labelWidth), labelWidth),
			c.series[0].Sprint(strings.Repeat(glyphPrimary, n)),
			strings.Repeat(" ", barWidth-n),
			values[i])
	}
	return bw.Flush()
}

// Pie draws each entry's share of the total as a bar labeled "pct% (n)".
func (c *Chart) Pie(title string, entries []stats.Entry[float64]) error {
	bw := bufio.NewWriter(c.w)
	c.writeTitle(bw, title)

	total := 0.0
	for _, e := range entries {
		total += e.Value
	}

	labels := make([]string, len(entries))
	shares := make([]float64, len(entries))
	for i, e := range entries {
		if total > 0 {
			shares[i] = e.Value / total * 100
		}
		labels[i] = fmt.Sprintf("%.1f%% (%d)", shares[i], int(math.Round(shares[i]*total/100)))
	}

	labelWidth, valueWidth := columnWidths(entries, labels)
	barWidth := c.barWidth(labelWidth, valueWidth)

	for i, e := range entries {
		n := scale(shares[i], 100, barWidth)
		fmt.Fprintf(bw, "%s %s%s %s\n",
			pad(truncate(e.Key, labelWidth), labelWidth),
			c.series[i%2].Sprint(strings.Repeat(glyphPrimary, n)),
			c.muted.Sprint(strings.Repeat("·", barWidth-n)),
			labels[i])
	}
	return bw.Flush()
}

// Stacked draws the hour histogram with one row per hour and up to two
// users stacked in each row.
func (c *Chart) Stacked(title string, hours stats.Hours) error {
	users := hours.Users()
	if len(users) > len(c.series) {
		return fmt.Errorf("%w: got %d", ErrTooManySeries, len(users))
	}

	bw := bufio.NewWriter(c.w)
	c.writeTitle(bw, title)

	var totals [stats.HoursPerDay]int
	maxTotal := 0
	for h := 0; h < stats.HoursPerDay; h++ {
		for _, u := range users {
			totals[h] += hours[u][h]
		}
		maxTotal = max(maxTotal, totals[h])
	}

	const labelWidth = len("23:00")
	valueWidth := len(fmt.Sprint(maxTotal))
	barWidth := c.barWidth(labelWidth, valueWidth)

	glyphs := [2]string{glyphPrimary, glyphSecondary}
	for h := 0; h < stats.HoursPerDay; h++ {
		var sb strings.Builder
		drawn := 0
		// Scale the running sum so the stacked segments add up to the row total.
		running := 0
		for i, u := range users {
			running += hours[u][h]
			end := scale(float64(running), float64(maxTotal), barWidth)
			sb.WriteString(c.series[i].Sprint(strings.Repeat(glyphs[i], end-drawn)))
			drawn = end
		}
		fmt.Fprintf(bw, "%02d:00 %s%s %*d\n", h, sb.String(), strings.Repeat(" ", barWidth-drawn), valueWidth, totals[h])
	}

	if len(users) > 0 {
		legend := make([]string, len(users))
		for i, u := range users {
			legend[i] = c.series[i].Sprint(glyphs[i]) + " " + u
		}
		fmt.Fprintf(bw, "\n%s\n", strings.Join(legend, "   "))
	}
	return bw.Flush()
}

func (c *Chart) writeTitle(w io.Writer, title string) {
	fmt.Fprintln(w, c.title.Sprint(title))
	fmt.Fprintln(w, strings.Repeat("=", utf8.RuneCountInString(title)))
}

func (c *Chart) barWidth(labelWidth, valueWidth int) int {
	return max(c.width-labelWidth-valueWidth-2, minBarWidth)
}

func columnWidths(entries []stats.Entry[float64], values []string) (labelWidth, valueWidth int) {
	for i, e := range entries {
		labelWidth = max(labelWidth, utf8.RuneCountInString(e.Key))
		valueWidth = max(valueWidth, len(values[i]))
	}
	return min(labelWidth, maxLabel), valueWidth
}

func scale(v, maxValue float64, width int) int {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	return min(int(math.Round(v/maxValue*float64(width))), width)
}

func formatChartValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
