// Package render presents aggregates as text, terminal charts and transcripts.
package render

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// Text writes one "key, value" line per entry.
func Text[V stats.Number](w io.Writer, entries []stats.Entry[V]) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		fmt.Fprintf(bw, "%s, %s\n", e.Key, formatValue(e.Value))
	}
	return bw.Flush()
}

// TextDays writes one line per day in chronological order, with the day's
// per-user counts sorted by name: "3/7/2024, {Alice: 2, Bob: 1}".
func TextDays(w io.Writer, days stats.DayCounts) error {
	bw := bufio.NewWriter(w)
	for _, day := range stats.SortedDays(days) {
		counts := days[day]
		users := make([]string, 0, len(counts))
		for u := range counts {
			users = append(users, u)
		}
		slices.Sort(users)

		parts := make([]string, len(users))
		for i, u := range users {
			parts[i] = fmt.Sprintf("%s: %d", u, counts[u])
		}
		fmt.Fprintf(bw, "%s, {%s}\n", day, strings.Join(parts, ", "))
	}
	return bw.Flush()
}

// TextHours writes one line per user with the 24 hourly counts:
// "Alice, 0, 0, 3, ...".
func TextHours(w io.Writer, hours stats.Hours) error {
	bw := bufio.NewWriter(w)
	for _, user := range hours.Users() {
		hist := hours[user]
		parts := make([]string, len(hist))
		for i, n := range hist {
			parts[i] = strconv.Itoa(n)
		}
		fmt.Fprintf(bw, "%s, %s\n", user, strings.Join(parts, ", "))
	}
	return bw.Flush()
}

func formatValue[V stats.Number](v V) string {
	switch x := any(v).(type) {
	case float64:
		return FormatFloat(x)
	default:
		return fmt.Sprint(v)
	}
}

// FormatFloat returns the shortest representation of v that still reads as
// a float: 3 is "3.0", 2.5 is "2.5".
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
