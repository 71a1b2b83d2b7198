package stats

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// dayKeyLayout parses keys produced by DayKey.
const dayKeyLayout = "1/2/2006"

// DayKey formats t as month/day/year without zero padding, e.g. "3/7/2021".
func DayKey(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// MessagesPerDay counts each user's messages per local calendar day.
func MessagesPerDay(msgs []models.Message, loc *time.Location) DayCounts {
	days := make(DayCounts)
	for i := range msgs {
		key := DayKey(msgs[i].Time(loc))
		day, ok := days[key]
		if !ok {
			day = make(Counts)
			days[key] = day
		}
		day[msgs[i].Name]++
	}
	return days
}

// SortedDays returns the day keys in chronological order.
func SortedDays(days DayCounts) []string {
	keys := make([]string, 0, len(days))
	parsed := make(map[string]time.Time, len(days))
	for k := range days {
		keys = append(keys, k)
		t, err := time.Parse(dayKeyLayout, k)
		if err == nil {
			parsed[k] = t
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if c := parsed[a].Compare(parsed[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return keys
}

// DayTotals returns the total message count of every day in chronological order.
func DayTotals(days DayCounts) []Entry[int] {
	keys := SortedDays(days)
	totals := make([]Entry[int], 0, len(keys))
	for _, k := range keys {
		totals = append(totals, Entry[int]{Key: k, Value: days[k].Total()})
	}
	return totals
}

// UserTotal sums a user's counts across all days.
func (d DayCounts) UserTotal(user string) int {
	total := 0
	for _, day := range d {
		total += day[user]
	}
	return total
}
