package stats

import (
	"slices"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// HourHistogram counts each user's messages per local hour of day,
// aggregated across all days.
func HourHistogram(msgs []models.Message, loc *time.Location) Hours {
	hours := make(Hours)
	for i := range msgs {
		name := msgs[i].Name
		hist, ok := hours[name]
		if !ok {
			hist = [HoursPerDay]int{}
		}
		hist[msgs[i].Time(loc).Hour()]++
		hours[name] = hist
	}
	return hours
}

// Users returns the users of the histogram sorted by name.
func (h Hours) Users() []string {
	users := make([]string, 0, len(h))
	for u := range h {
		users = append(users, u)
	}
	slices.Sort(users)
	return users
}

// Sum returns the number of messages a user sent across all hours.
func (h Hours) Sum(user string) int {
	total := 0
	for _, n := range h[user] {
		total += n
	}
	return total
}
