package stats

import (
	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// AverageLength returns each user's mean message length in characters.
// Messages without text count as length zero. Only users with more than
// opts.Threshold messages are included.
func AverageLength(msgs []models.Message, opts Options) Averages {
	lengths := make(map[string]int)
	counts := make(Counts)
	for i := range msgs {
		lengths[msgs[i].Name] += msgs[i].Length()
		counts[msgs[i].Name]++
	}

	lengths = keepAbove(lengths, counts, opts.Threshold)

	// Every kept user has counts[user] > Threshold >= 0.
	averages := make(Averages, len(lengths))
	for user, total := range lengths {
		averages[user] = float64(total) / float64(counts[user])
	}
	return averages
}
