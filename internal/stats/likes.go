package stats

import (
	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// Likes returns the number of likes each user received. With opts.Average
// set, the total is divided by the user's message count. Only users with
// more than opts.Threshold messages are included.
func Likes(msgs []models.Message, opts Options) Averages {
	totals := make(map[string]int)
	for i := range msgs {
		totals[msgs[i].Name] += msgs[i].Likes()
	}

	totals = keepAbove(totals, MessageCount(msgs), opts.Threshold)

	likes := make(Averages, len(totals))
	if !opts.Average {
		for user, total := range totals {
			likes[user] = float64(total)
		}
		return likes
	}

	// The denominator is recounted over the whole input rather than taken
	// from the thresholded population. Kept users are never removed by the
	// recount, so the divisor is at least one.
	counts := MessageCount(msgs)
	for user, total := range totals {
		likes[user] = float64(total) / float64(counts[user])
	}
	return likes
}
