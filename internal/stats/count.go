package stats

import (
	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// MessageCount returns the number of messages authored by each user.
// A message without a sender name is counted under "".
func MessageCount(msgs []models.Message) Counts {
	counts := make(Counts)
	for i := range msgs {
		counts[msgs[i].Name]++
	}
	return counts
}

// AttachmentCount returns the total number of attachments each user sent.
func AttachmentCount(msgs []models.Message) Counts {
	attachments := make(Counts)
	for i := range msgs {
		attachments[msgs[i].Name] += len(msgs[i].Attachments)
	}
	return attachments
}

// Total returns the sum of all values.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// keepAbove returns the entries of values whose user has more than
// threshold messages in counts.
func keepAbove[V int | float64](values map[string]V, counts Counts, threshold int) map[string]V {
	kept := make(map[string]V, len(values))
	for user, v := range values {
		if counts[user] > threshold {
			kept[user] = v
		}
	}
	return kept
}
