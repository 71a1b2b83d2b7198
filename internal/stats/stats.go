// Package stats is the aggregation engine. Every aggregator is a pure fold
// over a read-only slice of messages that returns a freshly allocated
// mapping; none of them keeps state between calls.
package stats

import (
	"time"
)

// HoursPerDay is the length of an hour histogram.
const HoursPerDay = 24

// Counts maps a username to an integer statistic.
type Counts map[string]int

// Averages maps a username to a floating point statistic.
type Averages map[string]float64

// DayCounts maps a calendar day key (see DayKey) to per-user message counts.
type DayCounts map[string]Counts

// Hours maps a username to that user's message count per local hour of day.
type Hours map[string][HoursPerDay]int

// Options configures the aggregators that take options.
type Options struct {
	// Threshold is an exclusive lower bound on a user's message count.
	// Users with Threshold or fewer messages are dropped.
	Threshold int

	// Average makes Likes report likes per message instead of the total.
	Average bool

	// Location is the zone for day and hour bucketing. Nil means time.Local.
	Location *time.Location
}

// DefaultOptions returns the zero-threshold, local-time options.
func DefaultOptions() Options {
	return Options{Location: time.Local}
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}
