package stats

import (
	"context"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
	"golang.org/x/sync/errgroup"
)

// Summary holds the result of every aggregator over the same messages.
// FirstMessage and LastMessage are nil when there are no messages.
type Summary struct {
	Messages      int        `json:"messages"`
	Users         int        `json:"users"`
	FirstMessage  *time.Time `json:"first_message,omitempty"`
	LastMessage   *time.Time `json:"last_message,omitempty"`
	Threshold     int        `json:"threshold"`
	Location      string     `json:"location"`
	MessageCount  Counts     `json:"message_count"`
	AverageLength Averages   `json:"average_length"`
	Attachments   Counts     `json:"attachments"`
	Likes         Averages   `json:"likes"`
	AverageLikes  Averages   `json:"average_likes"`
	PerDay        DayCounts  `json:"per_day"`
	PerHour       Hours      `json:"per_hour"`
}

// Summarize runs all aggregators concurrently. The messages are only read,
// and each goroutine writes a distinct field of the summary.
func Summarize(ctx context.Context, msgs []models.Message, opts Options) (*Summary, error) {
	loc := opts.location()
	s := &Summary{
		Messages:  len(msgs),
		Threshold: opts.Threshold,
		Location:  loc.String(),
	}

	g, gCtx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { s.MessageCount = MessageCount(msgs) })
	run(func() { s.AverageLength = AverageLength(msgs, opts) })
	run(func() { s.Attachments = AttachmentCount(msgs) })
	run(func() {
		o := opts
		o.Average = false
		s.Likes = Likes(msgs, o)
	})
	run(func() {
		o := opts
		o.Average = true
		s.AverageLikes = Likes(msgs, o)
	})
	run(func() { s.PerDay = MessagesPerDay(msgs, loc) })
	run(func() { s.PerHour = HourHistogram(msgs, loc) })
	run(func() { s.FirstMessage, s.LastMessage = span(msgs, loc) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	s.Users = len(s.MessageCount)
	return s, nil
}

// span returns the earliest and latest send time, or nils for no messages.
func span(msgs []models.Message, loc *time.Location) (first, last *time.Time) {
	if len(msgs) == 0 {
		return nil, nil
	}
	lo, hi := msgs[0].CreatedAt, msgs[0].CreatedAt
	for i := range msgs[1:] {
		lo = min(lo, msgs[i+1].CreatedAt)
		hi = max(hi, msgs[i+1].CreatedAt)
	}
	f, l := time.Unix(lo, 0).In(loc), time.Unix(hi, 0).In(loc)
	return &f, &l
}
