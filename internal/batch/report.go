package batch

import (
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// Report contains a complete analysis run.
type Report struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Duration    time.Duration  `json:"duration_ns"`
	Loaded      int            `json:"loaded"`
	FilteredOut int            `json:"filtered_out"`
	Where       string         `json:"where,omitempty"`
	DateRange   *DateRange     `json:"date_range,omitempty"`
	Summary     *stats.Summary `json:"summary"`
}

// DateRange tracks the requested and actual date range of analyzed
// messages. Open or unknown ends are nil.
type DateRange struct {
	Earliest *time.Time `json:"earliest,omitempty"`
	Latest   *time.Time `json:"latest,omitempty"`
	Filtered bool       `json:"filtered"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// NewReport creates a report for source with a fresh run ID.
func NewReport(source string, start time.Time) *Report {
	return &Report{
		RunID:     uuid.New().String(),
		Source:    source,
		StartTime: start,
	}
}

// Finish stamps the end time and duration.
func (r *Report) Finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}

// UserShare returns the percentage of messages sent by user.
func (r *Report) UserShare(user string) float64 {
	if r.Summary == nil || r.Summary.Messages == 0 {
		return 0
	}
	return float64(r.Summary.MessageCount[user]) / float64(r.Summary.Messages) * 100
}
