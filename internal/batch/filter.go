package batch

import (
	"fmt"
	"math"
	"time"

	"github.com/good-yellow-bee/analyzeme/internal/models"
)

// Bound says which end of a date range a --from/--to value denotes.
type Bound int

const (
	LowerBound Bound = iota
	UpperBound
)

// dateLayout is one accepted spelling of a date bound. A whole-day layout
// used as an upper bound covers the entire day.
type dateLayout struct {
	layout   string
	wholeDay bool
}

var dateLayouts = []dateLayout{
	{time.RFC3339, false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
	{"1/2/2006", true}, // day keys as printed by perday
}

// ParseDateBound parses a --from/--to value. Dates without a zone are read
// in loc (time.Local if nil). An empty string is an open bound.
func ParseDateBound(s string, loc *time.Location, bound Bound) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}

	for _, l := range dateLayouts {
		t, err := time.ParseInLocation(l.layout, s, loc)
		if err != nil {
			continue
		}
		if l.wholeDay && bound == UpperBound {
			t = t.AddDate(0, 0, 1).Add(-time.Second)
		}
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q (use YYYY-MM-DD, \"YYYY-MM-DD HH:MM\", M/D/YYYY or RFC3339)", s)
}

// DateFilter keeps messages sent within [From, To]. A zero bound is open.
type DateFilter struct {
	From    time.Time
	To      time.Time
	Enabled bool

	// Bounds in epoch seconds, comparable with Message.CreatedAt.
	from, to int64
}

// NewDateFilter creates a filter from parsed bounds.
func NewDateFilter(from, to time.Time) *DateFilter {
	f := &DateFilter{
		From:    from,
		To:      to,
		Enabled: !from.IsZero() || !to.IsZero(),
		from:    math.MinInt64,
		to:      math.MaxInt64,
	}
	if !from.IsZero() {
		// Send times are whole seconds, so a fractional lower bound rounds up.
		f.from = from.Unix()
		if from.Nanosecond() > 0 {
			f.from++
		}
	}
	if !to.IsZero() {
		f.to = to.Unix()
	}
	return f
}

// Matches reports whether m was sent within the range.
func (f *DateFilter) Matches(m *models.Message) bool {
	return !f.Enabled || (m.CreatedAt >= f.from && m.CreatedAt <= f.to)
}
