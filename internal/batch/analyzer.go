// Package batch loads a conversation export, applies the message filters and
// builds reports from the aggregation engine.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/good-yellow-bee/analyzeme/internal/loader"
	"github.com/good-yellow-bee/analyzeme/internal/metrics"
	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// AnalyzerOptions configures loading and filtering.
type AnalyzerOptions struct {
	From     time.Time      // Filter: messages on or after this time
	To       time.Time      // Filter: messages on or before this time
	Where    string         // Filter: expr-lang expression, empty = keep all
	Location *time.Location // Zone for hour/weekday in expressions (nil = local)
}

// Analyzer loads exports and applies the configured filters.
type Analyzer struct {
	opts   *AnalyzerOptions
	filter *DateFilter
	where  *ExprFilter
}

// NewAnalyzer creates a new analyzer. It fails if the where expression
// does not compile.
func NewAnalyzer(opts *AnalyzerOptions) (*Analyzer, error) {
	if opts == nil {
		opts = &AnalyzerOptions{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	a := &Analyzer{
		opts:   opts,
		filter: NewDateFilter(opts.From, opts.To),
	}

	if opts.Where != "" {
		where, err := NewExprFilter(opts.Where, opts.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid --where: %w", err)
		}
		a.where = where
	}

	return a, nil
}

// Load reads the export at path and applies the filters. It returns the kept
// messages in document order and the number of messages read.
func (a *Analyzer) Load(ctx context.Context, path string) ([]models.Message, int, error) {
	start := time.Now()

	msgs, err := loader.LoadFile(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	metrics.LoadDuration.Observe(time.Since(start).Seconds())
	metrics.MessagesLoadedTotal.Add(float64(len(msgs)))

	kept, err := a.Filter(msgs)
	if err != nil {
		return nil, 0, err
	}
	metrics.MessagesFilteredTotal.Add(float64(len(msgs) - len(kept)))

	log.Info().
		Str("path", path).
		Int("messages", len(msgs)).
		Int("kept", len(kept)).
		Dur("took", time.Since(start)).
		Msg("loaded export")

	return kept, len(msgs), nil
}

// Filter returns the messages that pass the date and expression filters.
// The input is not modified.
func (a *Analyzer) Filter(msgs []models.Message) ([]models.Message, error) {
	if !a.filter.Enabled && a.where == nil {
		return msgs, nil
	}

	kept := make([]models.Message, 0, len(msgs))
	for i := range msgs {
		if !a.filter.Matches(&msgs[i]) {
			continue
		}
		if a.where != nil {
			ok, err := a.where.Match(&msgs[i])
			if err != nil {
				return nil, fmt.Errorf("message %d: %w", i, err)
			}
			if !ok {
				continue
			}
		}
		kept = append(kept, msgs[i])
	}
	return kept, nil
}

// Analyze loads the export at path and runs every aggregator over it.
func (a *Analyzer) Analyze(ctx context.Context, path string, opts stats.Options) (*Report, error) {
	startTime := time.Now()

	msgs, loaded, err := a.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	if opts.Location == nil {
		opts.Location = a.opts.Location
	}

	done := metrics.Track("summary")
	summary, err := stats.Summarize(ctx, msgs, opts)
	done()
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}

	report := NewReport(path, startTime)
	report.Loaded = loaded
	report.FilteredOut = loaded - len(msgs)
	report.Where = a.opts.Where
	report.Summary = summary

	if a.filter.Enabled {
		report.DateRange = &DateRange{
			Filtered: true,
			From:     optionalTime(a.opts.From),
			To:       optionalTime(a.opts.To),
		}
	}
	if summary.FirstMessage != nil {
		if report.DateRange == nil {
			report.DateRange = &DateRange{}
		}
		report.DateRange.Earliest = summary.FirstMessage
		report.DateRange.Latest = summary.LastMessage
	}

	report.Finish()
	return report, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
