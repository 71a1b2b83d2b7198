package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/internal/batch"
	"github.com/good-yellow-bee/analyzeme/internal/metrics"
	"github.com/good-yellow-bee/analyzeme/internal/models"
	"github.com/good-yellow-bee/analyzeme/internal/render"
	"github.com/good-yellow-bee/analyzeme/internal/stats"
)

// newContext returns a context canceled on SIGINT or SIGTERM.
func newContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("received interrupt, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// newAnalyzer builds an analyzer from the global filter flags.
func newAnalyzer() (*batch.Analyzer, error) {
	from, err := batch.ParseDateBound(fromDate, loc, batch.LowerBound)
	if err != nil {
		return nil, fmt.Errorf("invalid --from: %w", err)
	}

	to, err := batch.ParseDateBound(toDate, loc, batch.UpperBound)
	if err != nil {
		return nil, fmt.Errorf("invalid --to: %w", err)
	}

	return batch.NewAnalyzer(&batch.AnalyzerOptions{
		From:     from,
		To:       to,
		Where:    where,
		Location: loc,
	})
}

// withMessages loads and filters the export at path, then passes the kept
// messages and the output writer to fn.
func withMessages(cmd *cobra.Command, path string, fn func(w io.Writer, msgs []models.Message) error) error {
	ctx, stop := newContext()
	defer stop()

	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}

	msgs, _, err := analyzer.Load(ctx, path)
	if err != nil {
		return err
	}

	return writeOutput(cmd, func(w io.Writer) error {
		return fn(w, msgs)
	})
}

// writeOutput runs fn against the --output destination and then writes the
// metrics textfile if one is configured.
func writeOutput(cmd *cobra.Command, fn func(w io.Writer) error) error {
	w := cmd.OutOrStdout()

	var file *os.File
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		file = f
		w = f
	}

	err := fn(w)
	if file != nil {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output file: %w", cerr)
		}
	}
	if err != nil {
		return err
	}
	if file != nil {
		log.Info().Str("path", output).Msg("results written")
	}

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		log.Info().Str("path", metricsFile).Msg("metrics written")
	}
	return nil
}

// aggregate runs fn as the named aggregator, recording its metrics.
func aggregate[T any](name string, fn func() T) T {
	defer metrics.Track(name)()
	return fn()
}

// resolveThreshold applies the config default when --threshold was not given.
func resolveThreshold(cmd *cobra.Command, threshold int) (int, error) {
	if !cmd.Flags().Changed("threshold") {
		threshold = cfg.Threshold
	}
	if threshold < 0 {
		return 0, fmt.Errorf("invalid --threshold: %d (must not be negative)", threshold)
	}
	return threshold, nil
}

func statsOptions(threshold int, average bool) stats.Options {
	return stats.Options{
		Threshold: threshold,
		Average:   average,
		Location:  loc,
	}
}

func newExporter(w io.Writer) *batch.Exporter {
	f, _ := batch.ParseExportFormat(format)
	return batch.NewExporter(f, w)
}

func newChart(w io.Writer) *render.Chart {
	mode, _ := render.ParseColorMode(cfg.Color)
	return render.NewChart(w, render.ChartOptions{
		Width: cfg.ChartWidth,
		Color: mode,
	})
}

// writeRanked prints a ranked mapping in the selected format. valueName
// labels the value column of structured output.
func writeRanked[V stats.Number](w io.Writer, valueName string, entries []stats.Entry[V]) error {
	if format == "text" {
		return render.Text(w, entries)
	}
	return batch.ExportEntries(newExporter(w), valueName, entries)
}
