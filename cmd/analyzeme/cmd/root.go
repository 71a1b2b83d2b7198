// Package cmd contains the CLI commands for analyzeme.
package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/analyzeme/pkg/config"
)

var (
	// Used for flags
	cfgFile     string
	verbose     bool
	output      string
	format      string
	fromDate    string
	toDate      string
	where       string
	timezone    string
	metricsFile string

	// Resolved in PersistentPreRunE
	cfg *config.Config
	loc *time.Location
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "analyzeme",
	Short: "analyzeme - GroupMe chat export analyzer",
	Long: `analyzeme reads a GroupMe message export (a JSON array of messages,
newest first) and reports per-user statistics.

Reports:
  - Message counts and attachment counts
  - Average message length and likes
  - Messages per day and per hour of day
  - A readable transcript of the conversation

Examples:
  # Who talks the most
  analyzeme count messages.json

  # Same as a pie chart
  analyzeme count messages.json --plot pie

  # Average likes for users with more than 10 messages
  analyzeme likes messages.json -a -t 10

  # Full summary as JSON for March 2024
  analyzeme summary messages.json -f json --from 2024-03-01 --to 2024-03-31

  # Only long messages sent in the evening
  analyzeme count messages.json --where 'length > 100 && hour >= 18'`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	// Run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/analyzeme/config.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVarP(&output, "output", "o", "", "write results to file (default: stdout)")
	pf.StringVarP(&format, "format", "f", "text", "output format (text, json, csv)")
	pf.StringVar(&fromDate, "from", "", "only messages on or after date (YYYY-MM-DD, 'YYYY-MM-DD HH:MM', M/D/YYYY or RFC3339)")
	pf.StringVar(&toDate, "to", "", "only messages on or before date (a whole day when no time is given)")
	pf.StringVar(&where, "where", "", "only messages matching expression (e.g. 'likes > 2')")
	pf.StringVar(&timezone, "timezone", "", "timezone for days and hours (IANA name or Local)")
	pf.StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to file after the run")
}

// setup configures logging and merges the config file under the flags.
func setup(cmd *cobra.Command, args []string) error {
	setupLogging(cmd.ErrOrStderr(), verbose)

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		format = cfg.Format
	}
	if !flags.Changed("metrics-file") {
		metricsFile = cfg.MetricsFile
	}
	if !flags.Changed("timezone") {
		timezone = cfg.Timezone
	}

	switch format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid format: %s (use text, json or csv)", format)
	}

	loc, err = config.ParseLocation(timezone)
	if err != nil {
		return err
	}

	log.Debug().
		Str("config", cfgFile).
		Str("format", format).
		Str("timezone", loc.String()).
		Msg("settings resolved")
	return nil
}

func setupLogging(w io.Writer, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// GetFormat returns the output format.
func GetFormat() string {
	return format
}
