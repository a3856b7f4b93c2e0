// Package cmd provides the CLI commands for Habitual.
package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/logging"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/parser"
	"github.com/manav03panchal/habitual/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagStore   string
	flagToday   string
	flagFormat  string
	flagColor   string
	flagNoColor bool
	flagDebug   bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "habitual",
	Short: "A habit tracker with declarations, excuses, and penalty debts",
	Long: `Habitual is a command-line habit tracker. Habits carry a weekday
schedule and a per-day or per-week target; progress is recorded with
check-ins. Habits can require an up-front declaration before check-ins
count, misses can be excused against a weekly quota, and armed habits
accrue escalating penalty debts for unexcused misses.

Examples:
  habitual add "Water" --schedule everyday --target 8
  habitual checkin water --qty 2
  habitual declare water --text "8 glasses today"
  habitual penalty arm water --multiplier 2 --cap 8
  habitual penalty tick
  habitual recap --range month`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		if flagDebug {
			logging.InitDebug()
		} else {
			logging.Init(logging.DefaultConfig())
		}

		format, ok := output.ParseFormat(flagFormat)
		if !ok {
			return errors.NewUsageErrorf("Invalid format: %s", flagFormat)
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}
		if flagNoColor {
			colorMode = output.ColorNever
		}

		opts := runtime.DefaultOptions()
		opts.StorePath = flagStore
		opts.Today = flagToday
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		ctx.Debugf("store=%s today=%s", ctx.StorePath, ctx.Today)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show today's status
		return runStatus(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "",
		"Store file path (default $XDG_DATA_HOME/habitual/store.json)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "",
		"Override today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false,
		"Disable color output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("habitual %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
	},
}

// nowTS returns the RFC 3339 timestamp recorded on mutations.
func nowTS() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// resolveDate turns a date flag value into a calendar date, accepting
// natural language relative to the logical today.
func resolveDate(input string) (string, error) {
	return parser.ParseDate(input, ctx.Today)
}
