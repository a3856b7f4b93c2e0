package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/report"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	statsFlagHabit string
	statsFlagFrom  string
	statsFlagTo    string
	statsFlagAll   bool
)

// statsCmd shows streaks and success rates.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks and success rates",
	Long: `Show current streak, longest streak, and success rate per habit.

Without --from, day habits cover the last 30 days and week habits the
last 12 ISO weeks.

Examples:
  habitual stats
  habitual stats --habit water
  habitual stats --from 2026-01-01 --to 2026-03-31`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFlagHabit, "habit", "",
		"Limit to one habit (id or name prefix)")
	statsCmd.Flags().StringVar(&statsFlagFrom, "from", "",
		"Window start (default per-habit)")
	statsCmd.Flags().StringVar(&statsFlagTo, "to", "",
		"Window end (default today)")
	statsCmd.Flags().BoolVarP(&statsFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	var habits []model.Habit
	if statsFlagHabit != "" {
		idx, err := habit.Select(s, statsFlagHabit, statsFlagAll)
		if err != nil {
			return err
		}
		habits = []model.Habit{s.Habits[idx]}
	} else {
		habits = habit.List(s, statsFlagAll)
	}

	to := ctx.Today
	if statsFlagTo != "" {
		if to, err = resolveDate(statsFlagTo); err != nil {
			return err
		}
	}
	from := ""
	if statsFlagFrom != "" {
		if from, err = resolveDate(statsFlagFrom); err != nil {
			return err
		}
		if from > to {
			return errors.NewUsageError("Invalid range: from > to")
		}
	}

	rows := make([]report.StatsRow, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		w := report.Window{From: from, To: to}
		if from == "" {
			if w, err = report.DefaultStatsWindow(h, to); err != nil {
				return err
			}
		}
		hr, err := report.BuildStats(s, []model.Habit{*h}, w.From, w.To)
		if err != nil {
			return err
		}
		rows = append(rows, hr...)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(rows)
	}

	cli := ctx.CLIFormatter()
	if len(rows) == 0 {
		cli.Muted("No habits.")
		return nil
	}
	tableRows := make([]output.TableRow, 0, len(rows))
	for _, r := range rows {
		rate := "-"
		if r.SuccessRate.Rate != nil {
			rate = fmt.Sprintf("%d%%", int(*r.SuccessRate.Rate*100+0.5))
		}
		tableRows = append(tableRows, output.TableRow{Columns: []string{
			r.HabitID,
			r.Name,
			r.Window.From + ".." + r.Window.To,
			strconv.Itoa(r.CurrentStreak),
			strconv.Itoa(r.LongestStreak),
			fmt.Sprintf("%d/%d", r.SuccessRate.Successes, r.SuccessRate.Eligible),
			rate,
		}})
	}
	cli.PrintTable([]string{"ID", "NAME", "WINDOW", "STREAK", "LONGEST", "DONE", "RATE"}, tableRows)
	return nil
}
