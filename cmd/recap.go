package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/report"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	recapFlagRange  string
	recapFlagBehind bool
	recapFlagAll    bool
)

// recapCmd shows completion percentages over a range.
var recapCmd = &cobra.Command{
	Use:   "recap",
	Short: "Show completion percentages over a range",
	Long: `Show per-habit completion percentages over a range: ytd (Jan 1 to
today), month (last 30 days), or week (last 7 days).

Examples:
  habitual recap
  habitual recap --range ytd
  habitual recap --behind`,
	Args: cobra.NoArgs,
	RunE: runRecap,
}

func init() {
	recapCmd.Flags().StringVarP(&recapFlagRange, "range", "r", "month",
		"Range: ytd, month, week")
	recapCmd.Flags().BoolVarP(&recapFlagBehind, "behind", "b", false,
		"Sort worst performers first")
	recapCmd.Flags().BoolVarP(&recapFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(recapCmd)
}

func runRecap(cmd *cobra.Command, args []string) error {
	r, err := report.ParseRecapRange(recapFlagRange)
	if err != nil {
		return err
	}

	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	rows, err := report.BuildRecap(s, habit.List(s, recapFlagAll), r, ctx.Today, recapFlagBehind)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(rows)
	}

	cli := ctx.CLIFormatter()
	if len(rows) == 0 {
		cli.Muted("No habits.")
		return nil
	}
	from, to, _ := r.Dates(ctx.Today)
	cli.Title(fmt.Sprintf("Recap %s (%s .. %s)", r, from, to))
	tableRows := make([]output.TableRow, 0, len(rows))
	for _, row := range rows {
		pct := "-"
		if row.Percent != nil {
			pct = fmt.Sprintf("%d%%", *row.Percent)
		}
		tableRows = append(tableRows, output.TableRow{Columns: []string{
			row.HabitID,
			row.Name,
			row.TargetLabel,
			output.ProgressBar(row.Percent, 20),
			pct,
			fmt.Sprintf("%d/%d", row.Successes, row.Eligible),
		}})
	}
	cli.PrintTable([]string{"ID", "NAME", "TARGET", "PROGRESS", "PCT", "DONE"}, tableRows)
	return nil
}
