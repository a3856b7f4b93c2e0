package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/report"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	dueFlagDate string
	dueFlagAll  bool
)

// dueCmd lists the habits still owing progress on a date.
var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List habits still due on a date",
	Args:  cobra.NoArgs,
	RunE:  runDue,
}

func init() {
	dueCmd.Flags().StringVarP(&dueFlagDate, "date", "d", "",
		"Date to check (default today)")
	dueCmd.Flags().BoolVarP(&dueFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(dueCmd)
}

func runDue(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(dueFlagDate)
	if err != nil {
		return err
	}

	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	due, err := report.BuildDue(s, date, dueFlagAll)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if due.Due == nil {
			due.Due = []report.DueRow{}
		}
		return ctx.Formatter.JSON(due)
	}

	cli := ctx.CLIFormatter()
	if len(due.Due) == 0 {
		cli.Success(fmt.Sprintf("Nothing due on %s.", due.Date))
		return nil
	}
	cli.Title(fmt.Sprintf("Due on %s (%d)", due.Date, due.Counts.Due))
	rows := make([]output.TableRow, 0, len(due.Due))
	for _, r := range due.Due {
		rows = append(rows, output.TableRow{Columns: []string{
			r.ID, r.Name, string(r.Period),
			strconv.Itoa(r.Quantity) + "/" + strconv.Itoa(r.Target),
			strconv.Itoa(r.Remaining),
		}})
	}
	cli.PrintTable([]string{"ID", "NAME", "PERIOD", "PROGRESS", "REMAINING"}, rows)
	return nil
}
