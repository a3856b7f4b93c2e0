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
	statusFlagWeekOf string
	statusFlagAll    bool
)

// statusCmd shows today's scheduled habits and the week summary.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's habits and the week summary",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusFlagWeekOf, "week-of", "",
		"Show the week containing this date instead of the current week")
	statusCmd.Flags().BoolVarP(&statusFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	weekOf := ""
	if statusFlagWeekOf != "" {
		d, err := resolveDate(statusFlagWeekOf)
		if err != nil {
			return err
		}
		weekOf = d
	}

	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	st, err := report.BuildStatus(s, ctx.Today, weekOf, statusFlagAll)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(st)
	}

	cli := ctx.CLIFormatter()
	cli.Title(fmt.Sprintf("Today %s", st.Today.Date))
	if len(st.Today.Habits) == 0 {
		cli.Muted("  Nothing scheduled.")
	}
	for _, r := range st.Today.Habits {
		line := fmt.Sprintf("  %s %s  %d/%d", cli.Checkmark(r.Done),
			cli.HabitName(r.Name), r.Quantity, r.Target)
		if r.Period == "week" {
			line += " this week"
		}
		cli.Println(line)
		if r.NeedsDeclaration && !r.Declared {
			cli.Muted("      not declared")
		}
	}

	cli.Println("")
	cli.Title(fmt.Sprintf("Week %s (%s .. %s)", st.Week.ID, st.Week.StartDate, st.Week.EndDate))
	rows := make([]output.TableRow, 0, len(st.Week.Habits))
	for _, r := range st.Week.Habits {
		progress := ""
		if r.ScheduledDays != nil {
			progress = fmt.Sprintf("%d/%d days", *r.DoneScheduledDays, *r.ScheduledDays)
		} else if r.Target != nil {
			progress = strconv.Itoa(*r.Quantity) + "/" + strconv.Itoa(*r.Target)
		}
		rows = append(rows, output.TableRow{Columns: []string{
			r.ID, r.Name, string(r.Period), progress,
		}})
	}
	cli.PrintTable([]string{"ID", "NAME", "PERIOD", "PROGRESS"}, rows)
	return nil
}
