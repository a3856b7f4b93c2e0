package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	checkinFlagDate   string
	checkinFlagQty    int
	checkinFlagSet    int
	checkinFlagDelete bool
)

// checkinCmd records progress for a habit on a date.
var checkinCmd = &cobra.Command{
	Use:     "checkin HABIT",
	Aliases: []string{"ci"},
	Short:   "Record progress for a habit",
	Long: `Record progress for a habit on a date.

--qty adds to the day's quantity, --set replaces it, --delete removes
the record. The three are mutually exclusive; setting 0 and deleting
are the same operation.

Examples:
  habitual checkin water
  habitual checkin water --qty 3
  habitual checkin water --set 8 --date yesterday
  habitual checkin water --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckin,
}

func init() {
	checkinCmd.Flags().StringVarP(&checkinFlagDate, "date", "d", "",
		"Date of the check-in (default today)")
	checkinCmd.Flags().IntVarP(&checkinFlagQty, "qty", "q", 1,
		"Quantity to add")
	checkinCmd.Flags().IntVar(&checkinFlagSet, "set", 0,
		"Quantity to set, replacing the day's total")
	checkinCmd.Flags().BoolVar(&checkinFlagDelete, "delete", false,
		"Remove the day's check-in")

	rootCmd.AddCommand(checkinCmd)
}

func runCheckin(cmd *cobra.Command, args []string) error {
	modes := 0
	if cmd.Flags().Changed("qty") {
		modes++
	}
	if cmd.Flags().Changed("set") {
		modes++
	}
	if checkinFlagDelete {
		modes++
	}
	if modes > 1 {
		return errors.NewUsageError("--qty, --set, and --delete are mutually exclusive")
	}

	date, err := resolveDate(checkinFlagDate)
	if err != nil {
		return err
	}

	type result struct {
		habit    model.Habit
		total    int
		declared bool
	}
	res, err := storage.Update(ctx.StorePath, func(s *model.Store) (result, error) {
		idx, err := habit.Select(s, args[0], false)
		if err != nil {
			return result{}, err
		}
		h := s.Habits[idx]
		declared := habit.IsDeclared(s, &h, date)

		switch {
		case checkinFlagDelete:
			if err := habit.SetQuantity(s, h.ID, date, 0); err != nil {
				return result{}, err
			}
			return result{habit: h, total: 0, declared: declared}, nil
		case cmd.Flags().Changed("set"):
			if err := habit.SetQuantity(s, h.ID, date, checkinFlagSet); err != nil {
				return result{}, err
			}
			return result{habit: h, total: checkinFlagSet, declared: declared}, nil
		default:
			total, err := habit.AddQuantity(s, h.ID, date, checkinFlagQty)
			if err != nil {
				return result{}, err
			}
			return result{habit: h, total: total, declared: declared}, nil
		}
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		status := "recorded"
		if checkinFlagDelete {
			status = "deleted"
		}
		return ctx.Formatter.JSON(output.CheckinResponse{
			Status:   status,
			HabitID:  res.habit.ID,
			Date:     date,
			Quantity: res.total,
		})
	}

	cli := ctx.CLIFormatter()
	if checkinFlagDelete {
		cli.Success(fmt.Sprintf("Removed check-in for %s on %s", cli.HabitName(res.habit.Name), date))
		return nil
	}
	cli.Success(fmt.Sprintf("%s on %s: %d/%s", cli.HabitName(res.habit.Name),
		date, res.total, output.TargetLabel(res.habit.Target)))
	if !res.declared {
		cli.Muted("  Not declared yet; this check-in does not count until you declare.")
	}
	return nil
}
