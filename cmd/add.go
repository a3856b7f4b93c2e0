package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	addFlagSchedule    string
	addFlagPeriod      string
	addFlagTarget      int
	addFlagNotes       string
	addFlagNeedsDecl   bool
	addFlagExcuseQuota int
)

// addCmd creates a new habit.
var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a new habit",
	Long: `Add a new habit with a weekday schedule and a target.

Examples:
  habitual add "Water" --schedule everyday --target 8
  habitual add "Gym" --schedule mon,wed,fri
  habitual add "Reading" --period week --target 5 --needs-declaration=false`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagSchedule, "schedule", "s", "everyday",
		"Schedule: everyday, weekdays, weekends, or day list (mon,wed,fri)")
	addCmd.Flags().StringVarP(&addFlagPeriod, "period", "p", "day",
		"Target period: day, week")
	addCmd.Flags().IntVarP(&addFlagTarget, "target", "t", 1,
		"Target quantity per period")
	addCmd.Flags().StringVarP(&addFlagNotes, "notes", "n", "",
		"Free-form notes")
	addCmd.Flags().BoolVar(&addFlagNeedsDecl, "needs-declaration", true,
		"Require a declaration before check-ins count")
	addCmd.Flags().IntVar(&addFlagExcuseQuota, "excuse-quota", model.DefaultExcuseQuota,
		"Allowed excuses per ISO week")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	h, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.Habit, error) {
		h, err := habit.New(habit.NextID(s), args[0], addFlagSchedule,
			model.Period(addFlagPeriod), addFlagTarget, addFlagNotes,
			ctx.Today, addFlagNeedsDecl, addFlagExcuseQuota)
		if err != nil {
			return model.Habit{}, err
		}
		s.Habits = append(s.Habits, h)
		return h, nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.HabitResponse{
			Status: "created",
			Habit:  output.NewHabitOutput(&h),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Added habit %s: %s", h.ID, cli.HabitName(h.Name)))
	cli.Printf("  Schedule: %s\n", h.Schedule.String())
	cli.Printf("  Target: %s\n", output.TargetLabel(h.Target))
	if h.NeedsDeclaration {
		cli.Printf("  Needs declaration: yes\n")
	}
	if h.Notes != "" {
		cli.Printf("  Notes: %s\n", cli.Note(h.Notes))
	}
	return nil
}
