package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/schedule"
	"github.com/manav03panchal/habitual/internal/storage"
	"github.com/manav03panchal/habitual/internal/validate"
)

var (
	editFlagName        string
	editFlagSchedule    string
	editFlagTarget      int
	editFlagNotes       string
	editFlagNeedsDecl   string
	editFlagExcuseQuota int
)

// editCmd updates habit attributes in place. The target period is fixed
// at creation; changing it would redefine the habit's history.
var editCmd = &cobra.Command{
	Use:   "edit HABIT",
	Short: "Edit a habit",
	Long: `Edit a habit's name, schedule, target, notes, or gating knobs.

Examples:
  habitual edit water --target 10
  habitual edit gym --schedule mon,thu
  habitual edit reading --needs-declaration=false`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFlagName, "name", "", "New name")
	editCmd.Flags().StringVarP(&editFlagSchedule, "schedule", "s", "", "New schedule")
	editCmd.Flags().IntVarP(&editFlagTarget, "target", "t", 0, "New target quantity")
	editCmd.Flags().StringVarP(&editFlagNotes, "notes", "n", "", "New notes")
	editCmd.Flags().StringVar(&editFlagNeedsDecl, "needs-declaration", "",
		"Require a declaration before check-ins count (true/false)")
	editCmd.Flags().IntVar(&editFlagExcuseQuota, "excuse-quota", -1,
		"Allowed excuses per ISO week")

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	h, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.Habit, error) {
		idx, err := habit.Select(s, args[0], true)
		if err != nil {
			return model.Habit{}, err
		}
		h := &s.Habits[idx]

		updated := false

		if editFlagName != "" {
			name, err := validate.HabitName(editFlagName)
			if err != nil {
				return model.Habit{}, err
			}
			h.Name = name
			updated = true
		}
		if editFlagSchedule != "" {
			sched, err := schedule.ParsePattern(editFlagSchedule)
			if err != nil {
				return model.Habit{}, err
			}
			h.Schedule = sched
			updated = true
		}
		if cmd.Flags().Changed("target") {
			if err := validate.Positive("target", editFlagTarget); err != nil {
				return model.Habit{}, err
			}
			h.Target.Quantity = editFlagTarget
			updated = true
		}
		if cmd.Flags().Changed("notes") {
			h.Notes = strings.TrimSpace(editFlagNotes)
			updated = true
		}
		if editFlagNeedsDecl != "" {
			switch editFlagNeedsDecl {
			case "true":
				h.NeedsDeclaration = true
			case "false":
				h.NeedsDeclaration = false
			default:
				return model.Habit{}, errors.NewUsageErrorf(
					"Invalid needs-declaration: %s", editFlagNeedsDecl)
			}
			updated = true
		}
		if cmd.Flags().Changed("excuse-quota") {
			if err := validate.NonNegative("excuse quota", editFlagExcuseQuota); err != nil {
				return model.Habit{}, err
			}
			h.SetExcuseQuota(editFlagExcuseQuota)
			updated = true
		}

		if !updated {
			return model.Habit{}, errors.NewUsageError("No updates specified")
		}
		return *h, nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.HabitResponse{
			Status: "updated",
			Habit:  output.NewHabitOutput(&h),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Updated %s: %s", h.ID, cli.HabitName(h.Name)))
	cli.Printf("  Schedule: %s\n", h.Schedule.String())
	cli.Printf("  Target: %s\n", output.TargetLabel(h.Target))
	return nil
}
