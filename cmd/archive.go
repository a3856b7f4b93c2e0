package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

// archiveCmd archives a habit. Archived habits keep their history but
// drop out of listings, status and penalty ticks.
var archiveCmd = &cobra.Command{
	Use:   "archive HABIT",
	Short: "Archive a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchive,
}

// unarchiveCmd restores an archived habit.
var unarchiveCmd = &cobra.Command{
	Use:   "unarchive HABIT",
	Short: "Restore an archived habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnarchive,
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(unarchiveCmd)
}

func runArchive(cmd *cobra.Command, args []string) error {
	h, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.Habit, error) {
		idx, err := habit.Select(s, args[0], true)
		if err != nil {
			return model.Habit{}, err
		}
		habit.Archive(&s.Habits[idx], ctx.Today)
		return s.Habits[idx], nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.HabitResponse{
			Status: "archived",
			Habit:  output.NewHabitOutput(&h),
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Archived %s: %s", h.ID, h.Name))
	return nil
}

func runUnarchive(cmd *cobra.Command, args []string) error {
	h, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.Habit, error) {
		idx, err := habit.Select(s, args[0], true)
		if err != nil {
			return model.Habit{}, err
		}
		habit.Unarchive(&s.Habits[idx])
		return s.Habits[idx], nil
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.HabitResponse{
			Status: "unarchived",
			Habit:  output.NewHabitOutput(&h),
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Unarchived %s: %s", h.ID, h.Name))
	return nil
}
