package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

// showCmd shows one habit in detail.
var showCmd = &cobra.Command{
	Use:   "show HABIT",
	Short: "Show a habit's details and recent check-ins",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	idx, err := habit.Select(s, args[0], true)
	if err != nil {
		return err
	}
	h := &s.Habits[idx]

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.HabitResponse{
			Status: "ok",
			Habit:  output.NewHabitOutput(h),
		})
	}

	cli := ctx.CLIFormatter()
	cli.Title(fmt.Sprintf("%s  %s", h.ID, cli.HabitName(h.Name)))
	cli.Printf("  Schedule: %s\n", h.Schedule.String())
	cli.Printf("  Target: %s\n", output.TargetLabel(h.Target))
	cli.Printf("  Created: %s\n", h.CreatedDate)
	cli.Printf("  Needs declaration: %v\n", h.NeedsDeclaration)
	cli.Printf("  Excuse quota: %d/week\n", h.ExcuseQuota())
	if h.Notes != "" {
		cli.Printf("  Notes: %s\n", cli.Note(h.Notes))
	}
	if h.Archived {
		cli.Printf("  Archived: %s\n", h.ArchivedDate)
	}

	checkins := habit.CheckinsForHabit(s, h.ID)
	if len(checkins) > 0 {
		cli.Println("")
		cli.Println("Recent check-ins:")
		start := len(checkins) - 7
		if start < 0 {
			start = 0
		}
		for _, c := range checkins[start:] {
			cli.Printf("  %s  %d\n", c.Date, c.Quantity)
		}
	}
	return nil
}
