package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/model"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/penalty"
	"github.com/manav03panchal/habitual/internal/storage"
)

// penaltyCmd groups the penalty debt engine commands.
var penaltyCmd = &cobra.Command{
	Use:   "penalty",
	Short: "Manage penalty rules and debts",
	Long: `Arm habits with penalty rules, evaluate dates for new debts, and
close debts by resolving or voiding them.

Examples:
  habitual penalty arm water --multiplier 2 --cap 8
  habitual penalty tick
  habitual penalty status
  habitual penalty resolve pd_h0001_20260115 --reason "made it up"`,
}

// Penalty subcommand flags.
var (
	armFlagMultiplier   int
	armFlagCap          int
	armFlagDeadlineDays int

	tickFlagDate            string
	tickFlagIncludeArchived bool

	penaltyListFlagAll bool

	resolveFlagReason string
	voidFlagReason    string
)

var penaltyArmCmd = &cobra.Command{
	Use:   "arm HABIT",
	Short: "Arm (or re-arm) a habit's penalty rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runPenaltyArm,
}

var penaltyTickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Evaluate a date and create newly due debts",
	Long: `Evaluate a date across all armed day-period habits and create a debt
for each unexcused miss. Re-ticking the same date is a no-op.`,
	Args: cobra.NoArgs,
	RunE: runPenaltyTick,
}

var penaltyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show outstanding debts as of today",
	Args:  cobra.NoArgs,
	RunE:  runPenaltyStatus,
}

var penaltyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List penalty debts",
	Args:  cobra.NoArgs,
	RunE:  runPenaltyList,
}

var penaltyResolveCmd = &cobra.Command{
	Use:   "resolve DEBT_ID",
	Short: "Close a debt as made up",
	Args:  cobra.ExactArgs(1),
	RunE:  runPenaltyResolve,
}

var penaltyVoidCmd = &cobra.Command{
	Use:   "void DEBT_ID",
	Short: "Close a debt as written off",
	Args:  cobra.ExactArgs(1),
	RunE:  runPenaltyVoid,
}

func init() {
	penaltyArmCmd.Flags().IntVarP(&armFlagMultiplier, "multiplier", "m", 2,
		"Escalation multiplier")
	penaltyArmCmd.Flags().IntVarP(&armFlagCap, "cap", "c", 8,
		"Maximum debt quantity")
	penaltyArmCmd.Flags().IntVar(&armFlagDeadlineDays, "deadline-days", 1,
		"Days until a new debt falls due")

	penaltyTickCmd.Flags().StringVarP(&tickFlagDate, "date", "d", "",
		"Date to evaluate (default today)")
	penaltyTickCmd.Flags().BoolVar(&tickFlagIncludeArchived, "include-archived", false,
		"Evaluate archived habits too")

	penaltyListCmd.Flags().BoolVarP(&penaltyListFlagAll, "all", "a", false,
		"Include closed debts")

	penaltyResolveCmd.Flags().StringVarP(&resolveFlagReason, "reason", "r", "",
		"Reason for resolving")
	penaltyResolveCmd.MarkFlagRequired("reason")

	penaltyVoidCmd.Flags().StringVarP(&voidFlagReason, "reason", "r", "",
		"Reason for voiding")
	penaltyVoidCmd.MarkFlagRequired("reason")

	penaltyCmd.AddCommand(penaltyArmCmd)
	penaltyCmd.AddCommand(penaltyTickCmd)
	penaltyCmd.AddCommand(penaltyStatusCmd)
	penaltyCmd.AddCommand(penaltyListCmd)
	penaltyCmd.AddCommand(penaltyResolveCmd)
	penaltyCmd.AddCommand(penaltyVoidCmd)
	rootCmd.AddCommand(penaltyCmd)
}

func runPenaltyArm(cmd *cobra.Command, args []string) error {
	rule, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.PenaltyRule, error) {
		idx, err := habit.Select(s, args[0], false)
		if err != nil {
			return model.PenaltyRule{}, err
		}
		return penalty.UpsertRule(s, s.Habits[idx].ID, ctx.Today, nowTS(),
			armFlagMultiplier, armFlagCap, armFlagDeadlineDays)
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.RuleResponse{Status: "armed", Rule: &rule})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Armed %s (%s)", rule.HabitID, rule.ID))
	cli.Printf("  Multiplier: %d, cap: %d, deadline: %d day(s)\n",
		rule.Multiplier, rule.Cap, rule.DeadlineDays)
	return nil
}

func runPenaltyTick(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(tickFlagDate)
	if err != nil {
		return err
	}

	created, err := storage.Update(ctx.StorePath, func(s *model.Store) ([]model.PenaltyDebt, error) {
		return penalty.Tick(s, date, nowTS(), tickFlagIncludeArchived)
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.TickResponse{
			Status:  "ticked",
			Date:    date,
			Created: created,
		})
	}

	cli := ctx.CLIFormatter()
	if len(created) == 0 {
		cli.Muted(fmt.Sprintf("No new debts for %s.", date))
		return nil
	}
	cli.Warning(fmt.Sprintf("%d new debt(s) for %s:", len(created), date))
	for _, d := range created {
		cli.Printf("  %s  %s  qty %d  due %s\n", d.ID, d.HabitID, d.Quantity, d.DueDate)
	}
	return nil
}

func runPenaltyStatus(cmd *cobra.Command, args []string) error {
	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	debts, err := penalty.OutstandingAsOf(s, ctx.Today)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if debts == nil {
			debts = []model.PenaltyDebt{}
		}
		return ctx.Formatter.JSON(output.DebtsResponse{
			Date:  ctx.Today,
			Debts: debts,
			Count: len(debts),
		})
	}

	cli := ctx.CLIFormatter()
	if len(debts) == 0 {
		cli.Success("No outstanding debts.")
		return nil
	}
	cli.Title(fmt.Sprintf("Outstanding debts as of %s (%d)", ctx.Today, len(debts)))
	rows := make([]output.TableRow, 0, len(debts))
	for _, d := range debts {
		name := d.HabitID
		if h := s.FindHabit(d.HabitID); h != nil {
			name = h.Name
		}
		rows = append(rows, output.TableRow{Columns: []string{
			d.ID, name, strconv.Itoa(d.Quantity), d.DueDate,
		}})
	}
	cli.PrintTable([]string{"DEBT", "HABIT", "QTY", "DUE"}, rows)
	return nil
}

func runPenaltyList(cmd *cobra.Command, args []string) error {
	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	closed := make(map[string]model.PenaltyActionKind)
	for _, a := range s.PenaltyActions {
		if _, ok := closed[a.DebtID]; !ok {
			closed[a.DebtID] = a.Kind
		}
	}

	debts := []model.PenaltyDebt{}
	for _, d := range s.PenaltyDebts {
		if _, isClosed := closed[d.ID]; isClosed && !penaltyListFlagAll {
			continue
		}
		debts = append(debts, d)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.DebtsResponse{
			Date:  ctx.Today,
			Debts: debts,
			Count: len(debts),
		})
	}

	cli := ctx.CLIFormatter()
	if len(debts) == 0 {
		cli.Muted("No debts.")
		return nil
	}
	rows := make([]output.TableRow, 0, len(debts))
	for _, d := range debts {
		state := "open"
		if kind, ok := closed[d.ID]; ok {
			state = pastTense(kind)
		}
		rows = append(rows, output.TableRow{Columns: []string{
			d.ID, d.HabitID, strconv.Itoa(d.Quantity), d.TriggerDate, d.DueDate, state,
		}})
	}
	cli.PrintTable([]string{"DEBT", "HABIT", "QTY", "TRIGGER", "DUE", "STATE"}, rows)
	return nil
}

func pastTense(kind model.PenaltyActionKind) string {
	if kind == model.ActionVoid {
		return "voided"
	}
	return "resolved"
}

func runPenaltyClose(debtID string, kind model.PenaltyActionKind, reason string) error {
	action, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.PenaltyAction, error) {
		return penalty.Close(s, debtID, kind, ctx.Today, nowTS(), reason)
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.ActionResponse{
			Status: pastTense(action.Kind),
			Action: &action,
		})
	}

	cli := ctx.CLIFormatter()
	if action.Kind != kind {
		cli.Warning(fmt.Sprintf("Debt %s was already closed (%s on %s)",
			action.DebtID, action.Kind, action.Date))
		return nil
	}
	cli.Success(fmt.Sprintf("Debt %s %s", action.DebtID, pastTense(action.Kind)))
	return nil
}

func runPenaltyResolve(cmd *cobra.Command, args []string) error {
	return runPenaltyClose(args[0], model.ActionResolve, resolveFlagReason)
}

func runPenaltyVoid(cmd *cobra.Command, args []string) error {
	return runPenaltyClose(args[0], model.ActionVoid, voidFlagReason)
}
