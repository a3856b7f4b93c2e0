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
	excuseFlagDate   string
	excuseFlagKind   string
	excuseFlagReason string
)

// excuseCmd records an excuse for a habit on a date. Allowed excuses
// draw from the habit's weekly quota; once the quota is spent, further
// requests are recorded as denied rather than rejected.
var excuseCmd = &cobra.Command{
	Use:   "excuse HABIT",
	Short: "Record an excuse for a habit on a date",
	Long: `Record an excuse for a habit on a date. An allowed excuse exempts
the date from penalty evaluation and counts against the habit's weekly
quota; requests beyond the quota are stored as denied.

Examples:
  habitual excuse gym --reason "travel day"
  habitual excuse gym --date yesterday --kind denied --reason "overslept"`,
	Args: cobra.ExactArgs(1),
	RunE: runExcuse,
}

func init() {
	excuseCmd.Flags().StringVarP(&excuseFlagDate, "date", "d", "",
		"Date of the excuse (default today)")
	excuseCmd.Flags().StringVarP(&excuseFlagKind, "kind", "k", "allowed",
		"Excuse kind: allowed, denied")
	excuseCmd.Flags().StringVarP(&excuseFlagReason, "reason", "r", "",
		"Reason for the excuse")
	excuseCmd.MarkFlagRequired("reason")

	rootCmd.AddCommand(excuseCmd)
}

func runExcuse(cmd *cobra.Command, args []string) error {
	kind := model.ExcuseKind(excuseFlagKind)
	if kind != model.ExcuseAllowed && kind != model.ExcuseDenied {
		return errors.NewUsageErrorf("Invalid excuse kind: %s", excuseFlagKind)
	}

	date, err := resolveDate(excuseFlagDate)
	if err != nil {
		return err
	}

	res, err := storage.Update(ctx.StorePath, func(s *model.Store) (habit.ExcuseResult, error) {
		idx, err := habit.Select(s, args[0], false)
		if err != nil {
			return habit.ExcuseResult{}, err
		}
		h := &s.Habits[idx]
		return habit.Excuse(s, h.ID, date, nowTS(), kind, excuseFlagReason, h.ExcuseQuota())
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.ExcuseResponse{
			Status:    "recorded",
			Excuse:    &res.Excuse,
			Used:      res.Used,
			Remaining: res.Remaining,
		})
	}

	cli := ctx.CLIFormatter()
	switch res.Excuse.Kind {
	case model.ExcuseAllowed:
		cli.Success(fmt.Sprintf("Excused %s for %s", res.Excuse.HabitID, res.Excuse.Date))
	default:
		cli.Warning(fmt.Sprintf("Excuse for %s on %s recorded as denied",
			res.Excuse.HabitID, res.Excuse.Date))
		if kind == model.ExcuseAllowed {
			cli.Muted("  Weekly quota is spent; the date stays penalty-eligible.")
		}
	}
	cli.Printf("  Used this week: %d, remaining: %d\n", res.Used, res.Remaining)
	return nil
}
