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
	declareFlagDate string
	declareFlagText string
)

// declareCmd records a stated intent for a habit on a date, satisfying
// the declaration gate for that date.
var declareCmd = &cobra.Command{
	Use:   "declare HABIT",
	Short: "Declare intent for a habit on a date",
	Long: `Declare intent for a habit on a date. Declaration-gated habits only
count check-ins on dates that carry a declaration.

Examples:
  habitual declare water --text "8 glasses today"
  habitual declare gym --date tomorrow --text "leg day"`,
	Args: cobra.ExactArgs(1),
	RunE: runDeclare,
}

func init() {
	declareCmd.Flags().StringVarP(&declareFlagDate, "date", "d", "",
		"Date of the declaration (default today)")
	declareCmd.Flags().StringVar(&declareFlagText, "text", "",
		"Declaration text")
	declareCmd.MarkFlagRequired("text")

	rootCmd.AddCommand(declareCmd)
}

func runDeclare(cmd *cobra.Command, args []string) error {
	date, err := resolveDate(declareFlagDate)
	if err != nil {
		return err
	}

	decl, err := storage.Update(ctx.StorePath, func(s *model.Store) (model.Declaration, error) {
		idx, err := habit.Select(s, args[0], false)
		if err != nil {
			return model.Declaration{}, err
		}
		return habit.Declare(s, s.Habits[idx].ID, date, nowTS(), declareFlagText)
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.DeclarationResponse{
			Status:      "declared",
			Declaration: &decl,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Declared %s for %s", decl.HabitID, decl.Date))
	cli.Printf("  %s\n", cli.Note(decl.Text))
	return nil
}
