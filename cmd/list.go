package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/habit"
	"github.com/manav03panchal/habitual/internal/output"
	"github.com/manav03panchal/habitual/internal/storage"
)

var listFlagAll bool

// listCmd lists habits.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}

	habits := habit.List(s, listFlagAll)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewHabitsResponse(habits))
	}

	cli := ctx.CLIFormatter()
	if len(habits) == 0 {
		cli.Muted("No habits yet.")
		cli.Muted("Use 'habitual add NAME' to create one.")
		return nil
	}

	rows := make([]output.TableRow, 0, len(habits))
	for i := range habits {
		h := &habits[i]
		status := ""
		if h.Archived {
			status = "archived"
		}
		rows = append(rows, output.TableRow{Columns: []string{
			h.ID,
			h.Name,
			h.Schedule.String(),
			output.TargetLabel(h.Target),
			strconv.FormatBool(h.NeedsDeclaration),
			status,
		}})
	}
	cli.PrintTable([]string{"ID", "NAME", "SCHEDULE", "TARGET", "DECLARE", "STATUS"}, rows)
	return nil
}
