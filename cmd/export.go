package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/habitual/internal/errors"
	"github.com/manav03panchal/habitual/internal/report"
	"github.com/manav03panchal/habitual/internal/storage"
)

var (
	exportFlagFormat string
	exportFlagOut    string
	exportFlagFrom   string
	exportFlagTo     string
	exportFlagAll    bool
)

// exportCmd writes a portable snapshot of habits and check-ins.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export habits and check-ins",
	Long: `Export habits and check-ins as JSON (one document) or CSV
(habits.csv and checkins.csv in a directory).

Examples:
  habitual export > backup.json
  habitual export --export-format csv --out ./backup
  habitual export --from 2026-01-01 --to 2026-06-30`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFlagFormat, "export-format", "json",
		"Export format: json, csv")
	exportCmd.Flags().StringVarP(&exportFlagOut, "out", "o", "",
		"Output file (json) or directory (csv); default stdout for json")
	exportCmd.Flags().StringVar(&exportFlagFrom, "from", "",
		"Only check-ins on or after this date")
	exportCmd.Flags().StringVar(&exportFlagTo, "to", "",
		"Only check-ins on or before this date")
	exportCmd.Flags().BoolVarP(&exportFlagAll, "all", "a", false,
		"Include archived habits")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	from, to := "", ""
	var err error
	if exportFlagFrom != "" {
		if from, err = resolveDate(exportFlagFrom); err != nil {
			return err
		}
	}
	if exportFlagTo != "" {
		if to, err = resolveDate(exportFlagTo); err != nil {
			return err
		}
	}
	if from != "" && to != "" && from > to {
		return errors.NewUsageError("Invalid range: from > to")
	}

	s, err := storage.Read(ctx.StorePath)
	if err != nil {
		return err
	}
	payload := report.BuildExport(s, from, to, exportFlagAll)

	switch exportFlagFormat {
	case "json":
		if exportFlagOut == "" {
			return ctx.Formatter.JSON(payload)
		}
		f, err := os.OpenFile(exportFlagOut, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot create %s", exportFlagOut), err)
		}
		defer f.Close()
		enc := *ctx.Formatter
		enc.Writer = f
		if err := enc.JSON(payload); err != nil {
			return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot write %s", exportFlagOut), err)
		}
		if err := f.Close(); err != nil {
			return errors.NewIOErrorWithOp("export", fmt.Sprintf("cannot close %s", exportFlagOut), err)
		}
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d habit(s), %d check-in(s) to %s",
				len(payload.Habits), len(payload.Checkins), exportFlagOut))
		}
		return nil
	case "csv":
		if exportFlagOut == "" {
			return errors.NewUsageError("CSV export requires --out DIRECTORY")
		}
		if err := report.WriteCSV(payload, exportFlagOut); err != nil {
			return err
		}
		if !ctx.IsJSON() {
			ctx.CLIFormatter().Success(fmt.Sprintf("Exported %d habit(s), %d check-in(s) to %s",
				len(payload.Habits), len(payload.Checkins), exportFlagOut))
		}
		return nil
	default:
		return errors.NewUsageErrorf("Invalid export format: %s", exportFlagFormat)
	}
}
