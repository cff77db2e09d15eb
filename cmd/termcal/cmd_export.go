package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"termcal/internal/csvio"
	"termcal/internal/ics"
	appLog "termcal/internal/log"
)

const defaultExport = "timetable"

var exportCSV bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Expand the term and write it as an iCalendar file",
	Long: `Expand the selected sessions over the semester and write one event per
occurrence. The ".ics" extension is added when missing.

Examples:
  # Interactive selection, default output timetable.ics
  termcal export

  # Non-interactive, using the selections in the config file
  termcal export --preset -e s2.ics --semester 2

  # Also write a CSV listing next to the calendar
  termcal export --csv
`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().BoolVar(&exportCSV, "csv", false, "Also write the occurrences as CSV")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	out, err := build(ctx, chooser())
	if err != nil {
		return err
	}
	occs := out.Expanded.Occurrences

	path := cfg.Export
	if path == "" {
		path = defaultExport
	}
	cal := ics.Export(occs, ics.ExportConfig{
		Location:    cfg.Location(),
		UseTimezone: cfg.UseTimezone,
		Language:    "fr",
	})
	written, err := ics.WriteFile(path, cal)
	if err != nil {
		return err
	}
	appLog.Info("calendar exported", "path", written, "events", len(occs))
	fmt.Fprintf(cmd.OutOrStdout(), "%d events written to %s\n", len(occs), written)

	if exportCSV {
		csvPath, err := csvio.WriteOccurrencesFile(strings.TrimSuffix(written, filepath.Ext(written)), occs)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "occurrences listed in %s\n", csvPath)
	}
	return nil
}
