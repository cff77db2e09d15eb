package main

import (
	"os"

	"github.com/spf13/cobra"

	"termcal/internal/display"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the filtered weekly timetable and a summary of the term",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	out, err := build(ctx, chooser())
	if err != nil {
		return err
	}
	if err := display.Timetable(os.Stdout, out.Timetable); err != nil {
		return err
	}
	return display.Summary(os.Stdout, out.Expanded.Occurrences)
}
