package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"termcal/internal/filter"
	"termcal/internal/model"
	"termcal/internal/pipeline"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the subjects and ambiguous slot labels of the grid",
	Long: `List what the filter stages would offer, in the form expected by the
"selections" section of the config file. Slot labels are listed before any
subject is dropped.`,
	RunE: runLabels,
}

func init() {
	rootCmd.AddCommand(labelsCmd)
}

func runLabels(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	t, err := pipeline.LoadGrid(ctx, cfg, pipeline.Semester(cfg, time.Now()))
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	section := func(name string, items []string) {
		fmt.Fprintf(w, "%s:\n", name)
		for _, it := range items {
			fmt.Fprintf(w, "  - %q\n", it)
		}
	}
	section(string(filter.StageSubjects), t.Names())
	section(string(filter.StageLectures), filter.Labels(t, model.NewCategorySet(model.Lecture), cfg.MergeTDTP))
	section(string(filter.StageTutorials), filter.Labels(t, model.NewCategorySet(model.TutorialTD, model.PracticalTP), cfg.MergeTDTP))
	return nil
}
