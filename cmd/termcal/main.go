package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/spf13/cobra"

	"termcal/internal/config"
	"termcal/internal/filter"
	appLog "termcal/internal/log"
	"termcal/internal/pipeline"
	"termcal/internal/prompt"
)

var (
	cfg *config.Config

	configPath string
	semester   int
	firstDay   string
	tdAreTP    bool
	weekSkip   bool
	noTZ       bool
	exportPath string
	usePreset  bool
)

var rootCmd = &cobra.Command{
	Use:   "termcal",
	Short: "Turn a weekly course grid into a term calendar",
	Long: `termcal reads a weekly timetable grid, lets you pick your subjects and
sessions, and expands the result over the semester into calendar events.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "termcal.yaml", "Path to config file")
	pf.IntVarP(&semester, "semester", "s", 0, "Semester to expand (1 or 2, 0 = current)")
	pf.StringVar(&firstDay, "first-day", "", "First teaching Monday of the year (YYYY-MM-DD)")
	pf.BoolVar(&tdAreTP, "td-are-tp", false, "Treat same-named TD and TP sessions as one activity")
	pf.BoolVar(&weekSkip, "week-skip", false, "Start TD/TP one week after lectures")
	pf.BoolVar(&noTZ, "no-tz", false, "Write floating times instead of tagging the timezone")
	pf.StringVarP(&exportPath, "export", "e", "", "Output path for exported calendars")
	pf.BoolVar(&usePreset, "preset", false, "Answer the filter stages from the config selections")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the config file and applies flags set on the command line.
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("semester") {
		c.Semester = semester
	}
	if flags.Changed("first-day") {
		c.FirstDay = firstDay
	}
	if flags.Changed("td-are-tp") {
		c.MergeTDTP = tdAreTP
	}
	if flags.Changed("week-skip") {
		c.WeekSkip = weekSkip
	}
	if flags.Changed("no-tz") {
		c.UseTimezone = !noTZ
	}
	if flags.Changed("export") {
		c.Export = exportPath
	}
	if err := c.Validate(); err != nil {
		return err
	}

	appLog.SetLevel(appLog.ParseLevel(c.LogLevel))
	appLog.Debug("effective config",
		"config_path", configPath,
		"semester", c.Semester,
		"first_day", c.FirstDay,
		"merge_td_tp", c.MergeTDTP,
		"week_skip", c.WeekSkip,
		"use_timezone", c.UseTimezone,
		"grid_path", c.Grid.Path,
		"grid_url", c.Grid.URL,
	)
	cfg = c
	return nil
}

// signalContext is cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// chooser answers the filter stages interactively unless --preset is set.
func chooser() filter.Chooser {
	if usePreset {
		return presetFromConfig(cfg)
	}
	return prompt.NewTerminal(os.Stdin, os.Stdout)
}

func presetFromConfig(c *config.Config) prompt.Preset {
	return prompt.Preset{
		filter.StageSubjects:  c.Selections.Subjects,
		filter.StageLectures:  c.Selections.Lectures,
		filter.StageTutorials: c.Selections.Tutorials,
	}
}

func build(ctx context.Context, ch filter.Chooser) (*pipeline.Output, error) {
	return pipeline.Build(ctx, cfg, ch, time.Now())
}
