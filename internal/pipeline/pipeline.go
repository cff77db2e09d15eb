// Package pipeline wires grid loading, filtering, period computation and
// expansion into one run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"termcal/internal/config"
	"termcal/internal/csvio"
	"termcal/internal/expand"
	"termcal/internal/filter"
	"termcal/internal/grid"
	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/period"
)

// UserAgent identifies grid fetches.
const UserAgent = "termcal/0.1"

// Output is the result of a run.
type Output struct {
	Timetable *model.Timetable
	Periods   model.Periods
	Expanded  expand.Result
}

// LoadGrid reads the configured grid and validates it. semester is used when
// the grid document does not carry its own.
func LoadGrid(ctx context.Context, cfg *config.Config, semester int) (*model.Timetable, error) {
	var (
		body []byte
		name string
	)
	switch {
	case cfg.Grid.URL != "":
		f := grid.NewFetcher(cfg.Grid.CacheDir, UserAgent)
		res, err := f.Fetch(ctx, grid.Source{ID: "grid", URL: cfg.Grid.URL})
		if err != nil {
			return nil, fmt.Errorf("fetch grid: %w", err)
		}
		body, name = res.Body, cfg.Grid.URL
	case cfg.Grid.Path != "":
		b, err := os.ReadFile(cfg.Grid.Path)
		if err != nil {
			return nil, fmt.Errorf("read grid: %w", err)
		}
		body, name = b, cfg.Grid.Path
	default:
		return nil, fmt.Errorf("no grid source configured")
	}
	return Decode(body, formatOf(cfg.Grid.Format, name), cfg.Grid, semester)
}

// Decode parses a grid body in the given format ("yaml" or "csv").
func Decode(body []byte, format string, gc config.GridConfig, semester int) (*model.Timetable, error) {
	switch format {
	case "csv":
		delim := ','
		if gc.Delimiter != "" {
			delim = []rune(gc.Delimiter)[0]
		}
		rows, err := csvio.ReadCourses(bytes.NewReader(body), delim)
		if err != nil {
			return nil, err
		}
		slots, err := gc.Slots.Table()
		if err != nil {
			return nil, err
		}
		return grid.Build(rows, slots, semester)
	case "yaml":
		return grid.DecodeYAML(body, gc.Slots, semester)
	default:
		return nil, fmt.Errorf("unknown grid format %q", format)
	}
}

func formatOf(format, name string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if i := strings.IndexByte(name, '?'); i >= 0 {
		name = name[:i]
	}
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return "csv"
	}
	return "yaml"
}

// Semester resolves the configured semester; 0 picks the current one.
// Other values are passed through and fail at expansion.
func Semester(cfg *config.Config, now time.Time) int {
	if cfg.Semester != 0 {
		return cfg.Semester
	}
	return period.CurrentSemester(now)
}

// FirstDay resolves the configured first teaching day. Without one, the
// first Monday of September of the academic year is used.
func FirstDay(cfg *config.Config, now time.Time) (time.Time, error) {
	if cfg.FirstDay != "" {
		return period.ParseFirstDay(cfg.FirstDay)
	}
	year := now.Year()
	if now.Month() < time.August {
		year--
	}
	return period.FirstMonday(time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)), nil
}

// Build runs the whole chain with ch answering the filter stages.
func Build(ctx context.Context, cfg *config.Config, ch filter.Chooser, now time.Time) (*Output, error) {
	semester := Semester(cfg, now)

	t, err := LoadGrid(ctx, cfg, semester)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := filter.Run(t, ch, filter.Options{MergeTDTP: cfg.MergeTDTP}); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	first, err := FirstDay(cfg, now)
	if err != nil {
		return nil, err
	}
	periods, err := period.Build(first, cfg.Layout())
	if err != nil {
		return nil, err
	}

	res, err := expand.Term(t, periods)
	if err != nil {
		return nil, err
	}
	appLog.Info("pipeline done", "semester", t.Semester, "first_day", first.Format(time.DateOnly), "occurrences", len(res.Occurrences))
	return &Output{Timetable: t, Periods: periods, Expanded: res}, nil
}
