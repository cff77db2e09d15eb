package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"termcal/internal/grid"
	"termcal/internal/period"
)

// GridConfig describes where the weekly grid comes from.
type GridConfig struct {
	// Path is a local grid file. Ignored when URL is set.
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	// URL is a remote grid file fetched with caching.
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
	// Format is "yaml" or "csv". Empty infers it from the file extension.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// Delimiter separates CSV fields (default ",").
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	// CacheDir stores fetched grids for offline fallback.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`
	// Slots is the slot layout used by CSV grids and YAML grids without one.
	Slots grid.SlotLayout `yaml:"slots" json:"slots"`
}

// TermConfig is the week layout of a semester.
type TermConfig struct {
	WeeksBeforeBreak int `yaml:"weeks_before_break" json:"weeks_before_break"`
	BreakWeeks       int `yaml:"break_weeks" json:"break_weeks"`
	WeeksAfterBreak  int `yaml:"weeks_after_break" json:"weeks_after_break"`
	SemesterGapWeeks int `yaml:"semester_gap_weeks" json:"semester_gap_weeks"`
}

// Selections pre-answers the filter stages for non-interactive runs.
// A nil list leaves the stage on its defaults.
type Selections struct {
	Subjects  []string `yaml:"subjects,omitempty" json:"subjects,omitempty"`
	Lectures  []string `yaml:"lectures,omitempty" json:"lectures,omitempty"`
	Tutorials []string `yaml:"tutorials,omitempty" json:"tutorials,omitempty"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the published calendar.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA timezone of the grid wall clock (e.g. "Europe/Paris").
	Timezone string `yaml:"timezone" json:"timezone"`
	// UseTimezone tags exported times with Timezone; false writes floating times.
	UseTimezone bool `yaml:"use_timezone" json:"use_timezone"`

	// Semester is 1 or 2; 0 picks the semester running today.
	Semester int `yaml:"semester" json:"semester"`
	// FirstDay is the first teaching Monday of the year, YYYY-MM-DD.
	FirstDay string `yaml:"first_day" json:"first_day"`
	// MergeTDTP treats same-named TD and TP sessions as one activity.
	MergeTDTP bool `yaml:"merge_td_tp" json:"merge_td_tp"`
	// WeekSkip starts TD/TP one week after lectures.
	WeekSkip bool       `yaml:"week_skip" json:"week_skip"`
	Term     TermConfig `yaml:"term" json:"term"`

	Grid GridConfig `yaml:"grid" json:"grid"`

	// Export is the default output path of the export command.
	Export string `yaml:"export,omitempty" json:"export,omitempty"`

	Selections Selections `yaml:"selections" json:"selections"`

	// Listen is the HTTP listen address of the serve command.
	Listen string `yaml:"listen" json:"listen"`
	// RefreshCron is a cron-style schedule for rebuilding the published calendar.
	RefreshCron string           `yaml:"refresh" json:"refresh"`
	BasicAuth   *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:    "Europe/Paris",
		UseTimezone: true,
		Term: TermConfig{
			WeeksBeforeBreak: period.DefaultLayout.WeeksBeforeBreak,
			BreakWeeks:       period.DefaultLayout.BreakWeeks,
			WeeksAfterBreak:  period.DefaultLayout.WeeksAfterBreak,
			SemesterGapWeeks: period.DefaultLayout.SemesterGapWeeks,
		},
		Grid: GridConfig{
			Path:     "timetable.yaml",
			CacheDir: "./var/grid-cache",
			Slots:    grid.SlotLayout{Start: "08:00", End: "20:00", StepMinutes: 15},
		},
		Listen:      "127.0.0.1:8080",
		RefreshCron: "0 */6 * * *",
		LogLevel:    "info",
	}
}

// Normalize fills in missing/zero values with defaults so that partial
// configs still behave.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.Term == (TermConfig{}) {
		c.Term = def.Term
	}
	if c.Grid.CacheDir == "" {
		c.Grid.CacheDir = def.Grid.CacheDir
	}
	if c.Grid.Slots.Start == "" || c.Grid.Slots.End == "" || c.Grid.Slots.StepMinutes <= 0 {
		c.Grid.Slots = def.Grid.Slots
	}
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.RefreshCron == "" {
		c.RefreshCron = def.RefreshCron
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Validate reports values Normalize cannot repair.
func (c *Config) Validate() error {
	if c.Semester < 0 || c.Semester > 2 {
		return fmt.Errorf("config: semester %d: must be 0, 1 or 2", c.Semester)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: timezone %q: %w", c.Timezone, err)
	}
	if c.FirstDay != "" {
		if _, err := period.ParseFirstDay(c.FirstDay); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if _, err := c.Grid.Slots.Table(); err != nil {
		return fmt.Errorf("config: grid %w", err)
	}
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("config: refresh %q: %w", c.RefreshCron, err)
	}
	return nil
}

// Layout converts the term settings for the period provider.
func (c *Config) Layout() period.Layout {
	return period.Layout{
		WeeksBeforeBreak: c.Term.WeeksBeforeBreak,
		BreakWeeks:       c.Term.BreakWeeks,
		WeeksAfterBreak:  c.Term.WeeksAfterBreak,
		SemesterGapWeeks: c.Term.SemesterGapWeeks,
		WeekSkip:         c.WeekSkip,
	}
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - Otherwise the YAML is read, unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory (0700) if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".termcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
