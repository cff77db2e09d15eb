package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testGrid = `
days:
  - name: Monday
    courses:
      - {start: "08:00", size: 4, name: Algebra, categories: COURS}
`

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	gridPath := filepath.Join(dir, "grid.yaml")
	if err := os.WriteFile(gridPath, []byte(testGrid), 0o600); err != nil {
		t.Fatal(err)
	}
	body := "use_timezone: true\n" +
		"merge_td_tp: false\n" +
		"week_skip: false\n" +
		"first_day: \"2024-09-02\"\n" +
		"semester: 1\n" +
		"grid:\n  path: " + gridPath + "\n  cache_dir: " + filepath.Join(dir, "cache") + "\n" +
		extra
	path := filepath.Join(dir, "termcal.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, "")
	out, err := execute(t, "labels",
		"--config", path,
		"--no-tz",
		"--td-are-tp",
		"--week-skip",
		"--export", "out/term",
		"--semester", "2",
	)
	if err != nil {
		t.Fatalf("labels: %v", err)
	}
	if cfg.UseTimezone {
		t.Errorf("UseTimezone = true, want false with --no-tz")
	}
	if !cfg.MergeTDTP {
		t.Errorf("MergeTDTP = false, want true with --td-are-tp")
	}
	if !cfg.WeekSkip {
		t.Errorf("WeekSkip = false, want true with --week-skip")
	}
	if cfg.Export != "out/term" {
		t.Errorf("Export = %q, want out/term", cfg.Export)
	}
	if cfg.Semester != 2 {
		t.Errorf("Semester = %d, want 2", cfg.Semester)
	}
	if cfg.FirstDay != "2024-09-02" {
		t.Errorf("FirstDay = %q, want the file value", cfg.FirstDay)
	}
	if !strings.Contains(out, "subjects:") || !strings.Contains(out, `"Algebra"`) {
		t.Errorf("labels output:\n%s", out)
	}
}

func TestInvalidSemesterFlag(t *testing.T) {
	path := writeConfig(t, "")
	if _, err := execute(t, "labels", "--config", path, "--semester", "3"); err == nil {
		t.Fatalf("--semester 3 accepted")
	}
}
