// Package csvio reads course rows and writes expanded occurrences as CSV.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"termcal/internal/grid"
	"termcal/internal/model"
)

// courseRow is the CSV form of a grid row.
type courseRow struct {
	Day        string `csv:"day"`
	Start      string `csv:"start"`
	Size       int    `csv:"size"`
	Name       string `csv:"name"`
	Categories string `csv:"categories"`
	Room       string `csv:"room"`
	Professor  string `csv:"professor"`
	Data       string `csv:"data"`
}

// occurrenceRow is one line of the occurrence export.
type occurrenceRow struct {
	Date       string `csv:"date"`
	Weekday    string `csv:"weekday"`
	Start      string `csv:"start"`
	End        string `csv:"end"`
	Name       string `csv:"name"`
	Categories string `csv:"categories"`
	Room       string `csv:"room"`
	Professor  string `csv:"professor"`
	Data       string `csv:"data"`
}

// ReadCourses parses course rows separated by delim (',' when zero).
// Blank lines are skipped by the underlying reader.
func ReadCourses(in io.Reader, delim rune) ([]grid.Row, error) {
	r := csv.NewReader(in)
	if delim != 0 {
		r.Comma = delim
	}
	r.TrimLeadingSpace = true

	var parsed []*courseRow
	if err := gocsv.UnmarshalCSV(r, &parsed); err != nil {
		return nil, fmt.Errorf("csv courses: %w", err)
	}

	rows := make([]grid.Row, 0, len(parsed))
	for _, p := range parsed {
		rows = append(rows, grid.Row{
			Day:        p.Day,
			Start:      p.Start,
			Size:       p.Size,
			Name:       p.Name,
			Categories: p.Categories,
			Room:       p.Room,
			Professor:  p.Professor,
			Data:       p.Data,
		})
	}
	return rows, nil
}

// WriteOccurrences writes one CSV row per occurrence, in the given order.
func WriteOccurrences(out io.Writer, occs []model.Occurrence) error {
	rows := make([]*occurrenceRow, 0, len(occs))
	for _, o := range occs {
		rows = append(rows, &occurrenceRow{
			Date:       o.Start.Format(time.DateOnly),
			Weekday:    o.Weekday.String(),
			Start:      o.Start.Format("15:04"),
			End:        o.End.Format("15:04"),
			Name:       o.Name,
			Categories: o.Categories.Join("/"),
			Room:       o.Room,
			Professor:  o.Professor,
			Data:       o.Data,
		})
	}
	w := gocsv.NewSafeCSVWriter(csv.NewWriter(out))
	if err := gocsv.MarshalCSV(&rows, w); err != nil {
		return fmt.Errorf("csv occurrences: %w", err)
	}
	w.Flush()
	return w.Error()
}

// WriteOccurrencesFile writes the export to path, adding a .csv extension
// when missing, and returns the final path.
func WriteOccurrencesFile(path string, occs []model.Occurrence) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		path += ".csv"
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if err := WriteOccurrences(f, occs); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
