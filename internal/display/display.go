package display

import (
	"fmt"
	"io"
	"text/tabwriter"

	"termcal/internal/model"
	"termcal/internal/timetable"
)

// Timetable writes the weekly grid, one block per day:
//
//	Monday:
//	  08:00-09:00  Lecture  Algebra  (A101)  // Dupont
func Timetable(w io.Writer, t *model.Timetable) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, d := range t.Days {
		courses := d.Courses()
		if len(courses) == 0 {
			continue
		}
		fmt.Fprintf(tw, "\n%s:\n", d.Name())
		for _, c := range courses {
			prof := c.Professor
			if prof == "" {
				prof = "N/A"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t(%s)\t// %s\n",
				timetable.TimeRange(c, t.Slots), c.Categories, c.Name, c.Room, prof)
		}
	}
	return tw.Flush()
}

// Summary writes one line per occurrence, in order.
func Summary(w io.Writer, occs []model.Occurrence) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, o := range occs {
		fmt.Fprintf(tw, "%s\t%s\t%s-%s\t%s\t%s\n",
			o.Start.Format("2006-01-02"), o.Weekday, o.Start.Format("15:04"), o.End.Format("15:04"), o.Categories.Join("/"), o.Name)
	}
	return tw.Flush()
}
