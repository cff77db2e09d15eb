// Package period derives the lecture and TD/TP stretches of both semesters
// from the first teaching Monday of the academic year.
package period

import (
	"fmt"
	"time"

	"termcal/internal/model"
	"termcal/internal/timetable"
)

// Layout is the week structure of a semester.
type Layout struct {
	WeeksBeforeBreak int
	BreakWeeks       int
	WeeksAfterBreak  int
	// SemesterGapWeeks separates the end of semester 1 from semester 2.
	SemesterGapWeeks int
	// WeekSkip starts TD/TP one week after lectures.
	WeekSkip bool
}

// DefaultLayout is six weeks, one break week, seven weeks, and four weeks
// between semesters.
var DefaultLayout = Layout{
	WeeksBeforeBreak: 6,
	BreakWeeks:       1,
	WeeksAfterBreak:  7,
	SemesterGapWeeks: 4,
}

// ParseFirstDay parses a YYYY-MM-DD date.
func ParseFirstDay(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("first day %q: %w", s, err)
	}
	return d, nil
}

// Build returns the descriptors of semesters 1 and 2 for a year whose first
// teaching week starts on firstDay.
func Build(firstDay time.Time, l Layout) (model.Periods, error) {
	if firstDay.Weekday() != time.Monday {
		return nil, fmt.Errorf("%w: first day %s is a %s", timetable.ErrInvalidStretch, firstDay.Format(time.DateOnly), firstDay.Weekday())
	}
	if l.WeeksBeforeBreak < 0 || l.BreakWeeks < 0 || l.WeeksAfterBreak < 0 || l.SemesterGapWeeks < 0 {
		return nil, fmt.Errorf("%w: negative week count in layout", timetable.ErrInvalidStretch)
	}
	day := time.Date(firstDay.Year(), firstDay.Month(), firstDay.Day(), 0, 0, 0, 0, time.UTC)

	s1 := semester(day, l)
	s2Start := addWeeks(s1.Lecture[1].Start, l.WeeksAfterBreak+l.SemesterGapWeeks)
	s2 := semester(s2Start, l)

	return model.Periods{1: s1, 2: s2}, nil
}

func semester(start time.Time, l Layout) model.Descriptor {
	lecture := model.Period{
		{Start: start, Weeks: l.WeeksBeforeBreak},
		{Start: addWeeks(start, l.WeeksBeforeBreak+l.BreakWeeks), Weeks: l.WeeksAfterBreak},
	}
	other := lecture
	if l.WeekSkip && l.WeeksBeforeBreak > 0 {
		other[0] = model.Stretch{Start: addWeeks(start, 1), Weeks: l.WeeksBeforeBreak - 1}
	}
	return model.Descriptor{Lecture: lecture, Other: other}
}

func addWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// CurrentSemester picks the semester running in the month of now:
// August to January is the first one.
func CurrentSemester(now time.Time) int {
	switch m := now.Month(); {
	case m >= time.August || m == time.January:
		return 1
	default:
		return 2
	}
}

// FirstMonday returns the first Monday on or after t.
func FirstMonday(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	return t.AddDate(0, 0, offset)
}
