package timetable

import (
	"fmt"

	"termcal/internal/model"
)

// ValidateDay checks that the entries of d tile n slots exactly: every course
// starts where the previous entry ended and the last entry ends at n.
func ValidateDay(d *model.Day, n int) error {
	expected := 0
	for i, c := range d.Entries {
		if c == nil {
			expected++
			continue
		}
		if c.Size < 1 {
			return &DataShapeError{Day: d.Name(), Index: i, Expected: 1, Got: c.Size, Reason: "course size below one slot"}
		}
		if c.Start != expected {
			return &DataShapeError{Day: d.Name(), Index: i, Expected: expected, Got: c.Start, Reason: "course start does not follow previous entry"}
		}
		expected += c.Size
	}
	if expected != n {
		return &DataShapeError{Day: d.Name(), Index: len(d.Entries), Expected: n, Got: expected, Reason: "entries do not cover the slot table"}
	}
	return nil
}

// Validate checks every day of t against its slot table, that the days are
// distinct and in Monday..Friday order, and that each course has a category.
func Validate(t *model.Timetable) error {
	if err := t.Slots.Validate(); err != nil {
		return err
	}
	prev := -1
	for _, d := range t.Days {
		pos := weekdayPos(d)
		if pos < 0 {
			return fmt.Errorf("timetable: %s is not a teaching day", d.Name())
		}
		if pos <= prev {
			return fmt.Errorf("timetable: %s is duplicated or out of order", d.Name())
		}
		prev = pos
		if err := ValidateDay(d, len(t.Slots)); err != nil {
			return err
		}
		for _, c := range d.Courses() {
			if c.Categories.Empty() {
				return fmt.Errorf("timetable: %s %q: %w", d.Name(), c.Name, ErrEmptyCategories)
			}
		}
	}
	return nil
}

func weekdayPos(d *model.Day) int {
	for i, wd := range model.Weekdays {
		if d.Weekday == wd {
			return i
		}
	}
	return -1
}
