package model

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays is the teaching week, in grid order.
var Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}

// ParseWeekday accepts English and French day names, case-insensitively.
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon", "lundi":
		return time.Monday, nil
	case "tuesday", "tue", "mardi":
		return time.Tuesday, nil
	case "wednesday", "wed", "mercredi":
		return time.Wednesday, nil
	case "thursday", "thu", "jeudi":
		return time.Thursday, nil
	case "friday", "fri", "vendredi":
		return time.Friday, nil
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Course is one weekly slot-option of a logical course.
type Course struct {
	Name       string
	Categories CategorySet
	// Professor is empty when the source page does not name one.
	Professor string
	// Room may list several rooms.
	Room string
	// Start is the index into the slot table; Size the number of slots used.
	Start int
	Size  int
	// Data is free text shown as the event description.
	Data string
}

// End returns the index of the last slot the course occupies.
func (c *Course) End() int {
	return c.Start + c.Size - 1
}

// Day holds the entries of one weekday. A nil entry is an empty slot; a
// course appears once, at its start index, and covers Size slots.
type Day struct {
	Weekday time.Weekday
	Entries []*Course
}

func (d *Day) Name() string {
	return d.Weekday.String()
}

// Courses returns the non-empty entries in order.
func (d *Day) Courses() []*Course {
	out := make([]*Course, 0, len(d.Entries))
	for _, c := range d.Entries {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Retain rebuilds Entries keeping only courses for which keep returns true.
// Empty entries are dropped.
func (d *Day) Retain(keep func(*Course) bool) {
	kept := make([]*Course, 0, len(d.Entries))
	for _, c := range d.Entries {
		if c != nil && keep(c) {
			kept = append(kept, c)
		}
	}
	d.Entries = kept
}

// Timetable is the weekly grid of one semester.
type Timetable struct {
	Slots    SlotTable
	Semester int
	Days     []*Day
}

// Day returns the day for wd, or nil when the grid has none.
func (t *Timetable) Day(wd time.Weekday) *Day {
	for _, d := range t.Days {
		if d.Weekday == wd {
			return d
		}
	}
	return nil
}

// Names returns the distinct course names in grid order.
func (t *Timetable) Names() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range t.Days {
		for _, c := range d.Courses() {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			seen[c.Name] = struct{}{}
			out = append(out, c.Name)
		}
	}
	return out
}

// Len counts the courses present in the grid.
func (t *Timetable) Len() int {
	n := 0
	for _, d := range t.Days {
		n += len(d.Courses())
	}
	return n
}
