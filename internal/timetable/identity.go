package timetable

import (
	"time"

	"termcal/internal/model"
)

// Identity is the key under which slot-options of one logical course are
// counted. Categories is zero in merge mode.
type Identity struct {
	Name       string
	Categories model.CategorySet
}

// IdentityOf returns the identity of c. With mergeTDTP set, only the name is
// kept so that TD and TP sessions sharing a name count together.
func IdentityOf(c *model.Course, mergeTDTP bool) Identity {
	if mergeTDTP {
		return Identity{Name: c.Name}
	}
	return Identity{Name: c.Name, Categories: c.Categories}
}

// Placement is a course together with the weekday it sits on.
type Placement struct {
	Course  *model.Course
	Weekday time.Weekday
}

// Counts maps identities to their number of slot-options.
type Counts map[Identity]int

// Count scans t for courses whose categories intersect allowed and counts
// them per identity. It also returns the matching placements in grid order.
// Counts must be recomputed after every grid mutation.
func Count(t *model.Timetable, allowed model.CategorySet, mergeTDTP bool) (Counts, []Placement) {
	counts := make(Counts)
	var placements []Placement
	for _, d := range t.Days {
		for _, c := range d.Courses() {
			if !c.Categories.Intersects(allowed) {
				continue
			}
			counts[IdentityOf(c, mergeTDTP)]++
			placements = append(placements, Placement{Course: c, Weekday: d.Weekday})
		}
	}
	return counts, placements
}
