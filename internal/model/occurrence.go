package model

import "time"

// Occurrence represents a single dated instance of a course
// (after recurrence expansion).
type Occurrence struct {
	Course
	Weekday time.Weekday

	// Start / End carry the civil wall clock; the location is only a carrier
	// and is replaced by the exporter.
	Start time.Time
	End   time.Time
}

// InstanceKey identifies an occurrence within a term.
func (o Occurrence) InstanceKey() string {
	return o.Name + "|" + o.Categories.Join("/") + "|" + o.Start.Format("2006-01-02T15:04")
}
