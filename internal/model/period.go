package model

import "time"

// Stretch is a run of Weeks consecutive teaching weeks starting on the
// Monday Start.
type Stretch struct {
	Start time.Time
	Weeks int
}

// Period describes the stretches before and after the mid-term break.
type Period [2]Stretch

// Descriptor carries the lecture and tutorial/practical periods of a semester.
type Descriptor struct {
	Lecture Period
	Other   Period
}

// Periods maps a semester id to its descriptor.
type Periods map[int]Descriptor
