package timetable

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStretch is returned for a stretch that does not start on a
	// Monday or has a negative week count.
	ErrInvalidStretch = errors.New("invalid stretch")
	// ErrEmptyCategories is returned for a course carrying no category.
	ErrEmptyCategories = errors.New("course has no category")
)

// DataShapeError reports a day whose entries do not tile the slot table.
type DataShapeError struct {
	Day      string
	Index    int
	Expected int
	Got      int
	Reason   string
}

func (e *DataShapeError) Error() string {
	return fmt.Sprintf("timetable: %s entry %d: %s (expected %d, got %d)", e.Day, e.Index, e.Reason, e.Expected, e.Got)
}

// MissingPeriodError reports a semester without period descriptor.
type MissingPeriodError struct {
	Semester int
}

func (e *MissingPeriodError) Error() string {
	return fmt.Sprintf("timetable: no period descriptor for semester %d", e.Semester)
}

// SelectionIndexError reports a chosen index outside the presented list.
type SelectionIndexError struct {
	Stage  string
	Index  int
	Length int
}

func (e *SelectionIndexError) Error() string {
	return fmt.Sprintf("timetable: %s selection index %d out of range [0, %d)", e.Stage, e.Index, e.Length)
}
