package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// NewClock builds a Clock from hours and minutes.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock accepts "8:00", "08:00" and the "8h00" form used by the source
// timetable page.
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, ":h")
	if sep <= 0 || sep == len(s)-1 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	h, err := strconv.Atoi(s[:sep])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	m, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q: out of range", s)
	}
	return NewClock(h, m), nil
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Slot is one fixed-width interval of the daily grid.
type Slot struct {
	Label string
	Start Clock
	End   Clock
}

// SlotTable is the ordered list of slots every day is divided into.
type SlotTable []Slot

// NewSlotTable divides [start, end) into contiguous slots of step minutes.
func NewSlotTable(start, end Clock, step int) (SlotTable, error) {
	if step <= 0 {
		return nil, errors.New("slot table: step must be positive")
	}
	if end <= start {
		return nil, fmt.Errorf("slot table: end %s is not after start %s", end, start)
	}
	if (int(end)-int(start))%step != 0 {
		return nil, fmt.Errorf("slot table: %s-%s is not a multiple of %d minutes", start, end, step)
	}
	table := make(SlotTable, 0, (int(end)-int(start))/step)
	for c := start; c < end; c += Clock(step) {
		table = append(table, Slot{
			Label: c.String(),
			Start: c,
			End:   c + Clock(step),
		})
	}
	return table, nil
}

// Validate checks every slot is non-empty and that slots are in order.
func (t SlotTable) Validate() error {
	for i, s := range t {
		if s.End <= s.Start {
			return fmt.Errorf("slot table: slot %d (%s) ends before it starts", i, s.Label)
		}
		if i > 0 && s.Start < t[i-1].End {
			return fmt.Errorf("slot table: slot %d (%s) overlaps previous slot", i, s.Label)
		}
	}
	return nil
}

// IndexOf returns the index of the slot starting at c, or -1.
func (t SlotTable) IndexOf(c Clock) int {
	for i, s := range t {
		if s.Start == c {
			return i
		}
	}
	return -1
}
