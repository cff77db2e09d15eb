package timetable

import (
	"fmt"
	"time"

	"termcal/internal/model"
)

// Label formats a course slot for presentation, e.g.
// "Algebra - Monday 08:00-09:00".
func Label(c *model.Course, wd time.Weekday, slots model.SlotTable) string {
	return fmt.Sprintf("%s - %s %s-%s", c.Name, wd, slots[c.Start].Start, slots[c.End()].End)
}

// TimeRange formats the wall-clock range a course covers, e.g. "08:00-09:00".
func TimeRange(c *model.Course, slots model.SlotTable) string {
	return slots[c.Start].Start.String() + "-" + slots[c.End()].End.String()
}
