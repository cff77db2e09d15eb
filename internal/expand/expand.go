package expand

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/timetable"
)

// EmptyStretch records a stretch that produced no occurrence. It is a
// warning, not an error.
type EmptyStretch struct {
	Pass    string
	Stretch int
	Start   time.Time
	Weeks   int
}

// Result wraps the expanded occurrences and the empty stretches met on the way.
type Result struct {
	Occurrences []model.Occurrence
	Empty       []EmptyStretch
}

// pass selects the slots expanded under one period.
type pass struct {
	name     string
	cats     model.CategorySet
	excluded bool
}

func (p pass) eligible(c *model.Course) bool {
	if p.excluded {
		return !c.Categories.Intersects(p.cats)
	}
	return c.Categories.Intersects(p.cats)
}

var lecturePass = pass{name: "lecture", cats: model.NewCategorySet(model.Lecture)}

// otherPass skips anything tagged Lecture, so a combined Lecture+TD block is
// only emitted under the lecture period.
var otherPass = pass{name: "other", cats: model.NewCategorySet(model.Lecture), excluded: true}

// Term expands t with the descriptor of its semester.
func Term(t *model.Timetable, periods model.Periods) (Result, error) {
	desc, ok := periods[t.Semester]
	if !ok {
		return Result{}, &timetable.MissingPeriodError{Semester: t.Semester}
	}
	return Expand(t, desc.Lecture, desc.Other)
}

// Expand replicates the weekly grid of t across the stretches of both
// periods. Lecture slots follow lecture, every other slot follows other.
// Occurrence instants carry the civil wall clock in UTC.
//
// t must have passed timetable.Validate; slot indices are not re-checked.
func Expand(t *model.Timetable, lecture, other model.Period) (Result, error) {
	var result Result
	for _, run := range []struct {
		p      pass
		period model.Period
	}{{lecturePass, lecture}, {otherPass, other}} {
		for i, st := range run.period {
			occ, err := expandStretch(t, st, run.p)
			if err != nil {
				return Result{}, fmt.Errorf("expand %s stretch %d: %w", run.p.name, i+1, err)
			}
			if len(occ) == 0 {
				result.Empty = append(result.Empty, EmptyStretch{Pass: run.p.name, Stretch: i + 1, Start: st.Start, Weeks: st.Weeks})
				appLog.Warn("empty stretch", "pass", run.p.name, "stretch", i+1, "start", st.Start.Format(time.DateOnly), "weeks", st.Weeks)
				continue
			}
			result.Occurrences = append(result.Occurrences, occ...)
		}
	}
	appLog.Info("timetable expanded", "semester", t.Semester, "occurrences", len(result.Occurrences), "empty_stretches", len(result.Empty))
	return result, nil
}

func expandStretch(t *model.Timetable, st model.Stretch, p pass) ([]model.Occurrence, error) {
	dates, err := TeachingDays(st)
	if err != nil {
		return nil, err
	}
	var out []model.Occurrence
	for _, date := range dates {
		d := t.Day(date.Weekday())
		if d == nil {
			continue
		}
		for _, c := range d.Courses() {
			if !p.eligible(c) {
				continue
			}
			out = append(out, model.Occurrence{
				Course:  *c,
				Weekday: d.Weekday,
				Start:   combine(date, t.Slots[c.Start].Start),
				End:     combine(date, t.Slots[c.End()].End),
			})
		}
	}
	return out, nil
}

// TeachingDays returns the Monday..Friday dates of a stretch in order.
func TeachingDays(st model.Stretch) ([]time.Time, error) {
	if st.Weeks < 0 {
		return nil, fmt.Errorf("%w: negative week count %d", timetable.ErrInvalidStretch, st.Weeks)
	}
	if st.Start.Weekday() != time.Monday {
		return nil, fmt.Errorf("%w: %s is a %s, not a Monday", timetable.ErrInvalidStretch, st.Start.Format(time.DateOnly), st.Start.Weekday())
	}
	if st.Weeks == 0 {
		return nil, nil
	}
	start := time.Date(st.Start.Year(), st.Start.Month(), st.Start.Day(), 0, 0, 0, 0, time.UTC)
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Count:     st.Weeks * len(model.Weekdays),
		Byweekday: []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR},
	})
	if err != nil {
		return nil, err
	}
	return r.All(), nil
}

// combine stamps a wall clock onto a date, truncated to the minute.
func combine(date time.Time, c model.Clock) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC)
}
