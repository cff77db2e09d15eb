package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// addTimezone emits a VTIMEZONE for loc built from the transitions Go knows
// for year. Transitions are turned into yearly rules on the same weekday
// ordinal of the month.
func addTimezone(cal *ical.Calendar, loc *time.Location, year int) {
	tz := cal.AddTimezone(loc.String())

	jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	stdName, stdOffset := jan.Zone()
	changes := transitions(loc, year)

	if len(changes) == 0 {
		std := tz.AddStandard()
		std.SetProperty(ical.ComponentPropertyDtStart, "19700101T000000")
		setOffsets(&std.ComponentBase, stdName, stdOffset, stdOffset)
		return
	}

	for _, ch := range changes {
		name, offset := ch.at.Zone()
		var base *ical.ComponentBase
		if offset == stdOffset {
			std := tz.AddStandard()
			base = &std.ComponentBase
		} else {
			dl := &ical.Daylight{}
			tz.Components = append(tz.Components, dl)
			base = &dl.ComponentBase
		}
		// The transition instant in the wall clock in force before it.
		before := ch.at.In(time.FixedZone("", ch.fromOffset))
		base.SetProperty(ical.ComponentPropertyDtStart, before.Format(localLayout))
		base.SetProperty(ical.ComponentPropertyRrule, yearlyRule(before))
		setOffsets(base, name, ch.fromOffset, offset)
	}
}

type transition struct {
	at         time.Time
	fromOffset int
}

// transitions scans year hour by hour for offset changes of loc.
func transitions(loc *time.Location, year int) []transition {
	var out []transition
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := t.AddDate(1, 0, 0)
	_, prev := t.In(loc).Zone()
	for ; t.Before(end); t = t.Add(time.Hour) {
		_, off := t.In(loc).Zone()
		if off != prev {
			out = append(out, transition{at: t.In(loc), fromOffset: prev})
			prev = off
		}
	}
	return out
}

func yearlyRule(t time.Time) string {
	days := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	ord := (t.Day()-1)/7 + 1
	if t.Day()+7 > days {
		ord = -1
	}
	return fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYDAY=%d%s", int(t.Month()), ord, weekdayCode(t.Weekday()))
}

func weekdayCode(wd time.Weekday) string {
	return [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}[wd]
}

func setOffsets(c *ical.ComponentBase, name string, from, to int) {
	c.SetProperty(ical.ComponentProperty(ical.PropertyTzname), name)
	c.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), formatOffset(from))
	c.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), formatOffset(to))
}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, (seconds%3600)/60)
}
