package ics

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	appLog "termcal/internal/log"
	"termcal/internal/model"
)

const (
	productID = "-//termcal//EN"
	// localLayout is the DATE-TIME form without UTC designator.
	localLayout = "20060102T150405"
	// placeholderAttendee is the address used for professors; the source
	// page names them without an email.
	placeholderAttendee = "mailto:place@holder.com"
)

// ExportConfig controls how occurrences are serialized.
type ExportConfig struct {
	// Location is the civil timezone of the occurrences. Nil or UseTimezone
	// false produces floating times.
	Location    *time.Location
	UseTimezone bool
	// Language tags the SUMMARY property; empty omits the parameter.
	Language string
	// Now stamps DTSTAMP; zero uses time.Now.
	Now time.Time
	// NewUID generates event UIDs; nil uses random UUIDs.
	NewUID func() string
}

// Export converts occurrences into a calendar, one VEVENT per occurrence.
func Export(occs []model.Occurrence, cfg ExportConfig) *ical.Calendar {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.NewUID == nil {
		cfg.NewUID = uuid.NewString
	}
	withTZ := cfg.UseTimezone && cfg.Location != nil && cfg.Location != time.UTC

	cal := ical.NewCalendarFor("termcal")
	cal.SetProductId(productID)
	cal.SetMethod(ical.MethodPublish)
	if withTZ {
		cal.SetXWRTimezone(cfg.Location.String())
		addTimezone(cal, cfg.Location, referenceYear(occs, cfg.Now))
	}

	for _, occ := range occs {
		ev := cal.AddEvent(cfg.NewUID())
		ev.SetDtStampTime(cfg.Now)
		ev.SetClass(ical.ClassificationPublic)
		ev.SetTimeTransparency(ical.TransparencyOpaque)

		if occ.Professor != "" {
			ev.AddAttendee(placeholderAttendee,
				ical.WithCN(occ.Professor),
				ical.ParticipationStatusAccepted,
				ical.ParticipationRoleChair,
			)
		}

		if withTZ {
			ev.SetProperty(ical.ComponentPropertyDtStart, occ.Start.Format(localLayout), ical.WithTZID(cfg.Location.String()))
			ev.SetProperty(ical.ComponentPropertyDtEnd, occ.End.Format(localLayout), ical.WithTZID(cfg.Location.String()))
		} else {
			ev.SetProperty(ical.ComponentPropertyDtStart, occ.Start.Format(localLayout))
			ev.SetProperty(ical.ComponentPropertyDtEnd, occ.End.Format(localLayout))
		}

		ev.SetLocation(occ.Room)

		categories := occ.Categories.Join("/")
		summary := categories + " - " + occ.Name
		if cfg.Language != "" {
			ev.SetSummary(summary, &ical.KeyValues{Key: string(ical.ParameterLanguage), Value: []string{cfg.Language}})
		} else {
			ev.SetSummary(summary)
		}
		ev.SetProperty(ical.ComponentPropertyCategories, categories)

		if occ.Data != "" {
			ev.SetDescription(occ.Data)
		}
	}

	return cal
}

// WriteFile serializes the calendar to path, appending ".ics" when the path
// lacks the extension. It returns the path written.
func WriteFile(path string, cal *ical.Calendar) (string, error) {
	if path == "" {
		return "", errors.New("export path is empty")
	}
	if !strings.EqualFold(filepath.Ext(path), ".ics") {
		path += ".ics"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := cal.SerializeTo(f); err != nil {
		f.Close()
		return "", fmt.Errorf("write calendar: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	appLog.Info("calendar written", "path", path, "events", len(cal.Events()))
	return path, nil
}

func referenceYear(occs []model.Occurrence, now time.Time) int {
	if len(occs) > 0 {
		return occs[0].Start.Year()
	}
	return now.Year()
}
