package grid

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"termcal/internal/model"
)

// SlotLayout describes a slot table by its daily window and step.
type SlotLayout struct {
	Start       string `yaml:"start" json:"start"`
	End         string `yaml:"end" json:"end"`
	StepMinutes int    `yaml:"step_minutes" json:"step_minutes"`
}

// Table builds the slot table of the layout.
func (l SlotLayout) Table() (model.SlotTable, error) {
	start, err := model.ParseClock(l.Start)
	if err != nil {
		return nil, fmt.Errorf("slots start: %w", err)
	}
	end, err := model.ParseClock(l.End)
	if err != nil {
		return nil, fmt.Errorf("slots end: %w", err)
	}
	return model.NewSlotTable(start, end, l.StepMinutes)
}

// Document is the YAML form of a weekly grid.
type Document struct {
	Semester int        `yaml:"semester"`
	Slots    SlotLayout `yaml:"slots"`
	Days     []struct {
		Name    string `yaml:"name"`
		Courses []Row  `yaml:"courses"`
	} `yaml:"days"`
}

// DecodeYAML parses a grid document. fallback is used when the document has
// no slot layout of its own, and semester when it names none.
func DecodeYAML(body []byte, fallback SlotLayout, semester int) (*model.Timetable, error) {
	if len(body) == 0 {
		return nil, errors.New("empty grid document")
	}
	var doc Document
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("grid yaml: %w", err)
	}

	layout := doc.Slots
	if layout.Start == "" || layout.End == "" || layout.StepMinutes == 0 {
		layout = fallback
	}
	slots, err := layout.Table()
	if err != nil {
		return nil, err
	}
	if doc.Semester != 0 {
		semester = doc.Semester
	}

	var rows []Row
	for _, d := range doc.Days {
		for _, r := range d.Courses {
			if r.Day == "" {
				r.Day = d.Name
			}
			rows = append(rows, r)
		}
	}
	return Build(rows, slots, semester)
}
