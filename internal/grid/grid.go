// Package grid builds a validated weekly timetable from course rows, YAML
// documents or remote files.
package grid

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/timetable"
)

// Row is one course slot as described by a grid source.
type Row struct {
	Day        string `yaml:"day"`
	Start      string `yaml:"start"`
	Size       int    `yaml:"size"`
	Name       string `yaml:"name"`
	Categories string `yaml:"categories"`
	Room       string `yaml:"room"`
	Professor  string `yaml:"professor"`
	Data       string `yaml:"data"`
}

// levelSuffix matches the class level the source page appends to names.
var levelSuffix = regexp.MustCompile(`[ -][ML][1-3]$`)

// NormalizeName trims a course name and drops a trailing level suffix.
func NormalizeName(s string) string {
	return levelSuffix.ReplaceAllString(strings.TrimSpace(s), "")
}

// ParseCategories reads a category token. It accepts the source page types
// (COURS, COURS_TD, TD, TD_M2, TP, TP_M2) and lists of lecture/td/tp joined
// by '+' or ','. Unknown tokens fall back to Lecture.
func ParseCategories(s string) model.CategorySet {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "COURS":
		return model.NewCategorySet(model.Lecture)
	case "COURS_TD":
		return model.NewCategorySet(model.Lecture, model.TutorialTD)
	case "TD", "TD_M2":
		return model.NewCategorySet(model.TutorialTD)
	case "TP", "TP_M2":
		return model.NewCategorySet(model.PracticalTP)
	}

	var set model.CategorySet
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '+' || r == ',' || r == '/' }) {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "lecture", "cours", "cm":
			set |= model.NewCategorySet(model.Lecture)
		case "td", "tutorial":
			set |= model.NewCategorySet(model.TutorialTD)
		case "tp", "practical", "lab":
			set |= model.NewCategorySet(model.PracticalTP)
		}
	}
	if set.Empty() {
		appLog.Warn("unknown course type, falling back to lecture", "type", s)
		return model.NewCategorySet(model.Lecture)
	}
	return set
}

// Build assembles a timetable from rows laid out on slots and validates it.
// Days appear Monday to Friday; a weekday without rows is omitted.
func Build(rows []Row, slots model.SlotTable, semester int) (*model.Timetable, error) {
	byDay := make(map[time.Weekday][]*model.Course)
	for i, r := range rows {
		wd, err := model.ParseWeekday(r.Day)
		if err != nil {
			return nil, fmt.Errorf("grid row %d: %w", i+1, err)
		}
		c, err := course(r, slots)
		if err != nil {
			return nil, fmt.Errorf("grid row %d: %w", i+1, err)
		}
		byDay[wd] = append(byDay[wd], c)
	}

	t := &model.Timetable{Slots: slots, Semester: semester}
	for _, wd := range model.Weekdays {
		courses, ok := byDay[wd]
		if !ok {
			continue
		}
		t.Days = append(t.Days, layout(wd, courses, len(slots)))
	}

	if err := timetable.Validate(t); err != nil {
		return nil, err
	}
	appLog.Info("grid built", "semester", semester, "days", len(t.Days), "courses", t.Len(), "slots", len(slots))
	return t, nil
}

func course(r Row, slots model.SlotTable) (*model.Course, error) {
	name := NormalizeName(r.Name)
	if name == "" {
		return nil, fmt.Errorf("course name is empty")
	}
	clock, err := model.ParseClock(r.Start)
	if err != nil {
		return nil, err
	}
	start := slots.IndexOf(clock)
	if start < 0 {
		return nil, fmt.Errorf("%s: no slot starts at %s", name, clock)
	}
	if r.Size < 1 {
		return nil, fmt.Errorf("%s: size must be >= 1, got %d", name, r.Size)
	}
	return &model.Course{
		Name:       name,
		Categories: ParseCategories(r.Categories),
		Professor:  strings.TrimSpace(r.Professor),
		Room:       strings.TrimSpace(r.Room),
		Start:      start,
		Size:       r.Size,
		Data:       strings.TrimSpace(r.Data),
	}, nil
}

// layout orders courses by start and fills the gaps with empty entries.
// Overlaps are left for the validator to reject.
func layout(wd time.Weekday, courses []*model.Course, n int) *model.Day {
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].Start < courses[j].Start })
	d := &model.Day{Weekday: wd}
	next := 0
	for _, c := range courses {
		for ; next < c.Start; next++ {
			d.Entries = append(d.Entries, nil)
		}
		d.Entries = append(d.Entries, c)
		next = max(next, c.Start+c.Size)
	}
	for ; next < n; next++ {
		d.Entries = append(d.Entries, nil)
	}
	return d
}
