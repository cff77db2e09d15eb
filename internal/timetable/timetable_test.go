package timetable

import (
	"errors"
	"testing"
	"time"

	"termcal/internal/model"
)

func quarterSlots(t *testing.T, n int) model.SlotTable {
	t.Helper()
	start := model.NewClock(8, 0)
	table, err := model.NewSlotTable(start, start+model.Clock(15*n), 15)
	if err != nil {
		t.Fatalf("NewSlotTable: %v", err)
	}
	return table
}

func lecture(name string, start, size int) *model.Course {
	return &model.Course{Name: name, Categories: model.NewCategorySet(model.Lecture), Start: start, Size: size}
}

func TestValidateDay(t *testing.T) {
	cases := []struct {
		name    string
		entries []*model.Course
		n       int
		wantErr bool
	}{
		{"all empty", []*model.Course{nil, nil, nil, nil}, 4, false},
		{"no entries, no slots", nil, 0, false},
		{"entry without slots", []*model.Course{nil}, 0, true},
		{"one course covering all", []*model.Course{lecture("A", 0, 4)}, 4, false},
		{"course then gaps", []*model.Course{lecture("A", 0, 2), nil, nil}, 4, false},
		{"gap then course", []*model.Course{nil, lecture("A", 1, 3)}, 4, false},
		{"back to back", []*model.Course{lecture("A", 0, 2), lecture("B", 2, 2)}, 4, false},
		{"overlap", []*model.Course{lecture("A", 0, 3), lecture("B", 2, 2)}, 4, true},
		{"hole", []*model.Course{lecture("A", 0, 1), lecture("B", 2, 2)}, 4, true},
		{"short", []*model.Course{lecture("A", 0, 2)}, 4, true},
		{"too long", []*model.Course{lecture("A", 0, 5)}, 4, true},
		{"zero size", []*model.Course{lecture("A", 0, 0), nil, nil, nil, nil}, 4, true},
	}
	for _, tc := range cases {
		d := &model.Day{Weekday: time.Monday, Entries: tc.entries}
		err := ValidateDay(d, tc.n)
		if tc.wantErr {
			var shape *DataShapeError
			if !errors.As(err, &shape) {
				t.Errorf("%s: err = %v, want *DataShapeError", tc.name, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	slots := quarterSlots(t, 4)
	ok := &model.Timetable{
		Slots: slots,
		Days: []*model.Day{
			{Weekday: time.Monday, Entries: []*model.Course{lecture("A", 0, 4)}},
			{Weekday: time.Wednesday, Entries: []*model.Course{nil, nil, nil, nil}},
		},
	}
	if err := Validate(ok); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	outOfOrder := &model.Timetable{
		Slots: slots,
		Days: []*model.Day{
			{Weekday: time.Tuesday, Entries: []*model.Course{nil, nil, nil, nil}},
			{Weekday: time.Monday, Entries: []*model.Course{nil, nil, nil, nil}},
		},
	}
	if err := Validate(outOfOrder); err == nil {
		t.Fatalf("Validate accepted days out of order")
	}

	weekend := &model.Timetable{
		Slots: slots,
		Days:  []*model.Day{{Weekday: time.Saturday, Entries: []*model.Course{nil, nil, nil, nil}}},
	}
	if err := Validate(weekend); err == nil {
		t.Fatalf("Validate accepted a Saturday")
	}

	noCat := &model.Timetable{
		Slots: slots,
		Days:  []*model.Day{{Weekday: time.Monday, Entries: []*model.Course{{Name: "A", Start: 0, Size: 4}}}},
	}
	if err := Validate(noCat); !errors.Is(err, ErrEmptyCategories) {
		t.Fatalf("err = %v, want ErrEmptyCategories", err)
	}
}

func TestCountMergeFlag(t *testing.T) {
	td := &model.Course{Name: "Lab", Categories: model.NewCategorySet(model.TutorialTD), Start: 0, Size: 4}
	tp := &model.Course{Name: "Lab", Categories: model.NewCategorySet(model.PracticalTP), Start: 0, Size: 4}
	tt := &model.Timetable{
		Slots: quarterSlots(t, 4),
		Days: []*model.Day{
			{Weekday: time.Monday, Entries: []*model.Course{td}},
			{Weekday: time.Thursday, Entries: []*model.Course{tp}},
		},
	}
	allowed := model.NewCategorySet(model.TutorialTD, model.PracticalTP)

	merged, placements := Count(tt, allowed, true)
	if len(merged) != 1 || merged[Identity{Name: "Lab"}] != 2 {
		t.Fatalf("merged counts = %v, want {Lab: 2}", merged)
	}
	if len(placements) != 2 || placements[1].Weekday != time.Thursday {
		t.Fatalf("placements = %v", placements)
	}

	split, _ := Count(tt, allowed, false)
	if len(split) != 2 {
		t.Fatalf("split counts = %v, want two identities", split)
	}
	for id, n := range split {
		if n != 1 {
			t.Fatalf("count[%v] = %d, want 1", id, n)
		}
	}

	lectures, _ := Count(tt, model.NewCategorySet(model.Lecture), false)
	if len(lectures) != 0 {
		t.Fatalf("lecture counts = %v, want none", lectures)
	}
}

func TestLabel(t *testing.T) {
	slots := quarterSlots(t, 8)
	c := lecture("Algebra", 2, 4)
	if got, want := Label(c, time.Monday, slots), "Algebra - Monday 08:30-09:30"; got != want {
		t.Fatalf("Label = %q, want %q", got, want)
	}
	if got, want := TimeRange(c, slots), "08:30-09:30"; got != want {
		t.Fatalf("TimeRange = %q, want %q", got, want)
	}
}
