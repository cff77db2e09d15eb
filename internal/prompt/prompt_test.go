package prompt

import (
	"bytes"
	"strings"
	"testing"

	"termcal/internal/filter"
)

func TestParseAnswer(t *testing.T) {
	cases := []struct {
		in      string
		want    []int
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "   \n", wantNil: true},
		{in: "-", want: []int{}},
		{in: "1", want: []int{0}},
		{in: "3, 1 2", want: []int{2, 0, 1}},
		{in: "2,2", want: []int{1}},
		{in: "0", wantErr: true},
		{in: "4", wantErr: true},
		{in: "one", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseAnswer(tc.in, 3)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseAnswer(%q) = %v, want error", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAnswer(%q): %v", tc.in, err)
			continue
		}
		if tc.wantNil {
			if got != nil {
				t.Errorf("ParseAnswer(%q) = %v, want nil", tc.in, got)
			}
			continue
		}
		if got == nil || len(got) != len(tc.want) {
			t.Errorf("ParseAnswer(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("ParseAnswer(%q) = %v, want %v", tc.in, got, tc.want)
				break
			}
		}
	}
}

func question() filter.Question {
	return filter.Question{
		Stage:    filter.StageLectures,
		Prompt:   "Choose your lecture slots",
		Items:    []string{"Algebra - Monday 08:00-09:00", "Algebra - Tuesday 08:00-09:00"},
		Defaults: []bool{false, true},
	}
}

func TestTerminalChoose(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(strings.NewReader("9\n1\n"), &out)
	got, err := term.Choose(question())
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("Choose = %v, want [0]", got)
	}
	printed := out.String()
	if !strings.Contains(printed, "[x]  2. Algebra - Tuesday") {
		t.Fatalf("default mark missing:\n%s", printed)
	}
	if strings.Count(printed, "Choose your lecture slots") != 2 {
		t.Fatalf("invalid answer was not re-prompted:\n%s", printed)
	}
}

func TestTerminalDefaults(t *testing.T) {
	for _, in := range []string{"\n", ""} {
		term := NewTerminal(strings.NewReader(in), &bytes.Buffer{})
		got, err := term.Choose(question())
		if err != nil {
			t.Fatalf("Choose(%q): %v", in, err)
		}
		if len(got) != 1 || got[0] != 1 {
			t.Fatalf("Choose(%q) = %v, want defaults [1]", in, got)
		}
	}
}

func TestTerminalNone(t *testing.T) {
	term := NewTerminal(strings.NewReader("-\n"), &bytes.Buffer{})
	got, err := term.Choose(question())
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Choose = %v, want none", got)
	}
}

func TestPreset(t *testing.T) {
	p := Preset{
		filter.StageLectures: {"Algebra - Tuesday 08:00-09:00", "Physics - Friday 10:00-11:00"},
		filter.StageSubjects: nil,
	}
	got, err := p.Choose(question())
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("Choose = %v, want [1]", got)
	}

	subjects := filter.Question{Stage: filter.StageSubjects, Items: []string{"Algebra", "Physics"}, Defaults: []bool{true, true}}
	got, _ = p.Choose(subjects)
	if len(got) != 2 {
		t.Fatalf("nil preset should keep defaults, got %v", got)
	}

	tutorials := filter.Question{Stage: filter.StageTutorials, Items: []string{"Lab - Monday 08:00-10:00"}, Defaults: []bool{false}}
	got, _ = p.Choose(tutorials)
	if len(got) != 0 {
		t.Fatalf("missing preset should keep defaults (none), got %v", got)
	}

	empty := Preset{filter.StageLectures: {}}
	got, _ = empty.Choose(question())
	if len(got) != 0 {
		t.Fatalf("empty preset chose %v", got)
	}
}
