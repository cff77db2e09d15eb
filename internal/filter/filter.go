// Package filter narrows a weekly timetable down to the slots the user
// follows. Stages run in a fixed order: subjects first, then lecture and
// tutorial/practical disambiguation. Each stage recomputes its counts from
// the grid left by the previous one.
package filter

import (
	"sort"

	appLog "termcal/internal/log"
	"termcal/internal/model"
	"termcal/internal/timetable"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageSubjects  Stage = "subjects"
	StageLectures  Stage = "lectures"
	StageTutorials Stage = "tutorials"
)

// Question is what a stage asks the user.
type Question struct {
	Stage    Stage
	Prompt   string
	Items    []string
	Defaults []bool
}

// Chooser answers a Question with the indices of the chosen items.
type Chooser interface {
	Choose(q Question) ([]int, error)
}

// Options configures a pipeline run.
type Options struct {
	// MergeTDTP counts same-named TD and TP sessions as one activity.
	MergeTDTP bool
}

// Run applies the three stages to t in place.
func Run(t *model.Timetable, ch Chooser, opts Options) error {
	if err := SelectSubjects(t, ch); err != nil {
		return err
	}
	if err := DisambiguateLectures(t, ch); err != nil {
		return err
	}
	if err := DisambiguateTutorials(t, ch, opts.MergeTDTP); err != nil {
		return err
	}
	appLog.Info("timetable filtered", "courses", t.Len(), "merge_td_tp", opts.MergeTDTP)
	return nil
}

// SelectSubjects keeps only the courses whose name the user picks. All names
// are selected by default.
func SelectSubjects(t *model.Timetable, ch Chooser) error {
	names := t.Names()
	if len(names) == 0 {
		return nil
	}
	q := Question{
		Stage:    StageSubjects,
		Prompt:   "Choose your subjects",
		Items:    names,
		Defaults: fill(len(names), true),
	}
	chosen, err := ask(ch, q)
	if err != nil {
		return err
	}
	for _, d := range t.Days {
		d.Retain(func(c *model.Course) bool {
			_, ok := chosen[c.Name]
			return ok
		})
	}
	return nil
}

// DisambiguateLectures asks which option to follow for every lecture with
// more than one weekly slot. Lecture slots shared with a TD or TP are kept.
func DisambiguateLectures(t *model.Timetable, ch Chooser) error {
	return disambiguate(t, ch, slotStage{
		stage:   StageLectures,
		prompt:  "Choose your lecture slots",
		allowed: model.NewCategorySet(model.Lecture),
		paired:  model.NewCategorySet(model.TutorialTD, model.PracticalTP),
	}, false)
}

// DisambiguateTutorials mirrors DisambiguateLectures for TD and TP slots.
func DisambiguateTutorials(t *model.Timetable, ch Chooser, mergeTDTP bool) error {
	return disambiguate(t, ch, slotStage{
		stage:   StageTutorials,
		prompt:  "Choose your TD/TP slots",
		allowed: model.NewCategorySet(model.TutorialTD, model.PracticalTP),
		paired:  model.NewCategorySet(model.Lecture),
	}, mergeTDTP)
}

type slotStage struct {
	stage  Stage
	prompt string
	// allowed selects the courses counted by the stage.
	allowed model.CategorySet
	// paired marks combined blocks the stage never drops.
	paired model.CategorySet
}

// Labels returns the sorted labels a stage would present for t.
func Labels(t *model.Timetable, allowed model.CategorySet, mergeTDTP bool) []string {
	counts, placements := timetable.Count(t, allowed, mergeTDTP)
	var labels []string
	for _, p := range placements {
		if counts[timetable.IdentityOf(p.Course, mergeTDTP)] > 1 {
			labels = append(labels, timetable.Label(p.Course, p.Weekday, t.Slots))
		}
	}
	sort.Strings(labels)
	return labels
}

func disambiguate(t *model.Timetable, ch Chooser, s slotStage, mergeTDTP bool) error {
	counts, _ := timetable.Count(t, s.allowed, mergeTDTP)
	labels := Labels(t, s.allowed, mergeTDTP)

	chosen := map[string]struct{}{}
	if len(labels) > 0 {
		var err error
		chosen, err = ask(ch, Question{
			Stage:    s.stage,
			Prompt:   s.prompt,
			Items:    labels,
			Defaults: fill(len(labels), false),
		})
		if err != nil {
			return err
		}
	} else {
		appLog.Debug("no ambiguous slots", "stage", s.stage)
	}

	for _, d := range t.Days {
		wd := d.Weekday
		d.Retain(func(c *model.Course) bool {
			if c.Categories.Intersects(s.paired) {
				return true
			}
			if counts[timetable.IdentityOf(c, mergeTDTP)] == 1 {
				return true
			}
			_, ok := chosen[timetable.Label(c, wd, t.Slots)]
			return ok
		})
	}
	return nil
}

// ask forwards q to the chooser and maps the answer back to item strings.
func ask(ch Chooser, q Question) (map[string]struct{}, error) {
	idx, err := ch.Choose(q)
	if err != nil {
		return nil, err
	}
	chosen := make(map[string]struct{}, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(q.Items) {
			return nil, &timetable.SelectionIndexError{Stage: string(q.Stage), Index: i, Length: len(q.Items)}
		}
		chosen[q.Items[i]] = struct{}{}
	}
	appLog.Debug("selection", "stage", q.Stage, "offered", len(q.Items), "chosen", len(chosen))
	return chosen, nil
}

func fill(n int, v bool) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}
