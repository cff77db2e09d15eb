package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"termcal/internal/model"
)

func TestReadCourses(t *testing.T) {
	in := "day;start;size;name;categories;room;professor;data\n" +
		"Monday;08:00;4;Algebra L1;COURS;A1;Dupont;bring notes\n" +
		"Tuesday; 10h00;;Lab;TP;B2;;\n"
	rows, err := ReadCourses(strings.NewReader(in), ';')
	if err != nil {
		t.Fatalf("ReadCourses: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Name != "Algebra L1" || rows[0].Size != 4 || rows[0].Data != "bring notes" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].Start != "10h00" || rows[1].Size != 0 {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}

func TestReadCoursesMalformed(t *testing.T) {
	in := "day,start,size,name\nMonday,08:00,four,Algebra\n"
	if _, err := ReadCourses(strings.NewReader(in), 0); err == nil {
		t.Fatalf("ReadCourses accepted a non numeric size")
	}
}

func sampleOccurrences() []model.Occurrence {
	return []model.Occurrence{{
		Course: model.Course{
			Name:       "Algebra",
			Categories: model.NewCategorySet(model.Lecture, model.TutorialTD),
			Room:       "A1, A2",
			Professor:  "Dupont",
		},
		Weekday: time.Monday,
		Start:   time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 9, 2, 9, 0, 0, 0, time.UTC),
	}}
}

func TestWriteOccurrences(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOccurrences(&buf, sampleOccurrences()); err != nil {
		t.Fatalf("WriteOccurrences: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header + 1", len(lines))
	}
	if lines[0] != "date,weekday,start,end,name,categories,room,professor,data" {
		t.Fatalf("header = %q", lines[0])
	}
	if want := `2024-09-02,Monday,08:00,09:00,Algebra,Lecture/TD,"A1, A2",Dupont,`; lines[1] != want {
		t.Fatalf("row = %q, want %q", lines[1], want)
	}
}

func TestWriteOccurrencesFileAddsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "term")
	path, err := WriteOccurrencesFile(base, sampleOccurrences())
	if err != nil {
		t.Fatalf("WriteOccurrencesFile: %v", err)
	}
	if path != base+".csv" {
		t.Fatalf("path = %q, want %q", path, base+".csv")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}
