package printer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"remindo/internal/tracker"
)

func TestViewListsRowsAndProgress(t *testing.T) {
	now := time.Date(2030, 6, 15, 8, 0, 0, 0, time.Local)
	tasks := []tracker.Task{
		{ID: 1, Title: "Later", Due: now.Add(48 * time.Hour), Priority: tracker.PriorityLow},
		{ID: 2, Title: "Today", Due: now.Add(2 * time.Hour), Priority: tracker.PriorityHigh},
		{ID: 3, Title: "Done", Due: now.Add(-time.Hour), Priority: tracker.PriorityMedium, Completed: true},
	}

	var buf bytes.Buffer
	p := &Pretty{Out: &buf, NoColor: true}
	if err := p.View(tracker.Derive(tasks, tracker.FilterAll, now)); err != nil {
		t.Fatalf("view: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"all tasks", "You have 1 task(s) due today!", "[x]", "high", "33% Complete"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Done") > strings.Index(out, "Today") || strings.Index(out, "Today") > strings.Index(out, "Later") {
		t.Errorf("rows not in due order:\n%s", out)
	}
}

func TestViewEmptyFilter(t *testing.T) {
	now := time.Date(2030, 6, 15, 8, 0, 0, 0, time.Local)
	tasks := []tracker.Task{{ID: 1, Title: "A", Due: now.Add(72 * time.Hour), Priority: tracker.PriorityLow}}

	var buf bytes.Buffer
	p := &Pretty{Out: &buf, NoColor: true}
	if err := p.View(tracker.Derive(tasks, tracker.FilterCompleted, now)); err != nil {
		t.Fatalf("view: %v", err)
	}
	if !strings.Contains(buf.String(), tracker.EmptyMessage) {
		t.Errorf("expected empty message:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "0% Complete") {
		t.Errorf("empty view should still print store progress:\n%s", buf.String())
	}
}
