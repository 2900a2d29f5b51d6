package tracker

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2030, 6, 15, h, m, 0, 0, time.Local)
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty", 0, 0, 0},
		{"none", 0, 3, 0},
		{"one third", 1, 3, 33},
		{"two thirds", 2, 3, 67},
		{"half", 1, 2, 50},
		{"all", 4, 4, 100},
		{"round half up", 1, 8, 13},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tasks := make([]Task, tc.total)
			for i := 0; i < tc.completed; i++ {
				tasks[i].Completed = true
			}
			p := ComputeProgress(tasks)
			if p.Percent != tc.want {
				t.Errorf("percent = %d, want %d", p.Percent, tc.want)
			}
			if p.Percent < 0 || p.Percent > 100 {
				t.Errorf("percent out of range: %d", p.Percent)
			}
		})
	}
	if got := (Progress{Percent: 40}).Label(); got != "40% Complete" {
		t.Errorf("label = %q", got)
	}
}

func TestFilterPartitions(t *testing.T) {
	tasks := []Task{
		{ID: 1, Completed: true},
		{ID: 2},
		{ID: 3, Completed: true},
		{ID: 4},
	}
	all := Select(tasks, FilterAll)
	pending := Select(tasks, FilterPending)
	done := Select(tasks, FilterCompleted)

	if len(all) != len(tasks) {
		t.Fatalf("all = %d", len(all))
	}
	ids := map[int64]int{}
	for _, ts := range [][]Task{pending, done} {
		for _, task := range ts {
			ids[task.ID]++
		}
	}
	if len(ids) != len(all) {
		t.Fatalf("pending ∪ completed != all: %v", ids)
	}
	for id, n := range ids {
		if n != 1 {
			t.Errorf("id %d in %d partitions", id, n)
		}
	}
}

func TestSortByDueIsStable(t *testing.T) {
	tasks := []Task{
		{ID: 1, Due: at(10, 0)},
		{ID: 2, Due: at(9, 0)},
		{ID: 3, Due: at(10, 0)},
		{ID: 4, Due: at(8, 0)},
		{ID: 5, Due: at(10, 0)},
	}
	want := []int64{4, 2, 1, 3, 5}
	for round := 0; round < 3; round++ {
		got := SortByDue(tasks)
		for i, id := range want {
			if got[i].ID != id {
				t.Fatalf("round %d: order %v, want %v", round, idsOf(got), want)
			}
		}
	}
	if tasks[0].ID != 1 {
		t.Fatal("SortByDue modified its input")
	}
}

func TestDeriveEmptyFilter(t *testing.T) {
	tasks := []Task{{ID: 1, Due: at(9, 0)}}
	v := Derive(tasks, FilterCompleted, at(8, 0))
	if !v.Empty() {
		t.Fatalf("expected empty view, got %d rows", len(v.Rows))
	}
	if v.Progress.Total != 1 {
		t.Errorf("progress should cover the whole store, total = %d", v.Progress.Total)
	}
}

func TestRemindersCountPendingDueToday(t *testing.T) {
	now := at(7, 0)
	tasks := []Task{
		{ID: 1, Due: at(9, 0), Completed: true},
		{ID: 2, Due: at(18, 0)},
		{ID: 3, Due: now.AddDate(0, 0, 1)},
		{ID: 4, Due: now.AddDate(0, 0, -1)},
	}
	v := Derive(tasks, FilterAll, now)
	if v.DueToday != 1 {
		t.Fatalf("due today = %d, want 1", v.DueToday)
	}
	if got := v.Reminder(); got != "You have 1 task(s) due today!" {
		t.Errorf("reminder = %q", got)
	}
	if got := ReminderText(0); got != "" {
		t.Errorf("no reminder expected, got %q", got)
	}
}

func TestFormatting(t *testing.T) {
	if got := FormatDue(at(15, 4)); got != "Jun 15, 2030 3:04 PM" {
		t.Errorf("FormatDue = %q", got)
	}
	if got := RelativeDue(at(12, 0), at(9, 0)); got != "3 hours from now" {
		t.Errorf("RelativeDue future = %q", got)
	}
	if got := RelativeDue(at(9, 0), at(12, 0)); got != "3 hours ago" {
		t.Errorf("RelativeDue past = %q", got)
	}
}

func idsOf(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
