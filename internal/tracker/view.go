package tracker

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

// DisplayLayout formats due dates for humans.
const DisplayLayout = "Jan 2, 2006 3:04 PM"

// EmptyMessage is shown when the active filter selects nothing.
const EmptyMessage = "No tasks found for this filter."

// Progress summarizes completion over the whole store.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

func (p Progress) Label() string {
	return fmt.Sprintf("%d%% Complete", p.Percent)
}

// Fraction is Percent scaled to [0,1].
func (p Progress) Fraction() float64 {
	return float64(p.Percent) / 100
}

// View is everything a renderer needs for one frame.
type View struct {
	Filter   Filter
	Rows     []Task
	Progress Progress
	DueToday int
	Now      time.Time
}

func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// Reminder is the banner text, or "" when nothing is due today.
func (v View) Reminder() string {
	return ReminderText(v.DueToday)
}

// Derive selects, sorts and summarizes tasks. It does not modify tasks.
func Derive(tasks []Task, f Filter, now time.Time) View {
	return View{
		Filter:   f,
		Rows:     SortByDue(Select(tasks, f)),
		Progress: ComputeProgress(tasks),
		DueToday: CountDueToday(tasks, now),
		Now:      now,
	}
}

// Select returns the tasks matching f in their original order.
func Select(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDue returns a copy ordered by due date; ties keep their order.
func SortByDue(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Due.Before(out[j].Due)
	})
	return out
}

func ComputeProgress(tasks []Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

// CountDueToday counts pending tasks due on now's local calendar day.
func CountDueToday(tasks []Task, now time.Time) int {
	y, m, d := now.Date()
	n := 0
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		ty, tm, td := t.Due.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			n++
		}
	}
	return n
}

func ReminderText(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("You have %d task(s) due today!", n)
}

func FormatDue(t time.Time) string {
	return t.Format(DisplayLayout)
}

// RelativeDue renders due relative to now, e.g. "3 hours from now".
func RelativeDue(due, now time.Time) string {
	return humanize.RelTime(due, now, "ago", "from now")
}
