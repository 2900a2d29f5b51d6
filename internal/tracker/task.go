// Package tracker holds remindo's task state: the persisted task list, the
// pure view derivation, user mutations and the due-time scan.
package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DueLayout is the wire and input format of a due date: local wall-clock
// time with minute precision.
const DueLayout = "2006-01-02T15:04"

var dueInputLayouts = []string{
	DueLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Priority is a task's importance as stored on the wire.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the priorities in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts a priority name in any case.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("unknown priority %q", s)
	}
}

// Valid reports whether p is one of Priorities.
func (p Priority) Valid() bool {
	_, err := ParsePriority(string(p))
	return err == nil
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	for i, v := range Priorities {
		if v == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Prev cycles in the opposite direction of Next.
func (p Priority) Prev() Priority {
	for i, v := range Priorities {
		if v == p {
			return Priorities[(i+len(Priorities)-1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Task is a single to-do record. ID is assigned once and never changes.
type Task struct {
	ID        int64
	Title     string
	Due       time.Time
	Priority  Priority
	Completed bool
	Alerted   bool
}

type taskJSON struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	DueDate     string   `json:"dueDate"`
	Priority    Priority `json:"priority"`
	IsCompleted bool     `json:"isCompleted"`
	Alerted     bool     `json:"alerted"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		DueDate:     FormatDueInput(t.Due),
		Priority:    t.Priority,
		IsCompleted: t.Completed,
		Alerted:     t.Alerted,
	})
}

func (t *Task) UnmarshalJSON(b []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	due, err := ParseDue(raw.DueDate, time.Local)
	if err != nil {
		return err
	}
	prio, err := ParsePriority(string(raw.Priority))
	if err != nil {
		return err
	}
	*t = Task{
		ID:        raw.ID,
		Title:     raw.Title,
		Due:       due,
		Priority:  prio,
		Completed: raw.IsCompleted,
		Alerted:   raw.Alerted,
	}
	return nil
}

// ParseDue parses a due date typed by the user or read from storage as a
// wall-clock time in loc.
func ParseDue(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("due date is empty")
	}
	for _, layout := range dueInputLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return toMinute(t), nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return toMinute(t.In(loc)), nil
	}
	return time.Time{}, fmt.Errorf("due date %q is not in %s form", s, DueLayout)
}

// toMinute drops seconds so a parsed due equals its DueLayout round trip.
func toMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

// FormatDueInput renders a due date in the form ParseDue accepts.
func FormatDueInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DueLayout)
}
