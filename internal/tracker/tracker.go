package tracker

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrValidation is wrapped by every *ValidationError.
	ErrValidation = errors.New("invalid task")
	ErrNotFound   = errors.New("task not found")
)

// ValidationError reports why a create or edit was rejected. No state is
// changed when one is returned.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Draft carries the user-entered fields of a task.
type Draft struct {
	Title    string
	Due      string
	Priority Priority
}

// Defaults are used when no preference has been stored yet.
type Defaults struct {
	Filter Filter
	Theme  Theme
}

type Option func(*Tracker)

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(t *Tracker) { t.metrics = m }
}

func WithCue(c Cue) Option {
	return func(t *Tracker) { t.cue = c }
}

// Tracker owns the in-memory task list and the active filter and theme.
// It is not safe for concurrent use; callers serialize access the way a
// Bubble Tea program serializes Update calls.
type Tracker struct {
	store   *Store
	tasks   []Task
	filter  Filter
	theme   Theme
	lastID  int64
	now     func() time.Time
	log     *log.Logger
	metrics *Metrics
	cue     Cue
}

// Open loads persisted state. Malformed data is logged and treated as absent.
func Open(store *Store, def Defaults, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		store:  store,
		filter: FilterAll,
		theme:  ThemeLight,
		now:    time.Now,
	}
	if def.Filter != "" {
		t.filter = def.Filter
	}
	if def.Theme != "" {
		t.theme = def.Theme
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = log.New(io.Discard)
	}
	if t.metrics == nil {
		t.metrics = NewMetrics()
	}

	tasks, err := store.Load()
	switch {
	case errors.Is(err, ErrCorrupt):
		t.log.Warn("ignoring malformed task data", "err", err)
	case err != nil:
		return nil, err
	}
	t.tasks = tasks
	for _, task := range tasks {
		if task.ID > t.lastID {
			t.lastID = task.ID
		}
	}

	if th, ok, err := store.LoadTheme(); err != nil {
		t.log.Warn("ignoring stored theme", "err", err)
	} else if ok {
		t.theme = th
	}
	if f, ok, err := store.LoadFilter(); err != nil {
		t.log.Warn("ignoring stored filter", "err", err)
	} else if ok {
		t.filter = f
	}

	t.metrics.observe(t.tasks)
	t.log.Debug("tracker opened", "tasks", len(t.tasks), "filter", t.filter, "theme", t.theme)
	return t, nil
}

// Tasks returns a copy of the task list in store order.
func (t *Tracker) Tasks() []Task {
	out := make([]Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

func (t *Tracker) Task(id int64) (Task, bool) {
	if i := t.index(id); i >= 0 {
		return t.tasks[i], true
	}
	return Task{}, false
}

func (t *Tracker) Filter() Filter { return t.filter }

func (t *Tracker) Theme() Theme { return t.theme }

func (t *Tracker) Now() time.Time { return t.now() }

func (t *Tracker) Metrics() *Metrics { return t.metrics }

// View derives the render model for the active filter at the current time.
func (t *Tracker) View() View {
	return Derive(t.tasks, t.filter, t.now())
}

// Create validates d and appends a new task.
func (t *Tracker) Create(d Draft) (Task, error) {
	title, due, err := t.validate("create", d)
	if err != nil {
		return Task{}, err
	}
	task := Task{
		ID:       t.nextID(),
		Title:    title,
		Due:      due,
		Priority: d.Priority,
	}
	next := append(t.Tasks(), task)
	if err := t.commit(next); err != nil {
		return Task{}, err
	}
	t.lastID = task.ID
	t.metrics.created.Inc()
	t.log.Info("task created", "id", task.ID, "due", FormatDueInput(task.Due), "priority", task.Priority)
	return task, nil
}

// Edit overwrites title, due date and priority and clears the alerted flag
// so the rescheduled task can alert again.
func (t *Tracker) Edit(id int64, d Draft) (Task, error) {
	i := t.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("edit %d: %w", id, ErrNotFound)
	}
	title, due, err := t.validate("edit", d)
	if err != nil {
		return Task{}, err
	}
	next := t.Tasks()
	next[i].Title = title
	next[i].Due = due
	next[i].Priority = d.Priority
	next[i].Alerted = false
	if err := t.commit(next); err != nil {
		return Task{}, err
	}
	t.metrics.edited.Inc()
	t.log.Info("task edited", "id", id, "due", FormatDueInput(due))
	return next[i], nil
}

// ToggleComplete flips the completion flag. Alerted is left alone.
func (t *Tracker) ToggleComplete(id int64) (Task, error) {
	i := t.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle %d: %w", id, ErrNotFound)
	}
	next := t.Tasks()
	next[i].Completed = !next[i].Completed
	if err := t.commit(next); err != nil {
		return Task{}, err
	}
	t.metrics.toggled.Inc()
	t.log.Info("task toggled", "id", id, "completed", next[i].Completed)
	return next[i], nil
}

func (t *Tracker) Delete(id int64) error {
	i := t.index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrNotFound)
	}
	next := make([]Task, 0, len(t.tasks)-1)
	next = append(next, t.tasks[:i]...)
	next = append(next, t.tasks[i+1:]...)
	if err := t.commit(next); err != nil {
		return err
	}
	t.metrics.deleted.Inc()
	t.log.Info("task deleted", "id", id)
	return nil
}

func (t *Tracker) SetFilter(f Filter) error {
	if _, err := ParseFilter(string(f)); err != nil {
		return err
	}
	if err := t.store.SaveFilter(f); err != nil {
		return fmt.Errorf("save filter: %w", err)
	}
	t.filter = f
	return nil
}

func (t *Tracker) ToggleTheme() (Theme, error) {
	th := t.theme.Toggle()
	if err := t.store.SaveTheme(th); err != nil {
		return t.theme, fmt.Errorf("save theme: %w", err)
	}
	t.theme = th
	t.log.Debug("theme toggled", "theme", th)
	return th, nil
}

func (t *Tracker) validate(op string, d Draft) (string, time.Time, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return "", time.Time{}, t.reject(&ValidationError{Op: op, Field: "title", Reason: "is required"})
	}
	if strings.TrimSpace(d.Due) == "" {
		return "", time.Time{}, t.reject(&ValidationError{Op: op, Field: "due", Reason: "is required"})
	}
	due, err := ParseDue(d.Due, t.now().Location())
	if err != nil {
		return "", time.Time{}, t.reject(&ValidationError{Op: op, Field: "due", Reason: "must look like " + DueLayout})
	}
	if !d.Priority.Valid() {
		return "", time.Time{}, t.reject(&ValidationError{Op: op, Field: "priority", Reason: "must be low, medium or high"})
	}
	return title, due, nil
}

func (t *Tracker) reject(err *ValidationError) error {
	t.metrics.rejected.WithLabelValues(err.Op).Inc()
	t.log.Debug("rejected input", "op", err.Op, "field", err.Field)
	return err
}

// commit persists next and only then makes it the current list.
func (t *Tracker) commit(next []Task) error {
	if err := t.store.Save(next); err != nil {
		t.log.Error("persist tasks", "err", err)
		return err
	}
	t.tasks = next
	t.metrics.observe(next)
	return nil
}

// nextID is the current Unix millisecond time, bumped past the last issued
// id when two tasks are created within the same millisecond.
func (t *Tracker) nextID() int64 {
	id := t.now().UnixMilli()
	if id <= t.lastID {
		id = t.lastID + 1
	}
	return id
}

func (t *Tracker) index(id int64) int {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
