package tracker

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"remindo/internal/storage"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func today(h, m int) time.Time {
	y, mo, d := time.Now().Date()
	return time.Date(y, mo, d, h, m, 0, 0, time.Local)
}

func newTracker(t *testing.T, slots storage.Slots, clock *fakeClock, opts ...Option) *Tracker {
	t.Helper()
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	tr, err := Open(NewStore(slots), Defaults{}, opts...)
	if err != nil {
		t.Fatalf("open tracker: %v", err)
	}
	return tr
}

type failingSlots struct {
	*storage.Memory
	fail bool
}

func (f *failingSlots) Put(key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Put(key, value)
}

func TestCreateAssignsTimestampIDAndPersists(t *testing.T) {
	clock := &fakeClock{t: today(8, 0)}
	mem := storage.NewMemory()
	tr := newTracker(t, mem, clock)

	task, err := tr.Create(Draft{Title: "  Buy milk ", Due: "2030-01-02T09:30", Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != clock.t.UnixMilli() {
		t.Errorf("id = %d, want %d", task.ID, clock.t.UnixMilli())
	}
	if task.Title != "Buy milk" {
		t.Errorf("title not trimmed: %q", task.Title)
	}
	if task.Completed || task.Alerted {
		t.Errorf("new task should be pending and not alerted: %+v", task)
	}

	reopened := newTracker(t, mem, clock)
	got := reopened.Tasks()
	if len(got) != 1 || got[0].ID != task.ID || !got[0].Due.Equal(task.Due) {
		t.Fatalf("task not persisted: %+v", got)
	}
}

func TestCreateKeepsIDsUniqueWithinOneMillisecond(t *testing.T) {
	clock := &fakeClock{t: today(8, 0)}
	tr := newTracker(t, storage.NewMemory(), clock)

	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		task, err := tr.Create(Draft{Title: "x", Due: "2030-01-02T09:30", Priority: PriorityLow})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[task.ID] {
			t.Fatalf("duplicate id %d", task.ID)
		}
		seen[task.ID] = true
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	tests := map[string]struct {
		draft Draft
		field string
	}{
		"empty title":    {Draft{Title: "   ", Due: "2030-01-02T09:30", Priority: PriorityLow}, "title"},
		"empty due":      {Draft{Title: "A", Due: "", Priority: PriorityLow}, "due"},
		"unparsable due": {Draft{Title: "A", Due: "tomorrow", Priority: PriorityLow}, "due"},
		"bad priority":   {Draft{Title: "A", Due: "2030-01-02T09:30", Priority: "urgent"}, "priority"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mem := storage.NewMemory()
			tr := newTracker(t, mem, &fakeClock{t: today(8, 0)})

			_, err := tr.Create(tc.draft)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation")
			}
			if verr.Field != tc.field || verr.Op != "create" {
				t.Errorf("got %+v, want field %s", verr, tc.field)
			}
			if len(tr.Tasks()) != 0 {
				t.Errorf("rejected create mutated the store")
			}
			if mem.Puts() != 0 {
				t.Errorf("rejected create wrote %d times", mem.Puts())
			}
		})
	}
}

func TestCreateThenDeleteRestoresStore(t *testing.T) {
	clock := &fakeClock{t: today(8, 0)}
	tr := newTracker(t, storage.NewMemory(), clock)
	if _, err := tr.Create(Draft{Title: "keep", Due: "2030-01-01T10:00", Priority: PriorityLow}); err != nil {
		t.Fatalf("create: %v", err)
	}
	before := tr.Tasks()

	clock.Advance(time.Second)
	task, err := tr.Create(Draft{Title: "temp", Due: "2030-01-01T11:00", Priority: PriorityMedium})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tr.Delete(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	after := tr.Tasks()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("store not restored: before %+v after %+v", before, after)
	}
}

func TestMutationsOnUnknownID(t *testing.T) {
	tr := newTracker(t, storage.NewMemory(), &fakeClock{t: today(8, 0)})
	if err := tr.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete: %v", err)
	}
	if _, err := tr.ToggleComplete(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle: %v", err)
	}
	if _, err := tr.Edit(42, Draft{Title: "a", Due: "2030-01-01T10:00", Priority: PriorityLow}); !errors.Is(err, ErrNotFound) {
		t.Errorf("edit: %v", err)
	}
}

func TestEditResetsAlerted(t *testing.T) {
	clock := &fakeClock{t: today(9, 1)}
	tr := newTracker(t, storage.NewMemory(), clock)
	task, err := tr.Create(Draft{Title: "A", Due: FormatDueInput(today(9, 0)), Priority: PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if fired, _ := tr.Scan(clock.Now()); len(fired) != 1 {
		t.Fatalf("expected task to fire, got %d", len(fired))
	}

	future := clock.Now().Add(2 * time.Hour)
	edited, err := tr.Edit(task.ID, Draft{Title: "A later", Due: FormatDueInput(future), Priority: PriorityHigh})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Alerted {
		t.Fatal("edit should reset alerted")
	}
	if edited.ID != task.ID || edited.Title != "A later" || edited.Priority != PriorityHigh {
		t.Fatalf("edit did not apply: %+v", edited)
	}

	clock.Advance(3 * time.Hour)
	if fired, _ := tr.Scan(clock.Now()); len(fired) != 1 {
		t.Fatalf("rescheduled task should alert again, fired %d", len(fired))
	}
}

func TestEditRejectsInvalidDraftWithoutMutation(t *testing.T) {
	tr := newTracker(t, storage.NewMemory(), &fakeClock{t: today(8, 0)})
	task, err := tr.Create(Draft{Title: "A", Due: "2030-01-01T10:00", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := tr.Edit(task.ID, Draft{Title: "", Due: "2030-01-01T11:00", Priority: PriorityLow}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := tr.Task(task.ID)
	if got.Title != "A" || !got.Due.Equal(task.Due) {
		t.Fatalf("rejected edit changed task: %+v", got)
	}
}

func TestToggleCompleteKeepsAlerted(t *testing.T) {
	clock := &fakeClock{t: today(9, 1)}
	tr := newTracker(t, storage.NewMemory(), clock)
	task, _ := tr.Create(Draft{Title: "A", Due: FormatDueInput(today(9, 0)), Priority: PriorityLow})
	tr.Scan(clock.Now())

	got, err := tr.ToggleComplete(task.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Completed || !got.Alerted {
		t.Fatalf("expected completed and still alerted: %+v", got)
	}
	got, _ = tr.ToggleComplete(task.ID)
	if got.Completed || !got.Alerted {
		t.Fatalf("undo should keep alerted: %+v", got)
	}
}

func TestFailedSaveLeavesStateUntouched(t *testing.T) {
	slots := &failingSlots{Memory: storage.NewMemory()}
	tr := newTracker(t, slots, &fakeClock{t: today(8, 0)})
	task, err := tr.Create(Draft{Title: "A", Due: "2030-01-01T10:00", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	slots.fail = true
	if _, err := tr.ToggleComplete(task.ID); err == nil {
		t.Fatal("expected save error")
	}
	got, _ := tr.Task(task.ID)
	if got.Completed {
		t.Fatal("in-memory state changed although persisting failed")
	}
	if err := tr.Delete(task.ID); err == nil {
		t.Fatal("expected save error")
	}
	if len(tr.Tasks()) != 1 {
		t.Fatal("task removed although persisting failed")
	}
}

func TestFilterAndThemePersist(t *testing.T) {
	mem := storage.NewMemory()
	clock := &fakeClock{t: today(8, 0)}
	tr, err := Open(NewStore(mem), Defaults{Filter: FilterAll, Theme: ThemeLight}, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := tr.SetFilter(FilterCompleted); err != nil {
		t.Fatalf("set filter: %v", err)
	}
	if th, err := tr.ToggleTheme(); err != nil || th != ThemeDark {
		t.Fatalf("toggle theme = %s, %v", th, err)
	}
	if err := tr.SetFilter("bogus"); err == nil {
		t.Fatal("expected error for unknown filter")
	}

	reopened, err := Open(NewStore(mem), Defaults{Filter: FilterPending, Theme: ThemeLight}, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Filter() != FilterCompleted {
		t.Errorf("filter = %s", reopened.Filter())
	}
	if reopened.Theme() != ThemeDark {
		t.Errorf("theme = %s", reopened.Theme())
	}
}

func TestOpenIgnoresMalformedData(t *testing.T) {
	mem := storage.NewMemory()
	mem.Put(KeyTasks, []byte(`{not json`))
	mem.Put(KeyTheme, []byte(`purple`))

	tr, err := Open(NewStore(mem), Defaults{Theme: ThemeLight}, WithClock((&fakeClock{t: today(8, 0)}).Now))
	if err != nil {
		t.Fatalf("malformed data must not be fatal: %v", err)
	}
	if len(tr.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %d", len(tr.Tasks()))
	}
	if tr.Theme() != ThemeLight {
		t.Errorf("theme = %s, want fallback light", tr.Theme())
	}
}

func TestMetricsCountOperations(t *testing.T) {
	m := NewMetrics()
	tr := newTracker(t, storage.NewMemory(), &fakeClock{t: today(8, 0)}, WithMetrics(m))

	task, _ := tr.Create(Draft{Title: "A", Due: "2030-01-01T10:00", Priority: PriorityLow})
	tr.Create(Draft{Title: "", Due: "2030-01-01T10:00", Priority: PriorityLow})
	tr.ToggleComplete(task.ID)

	if got := testutil.ToFloat64(m.created); got != 1 {
		t.Errorf("created = %v", got)
	}
	if got := testutil.ToFloat64(m.rejected.WithLabelValues("create")); got != 1 {
		t.Errorf("rejected = %v", got)
	}
	if got := testutil.ToFloat64(m.toggled); got != 1 {
		t.Errorf("toggled = %v", got)
	}
	if got := testutil.ToFloat64(m.completed); got != 1 {
		t.Errorf("completed gauge = %v", got)
	}
}

func TestCreateDropsSecondsSoReloadMatches(t *testing.T) {
	clock := &fakeClock{t: time.Date(2030, 1, 2, 8, 0, 0, 0, time.Local)}
	mem := storage.NewMemory()
	tr := newTracker(t, mem, clock)

	task, err := tr.Create(Draft{Title: "A", Due: "2030-01-02T09:00:45", Priority: PriorityLow})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := time.Date(2030, 1, 2, 9, 0, 0, 0, time.Local)
	if !task.Due.Equal(want) {
		t.Fatalf("due = %v, want %v", task.Due, want)
	}

	reopened := newTracker(t, mem, clock)
	got, ok := reopened.Task(task.ID)
	if !ok || !got.Due.Equal(task.Due) || got.Title != task.Title || got.Priority != task.Priority {
		t.Fatalf("reloaded task %+v differs from live %+v", got, task)
	}

	now := time.Date(2030, 1, 2, 9, 0, 10, 0, time.Local)
	live, _ := tr.Scan(now)
	reloaded, _ := reopened.Scan(now)
	if len(live) != len(reloaded) || len(live) != 1 {
		t.Fatalf("live fired %d, reloaded fired %d", len(live), len(reloaded))
	}
}
