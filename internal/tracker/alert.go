package tracker

import "time"

// AlertInterval is the default period between due-time scans.
const AlertInterval = 30 * time.Second

// Cue plays the audible part of an alert.
type Cue interface {
	Play() error
}

// AlertMessage is the text of the blocking notification for t.
func AlertMessage(t Task) string {
	return "TIME'S UP! Your task \"" + t.Title + "\" is due."
}

// Scan marks every pending, not yet alerted task whose due time is at or
// before now as alerted, persists once and returns the fired tasks in store
// order. Each firing plays the cue; cue failures are logged and counted.
//
// If persisting fails the flags stay set in memory so the same task does
// not fire twice this session, and the error is returned with the tasks.
func (t *Tracker) Scan(now time.Time) ([]Task, error) {
	var fired []Task
	next := t.Tasks()
	for i := range next {
		task := &next[i]
		if task.Completed || task.Alerted {
			continue
		}
		if now.Before(task.Due) {
			continue
		}
		task.Alerted = true
		fired = append(fired, *task)
	}
	if len(fired) == 0 {
		return nil, nil
	}

	var saveErr error
	if err := t.commit(next); err != nil {
		t.tasks = next
		saveErr = err
	}
	for _, task := range fired {
		t.metrics.alerts.Inc()
		t.log.Info("task due", "id", task.ID, "title", task.Title)
		t.playCue()
	}
	return fired, saveErr
}

func (t *Tracker) playCue() {
	if t.cue == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.metrics.cueFailures.Inc()
			t.log.Error("audio cue panicked", "panic", r)
		}
	}()
	if err := t.cue.Play(); err != nil {
		t.metrics.cueFailures.Inc()
		t.log.Error("audio playback failed", "err", err)
	}
}
