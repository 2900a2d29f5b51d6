package tracker

import (
	"encoding/json"
	"errors"
	"fmt"

	"remindo/internal/storage"
)

// Slot keys. Each holds one whole value.
const (
	KeyTasks  = "tasks"
	KeyTheme  = "theme"
	KeyFilter = "filter"
)

// ErrCorrupt marks a persisted value that could not be decoded.
var ErrCorrupt = errors.New("corrupt persisted data")

// Store maps the task list and display preferences onto slots.
type Store struct {
	slots storage.Slots
}

func NewStore(slots storage.Slots) *Store {
	return &Store{slots: slots}
}

// Load reads the task list. A missing slot yields no tasks; a malformed one
// yields no tasks and an error wrapping ErrCorrupt.
func (s *Store) Load() ([]Task, error) {
	data, err := s.slots.Get(KeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := validateBlob(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return dedupe(tasks), nil
}

// Save writes the full task list as one value.
func (s *Store) Save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.slots.Put(KeyTasks, data); err != nil {
		return fmt.Errorf("write tasks: %w", err)
	}
	return nil
}

// LoadTheme reports the stored theme and whether one was present.
func (s *Store) LoadTheme() (Theme, bool, error) {
	v, ok, err := s.readString(KeyTheme)
	if !ok || err != nil {
		return "", false, err
	}
	th, err := ParseTheme(v)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return th, true, nil
}

func (s *Store) SaveTheme(th Theme) error {
	return s.slots.Put(KeyTheme, []byte(th))
}

// LoadFilter reports the stored filter and whether one was present.
func (s *Store) LoadFilter() (Filter, bool, error) {
	v, ok, err := s.readString(KeyFilter)
	if !ok || err != nil {
		return "", false, err
	}
	f, err := ParseFilter(v)
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return f, true, nil
}

func (s *Store) SaveFilter(f Filter) error {
	return s.slots.Put(KeyFilter, []byte(f))
}

func (s *Store) readString(key string) (string, bool, error) {
	data, err := s.slots.Get(key)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(data), true, nil
}

// dedupe keeps the first task for each id.
func dedupe(tasks []Task) []Task {
	seen := make(map[int64]struct{}, len(tasks))
	out := tasks[:0]
	for _, t := range tasks {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out
}
