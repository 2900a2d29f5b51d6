package storage

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Slots {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "db", "remindo.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	dv, err := OpenDiskv(filepath.Join(dir, "slots"))
	if err != nil {
		t.Fatalf("open diskv: %v", err)
	}

	return map[string]Slots{
		"sqlite": sq,
		"diskv":  dv,
		"memory": NewMemory(),
	}
}

func TestSlotsMissingKey(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get("tasks"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestSlotsPutOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("theme", []byte("light")); err != nil {
				t.Fatalf("put: %v", err)
			}
			if err := s.Put("theme", []byte("dark")); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := s.Get("theme")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !bytes.Equal(got, []byte("dark")) {
				t.Fatalf("expected dark, got %q", got)
			}
		})
	}
}

func TestSlotsKeysAreIndependent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put("tasks", []byte(`[]`)); err != nil {
				t.Fatalf("put tasks: %v", err)
			}
			if err := s.Put("theme", []byte("dark")); err != nil {
				t.Fatalf("put theme: %v", err)
			}
			got, err := s.Get("tasks")
			if err != nil {
				t.Fatalf("get tasks: %v", err)
			}
			if string(got) != "[]" {
				t.Fatalf("tasks slot clobbered: %q", got)
			}
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remindo.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put("filter", []byte("pending")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get("filter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "pending" {
		t.Fatalf("expected pending, got %q", got)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", "x.db", t.TempDir()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN("file:memdb?mode=memory"); got != "file:memdb?mode=memory" {
		t.Fatalf("file: DSN should pass through, got %s", got)
	}
	got := sqliteDSN("/tmp/remindo.db")
	if want := "file:///tmp/remindo.db?_pragma=busy_timeout%285000%29&mode=rwc"; got != want {
		t.Fatalf("dsn = %s, want %s", got, want)
	}
}
