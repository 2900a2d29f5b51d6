package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv keeps one file per slot under a base directory.
type Diskv struct {
	d *diskv.Diskv
}

func OpenDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("data dir is empty")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &Diskv{d: diskv.New(diskv.Options{
		BasePath: basePath,
		// Writes land in TempDir first and are renamed into place.
		TempDir:      filepath.Join(basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

func (s *Diskv) Get(key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *Diskv) Put(key string, value []byte) error {
	return s.d.Write(key, value)
}

func (s *Diskv) Close() error {
	return nil
}
