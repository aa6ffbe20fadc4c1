package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
)

// FileKV keeps string values in a single JSON object file. Access from other
// processes is coordinated with an advisory lock on <path>.lock.
type FileKV struct {
	path string

	mu   sync.Mutex // flock.Flock is not reentrant across goroutines
	lock *flock.Flock
}

func NewFileKV(path string) *FileKV {
	return &FileKV{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (f *FileKV) Path() string { return f.path }

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureDir(); err != nil {
		return "", false, err
	}
	if err := f.lock.RLock(); err != nil {
		return "", false, fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer func() { _ = f.lock.Unlock() }()

	m, err := f.readAll()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	return f.update(func(m map[string]string) { m[key] = value })
}

func (f *FileKV) update(apply func(m map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.ensureDir(); err != nil {
		return err
	}
	if err := f.lock.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", f.path, err)
	}
	defer func() { _ = f.lock.Unlock() }()

	m, err := f.readAll()
	if err != nil {
		// unreadable content is set aside rather than silently overwritten
		_ = os.Rename(f.path, f.path+".corrupt")
		m = map[string]string{}
	}
	apply(m)

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal kv file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write temp kv file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace kv file: %w", err)
	}
	return nil
}

func (f *FileKV) readAll() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read kv file: %w", err)
	}
	m := map[string]string{}
	if len(b) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse kv file %s: %w", f.path, err)
	}
	return m, nil
}

func (f *FileKV) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(f.path), err)
	}
	return nil
}
