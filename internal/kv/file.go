package kv

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
)

// FileStore persists a flat TOML table of string values:
//
//	darkMode = "true"
//
// Every Set rewrites the whole file through a temporary file and rename.
// Access is serialized across processes with an advisory lock on path+".lock",
// so a "todue theme" run does not race a running TUI.
type FileStore struct {
	mu   sync.Mutex
	path string
	flk  *flock.Flock
}

// NewFileStore returns a store backed by path. The file and its directory are
// created on the first Set.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("kv file path is empty")
	}
	return &FileStore{path: path, flk: flock.New(path + ".lock")}, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the value for key. A missing file behaves like an empty one.
func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Nothing to lock or read before the first Set creates the directory.
	if _, err := os.Stat(filepath.Dir(f.path)); os.IsNotExist(err) {
		return "", false, nil
	}
	if err := f.flk.RLock(); err != nil {
		return "", false, fmt.Errorf("lock kv file: %w", err)
	}
	defer func() { _ = f.flk.Unlock() }()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set stores value under key and rewrites the file.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create kv dir: %w", err)
		}
	}
	if err := f.flk.Lock(); err != nil {
		return fmt.Errorf("lock kv file: %w", err)
	}
	defer func() { _ = f.flk.Unlock() }()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

// Close releases the advisory lock if it is held.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.flk.Unlock()
}

func (f *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("read kv file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if _, err := toml.Decode(string(data), &values); err != nil {
		return nil, fmt.Errorf("parse kv file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *FileStore) write(values map[string]string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return fmt.Errorf("encode kv file: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write kv file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace kv file: %w", err)
	}
	return nil
}
