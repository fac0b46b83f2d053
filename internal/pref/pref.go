// Package pref holds the persisted display-mode preference.
package pref

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todue/internal/kv"
)

// Key is the kv key under which the dark-mode flag is stored.
const Key = "darkMode"

// Theme is the display mode derived from the preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "dark" or "light".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeDark, ThemeLight:
		return Theme(s), nil
	}
	return "", fmt.Errorf("invalid theme %q (want dark or light)", s)
}

// Load reads the persisted flag. A missing key is false with no error.
// Only the literal "true" reads as true.
func Load(store kv.Store) (bool, error) {
	v, ok, err := store.Get(Key)
	if err != nil {
		return false, fmt.Errorf("load preference: %w", err)
	}
	if !ok {
		return false, nil
	}
	return v == "true", nil
}

// Store holds the in-memory flag and writes through to kv on every change.
// The in-memory value is authoritative: a failed write is reported but never
// rolls it back.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	dark   bool
	logger *log.Logger
}

// Open loads the flag once. A read failure is logged and leaves the default.
func Open(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dark, err := Load(store)
	if err != nil {
		logger.Warn("using default theme", "err", err)
	}
	return &Store{kv: store, dark: dark, logger: logger}
}

// Dark reports whether dark mode is on.
func (s *Store) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Theme returns the current display mode.
func (s *Store) Theme() Theme {
	if s.Dark() {
		return ThemeDark
	}
	return ThemeLight
}

// Set updates the flag and persists it.
func (s *Store) Set(dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(dark)
}

// Toggle flips the flag, persists it, and returns the new value.
func (s *Store) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.setLocked(!s.dark)
	return s.dark, err
}

func (s *Store) setLocked(dark bool) error {
	s.dark = dark
	if err := s.kv.Set(Key, strconv.FormatBool(dark)); err != nil {
		s.logger.Warn("preference not persisted", "dark", dark, "err", err)
		return fmt.Errorf("persist preference: %w", err)
	}
	s.logger.Debug("preference saved", "dark", dark)
	return nil
}
