// Package theme persists the light/dark preference across runs.
package theme

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// Preference names a color scheme.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
)

func (p Preference) Valid() bool {
	return p == Light || p == Dark
}

func Toggle(p Preference) Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Detect guesses the preference from the terminal background.
func Detect() Preference {
	if lipgloss.HasDarkBackground() {
		return Dark
	}
	return Light
}

type persisted struct {
	Theme Preference `json:"theme"`
}

// Store reads and writes the preference file. Writes are write-through:
// every Set lands on disk immediately so the choice survives a crash.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the stored preference, or fallback when the file is
// missing or unreadable.
func (s *Store) Load(fallback Preference) Preference {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fallback
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil || !p.Theme.Valid() {
		return fallback
	}
	return p.Theme
}

// Set persists pref, creating parent directories as needed.
func (s *Store) Set(pref Preference) error {
	if !pref.Valid() {
		return fmt.Errorf("invalid theme preference %q", pref)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}
	data, err := json.Marshal(persisted{Theme: pref})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	return nil
}
