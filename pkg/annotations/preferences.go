package annotations

import (
	"fmt"
	"strings"
)

// ViewMode selects the list layout.
type ViewMode string

// View modes.
const (
	ViewList  ViewMode = "list"
	ViewTiles ViewMode = "tiles"
)

// ParseViewMode parses a view mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewList:
		return ViewList, nil
	case ViewTiles:
		return ViewTiles, nil
	}
	return "", fmt.Errorf("unknown view mode %q (want list or tiles)", s)
}

// Preferences are process-wide display settings, loaded at start and saved
// on every change.
type Preferences struct {
	DarkMode bool     `json:"dark_mode" yaml:"dark_mode"`
	ViewMode ViewMode `json:"view_mode" yaml:"view_mode"`
}

// DefaultPreferences returns light mode with the list layout.
func DefaultPreferences() Preferences {
	return Preferences{ViewMode: ViewList}
}

// LoadPreferences reads preferences from path, falling back to defaults
// for a missing file or empty fields.
func LoadPreferences(path string) (Preferences, error) {
	prefs := DefaultPreferences()
	if err := readYAML(path, &prefs); err != nil {
		return DefaultPreferences(), err
	}
	if prefs.ViewMode == "" {
		prefs.ViewMode = ViewList
	}
	return prefs, nil
}

// SavePreferences writes prefs to path.
func SavePreferences(path string, prefs Preferences) error {
	return writeYAML(path, prefs)
}
