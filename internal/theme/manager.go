// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/muesli/termenv"
)

// Auto selects the dark or light built-in theme from the terminal background.
const Auto = "auto"

// Manager holds the known themes and resolves a configured theme name.
type Manager struct {
	themes    map[string]*Theme // Map theme name (lowercase) -> Theme object
	themesDir string

	// darkBackground reports whether the terminal background is dark.
	darkBackground func() bool
}

// NewManager creates a manager with the built-in themes and any themes found in
// themesDir. An empty themesDir skips the directory scan.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:         make(map[string]*Theme),
		themesDir:      themesDir,
		darkBackground: termenv.HasDarkBackground,
	}
	mgr.add(&Dark)
	mgr.add(&Light)

	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return mgr
}

// DefaultThemesDir returns the themes directory under the user config directory.
func DefaultThemesDir(appName string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, appName, "themes")
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadThemesFromDir loads every .toml file in the themes directory. A missing
// directory is not an error.
func (m *Manager) LoadThemesFromDir() error {
	if _, err := os.Stat(m.themesDir); os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}

	files, err := os.ReadDir(m.themesDir)
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(strings.ToLower(file.Name()), ".toml") {
			continue
		}
		filePath := filepath.Join(m.themesDir, file.Name())
		theme, err := LoadThemeFromFile(filePath)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", filePath, err)
			continue
		}
		m.add(theme)
		loadedCount++
	}
	logger.Infof("Loaded %d custom themes.", loadedCount)
	return nil
}

// GetTheme returns a theme by name (case-insensitive).
func (m *Manager) GetTheme(name string) (*Theme, bool) {
	theme, ok := m.themes[strings.ToLower(name)]
	return theme, ok
}

// ListThemes returns the names of all known themes, sorted.
func (m *Manager) ListThemes() []string {
	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name to a theme and applies the style overrides to a copy of it.
// name is "auto", a known theme name, or a path to a theme file.
func (m *Manager) Select(name string, overrides map[string]StyleDef) (*Theme, error) {
	var base *Theme
	switch {
	case name == "" || strings.EqualFold(name, Auto):
		base = &Light
		if m.darkBackground() {
			base = &Dark
		}
		logger.Debugf("Auto theme resolved to '%s'", base.Name)
	case strings.HasSuffix(strings.ToLower(name), ".toml"):
		loaded, err := LoadThemeFromFile(name)
		if err != nil {
			return nil, err
		}
		base = loaded
	default:
		t, ok := m.GetTheme(name)
		if !ok {
			return nil, fmt.Errorf("theme '%s' not found (available: %s)", name, strings.Join(m.ListThemes(), ", "))
		}
		base = t
	}

	theme := base.Clone()
	theme.Apply(overrides)
	logger.Infof("Active theme set to: %s", theme.Name)
	return theme, nil
}
