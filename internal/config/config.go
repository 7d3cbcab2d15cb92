// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/theme"
)

// ErrInvalid marks a configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the application's combined configuration.
type Config struct {
	Logger      logger.Config `toml:"logger"`
	Editor      EditorConfig  `toml:"editor"`
	Git         GitConfig     `toml:"git"`
	Theme       ThemeConfig   `toml:"theme"`
	KeyBindings KeyBindings   `toml:"key_bindings"`

	path      string
	undecoded []string
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	UndoLimit      int  `toml:"undo_limit"` // 0 disables undo history
	AutoSelectNext bool `toml:"auto_select_next"`
	MinWidth       int  `toml:"min_width"`
	MinHeight      int  `toml:"min_height"`
}

// GitConfig holds settings that mirror or override git's own.
type GitConfig struct {
	// CommentChar is "auto" to ask git for core.commentChar.
	CommentChar string `toml:"comment_char"`
	// Editor overrides git's editor for the external editor hand-off.
	Editor string `toml:"editor"`
}

// ThemeConfig selects a theme and overrides individual styles.
type ThemeConfig struct {
	// Name is "auto", "dark", "light", or a path to a theme TOML file.
	Name   string                    `toml:"name"`
	Styles map[string]theme.StyleDef `toml:"styles"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			UndoLimit: DefaultUndoLimit,
			MinWidth:  DefaultMinWidth,
			MinHeight: DefaultMinHeight,
		},
		Git: GitConfig{
			CommentChar: CommentCharAuto,
		},
		Theme: ThemeConfig{
			Name: ThemeAuto,
		},
		KeyBindings: DefaultKeyBindings(),
	}
}

// DefaultPath returns the config file location under the user config directory, or ""
// if there is none.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. Keys absent from the file keep their
// current value. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: error checking config file '%s': %w", ErrInvalid, filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to parse config file '%s': %w", ErrInvalid, filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// The logger is not up yet; keep the keys so Load can report them once it is.
		cfg.undecoded = make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			cfg.undecoded = append(cfg.undecoded, key.String())
		}
	}
	return nil
}

// validate resets recoverable bad values to defaults and reports the rest.
func (c *Config) validate() error {
	defaults := NewDefaultConfig()

	if c.Editor.UndoLimit < 0 {
		c.Editor.UndoLimit = defaults.Editor.UndoLimit
	}
	if c.Editor.MinWidth <= 0 {
		c.Editor.MinWidth = defaults.Editor.MinWidth
	}
	if c.Editor.MinHeight <= 0 {
		c.Editor.MinHeight = defaults.Editor.MinHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Theme.Name == "" {
		c.Theme.Name = defaults.Theme.Name
	}

	switch {
	case c.Git.CommentChar == "":
		c.Git.CommentChar = defaults.Git.CommentChar
	case c.Git.CommentChar == CommentCharAuto:
	case utf8.RuneCountInString(c.Git.CommentChar) != 1:
		return fmt.Errorf("%w: comment_char must be a single character or %q, got %q", ErrInvalid, CommentCharAuto, c.Git.CommentChar)
	}
	return nil
}

// Load builds the configuration from defaults, the TOML file at filePath (or the
// default location when empty), and any flags the user set. Unlike the editor settings,
// an unreadable or unparsable file is an error.
func Load(filePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := filePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}
	if effectivePath != "" {
		if err := loadFromFile(effectivePath, cfg); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.path = effectivePath
	return cfg, nil
}

// Path returns the file the configuration was read from, if any.
func (c *Config) Path() string { return c.path }

// ReportUndecoded logs keys in the file that matched no setting. Call it once the
// logger is initialized.
func (c *Config) ReportUndecoded() {
	if len(c.undecoded) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", c.path, c.undecoded)
	}
}
