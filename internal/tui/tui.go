// internal/tui/tui.go
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-rebase/internal/statusbar"
	"github.com/bethropolis/tide-rebase/internal/theme"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// TUI manages the terminal screen using tcell and draws view data onto it.
type TUI struct {
	screen    tcell.Screen
	theme     *theme.Theme
	statusBar *statusbar.StatusBar

	// focus scrolls views that follow a focus line, such as the list.
	focus view.Viewport
}

// New creates and initializes a TUI on the real terminal.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, th)
}

// NewWithScreen initializes s and wraps it. Tests pass a simulation screen.
func NewWithScreen(s tcell.Screen, th *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(th.GetStyle("Default"))
	return &TUI{
		screen:    s,
		theme:     th,
		statusBar: statusbar.New(statusbar.ConfigFromTheme(th)),
	}, nil
}

// Close finalizes the tcell screen. PollEvent returns nil afterwards.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// Suspend gives the terminal back to the shell, for running an external program.
func (t *TUI) Suspend() error {
	return t.screen.Suspend()
}

// Resume takes the terminal back after Suspend.
func (t *TUI) Resume() error {
	return t.screen.Resume()
}
