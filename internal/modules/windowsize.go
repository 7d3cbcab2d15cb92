package modules

import (
	"fmt"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// WindowSize is shown while the terminal is smaller than the editor needs.
type WindowSize struct {
	process.Base
	sizeGuard

	returnState process.State
}

// NewWindowSize creates the window-size-error module.
func NewWindowSize(opts Options) *WindowSize {
	return &WindowSize{sizeGuard: newSizeGuard(opts), returnState: process.StateList}
}

func (m *WindowSize) Context() input.Context { return input.ContextText }

func (m *WindowSize) Activate(_ *todo.List, previous process.State) process.Outcome {
	if previous != process.StateWindowSizeError {
		m.returnState = previous
	}
	return process.Continue()
}

func (m *WindowSize) BuildView(_ view.Context, _ *todo.List) *view.Data {
	data := view.New("Size")
	data.AddBody(view.Text(fmt.Sprintf("Window too small: %dx%d", m.width, m.height), "Error"))
	data.AddBody(view.Text(fmt.Sprintf("Need %dx%d", m.minWidth, m.minHeight), "Hint"))
	return data
}

func (m *WindowSize) HandleEvent(cmd input.Command, _ *todo.List) process.Outcome {
	switch cmd.Action {
	case input.ActionKill:
		return process.WithExit(process.ExitKill)
	case input.ActionResize:
		m.width, m.height = cmd.Event.Width, cmd.Event.Height
		if m.fits(m.width, m.height) {
			// Let the restored module see the new size too.
			return process.WithState(m.returnState).WithReprocess()
		}
	}
	return process.Continue()
}
