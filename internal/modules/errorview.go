package modules

import (
	"strings"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Error shows an in-session failure until a key is pressed.
type Error struct {
	process.Base
	sizeGuard

	err         error
	returnState process.State
}

// NewError creates the error module.
func NewError(opts Options) *Error {
	return &Error{sizeGuard: newSizeGuard(opts), returnState: process.StateList}
}

func (m *Error) Context() input.Context { return input.ContextText }

// SetError records the error to show and the state to return to.
func (m *Error) SetError(err error, returnState process.State) {
	m.err = err
	m.returnState = returnState
	if returnState == process.StateError {
		m.returnState = process.StateList
	}
}

func (m *Error) BuildView(_ view.Context, _ *todo.List) *view.Data {
	data := view.New("Error")
	if m.err != nil {
		for _, ln := range strings.Split(m.err.Error(), "\n") {
			data.AddBody(view.Text(ln, "Error"))
		}
	}
	data.Hint = "Press any key to continue"
	return data
}

func (m *Error) HandleEvent(cmd input.Command, _ *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	if isKeyPress(cmd) {
		return process.WithState(m.returnState)
	}
	return process.Continue()
}
