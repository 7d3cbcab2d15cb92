package modules

import (
	"fmt"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Help lists the bindings of the state it was opened from.
type Help struct {
	process.Base
	sizeGuard

	bindings  *input.KeyBindings
	contextOf func(process.State) input.Context

	returnState process.State
	shown       input.Context
	top         int
}

// NewHelp creates the help module. contextOf tells which bindings a state listens to.
func NewHelp(bindings *input.KeyBindings, contextOf func(process.State) input.Context, opts Options) *Help {
	return &Help{sizeGuard: newSizeGuard(opts), bindings: bindings, contextOf: contextOf}
}

func (m *Help) Context() input.Context { return input.ContextHelp }

func (m *Help) Activate(_ *todo.List, previous process.State) process.Outcome {
	if previous == process.StateWindowSizeError {
		return process.Continue()
	}
	m.returnState = previous
	m.shown = m.contextOf(previous)
	m.top = 0
	return process.Continue()
}

func (m *Help) entries() []view.Line {
	actions := m.shown.Actions()
	width := 0
	for _, a := range actions {
		if n := len(m.bindings.Label(a)); n > width {
			width = n
		}
	}
	lines := make([]view.Line, 0, len(actions))
	for _, a := range actions {
		label := m.bindings.Label(a)
		if label == "" {
			continue
		}
		lines = append(lines, view.NewLine(
			view.Segment{Text: fmt.Sprintf("%-*s  ", width, label), Style: "Key"},
			view.Segment{Text: a.Description(), Style: "Default"},
		))
	}
	return lines
}

func (m *Help) BuildView(ctx view.Context, _ *todo.List) *view.Data {
	data := view.New("Help: " + m.returnState.String())
	data.AddLeading(view.Text("Key bindings", "diff.header"))
	data.AddBody(m.entries()...)

	if maxTop := len(data.Body) - data.BodyRows(ctx); m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
	data.Top = m.top
	data.Hint = "Press any other key to close"
	return data
}

func (m *Help) HandleEvent(cmd input.Command, _ *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	switch cmd.Action {
	case input.ActionMoveUp:
		m.top--
	case input.ActionMoveDown:
		m.top++
	case input.ActionMoveUpStep:
		m.top -= m.pageSize(1)
	case input.ActionMoveDownStep:
		m.top += m.pageSize(1)
	case input.ActionMoveHome:
		m.top = 0
	case input.ActionMoveEnd:
		m.top = len(m.shown.Actions())
	default:
		if isKeyPress(cmd) {
			return process.WithState(m.returnState)
		}
	}
	if m.top < 0 {
		m.top = 0
	}
	return process.Continue()
}
