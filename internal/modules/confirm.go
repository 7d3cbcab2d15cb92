package modules

import (
	"fmt"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Confirm asks a yes/no question before ending the session.
type Confirm struct {
	process.Base
	sizeGuard

	bindings *input.KeyBindings
	question string
	onYes    process.ExitStatus
}

// NewConfirmAbort asks before aborting the rebase.
func NewConfirmAbort(bindings *input.KeyBindings, opts Options) *Confirm {
	return &Confirm{sizeGuard: newSizeGuard(opts), bindings: bindings, question: "Are you sure you want to abort", onYes: process.ExitAbort}
}

// NewConfirmRebase asks before writing the list and continuing the rebase.
func NewConfirmRebase(bindings *input.KeyBindings, opts Options) *Confirm {
	return &Confirm{sizeGuard: newSizeGuard(opts), bindings: bindings, question: "Are you sure you want to rebase", onYes: process.ExitGood}
}

func (m *Confirm) Context() input.Context { return input.ContextConfirm }

func (m *Confirm) BuildView(_ view.Context, list *todo.List) *view.Data {
	data := view.New(title)
	for _, line := range list.Lines() {
		data.AddBody(formatLine(line))
	}
	yes, no := "y", "n"
	if k, ok := m.bindings.First(input.ActionConfirmYes); ok {
		yes = k.String()
	}
	if k, ok := m.bindings.First(input.ActionConfirmNo); ok {
		no = k.String()
	}
	data.Hint = fmt.Sprintf("%s (%s/%s)?", m.question, yes, no)
	return data
}

func (m *Confirm) HandleEvent(cmd input.Command, _ *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	switch {
	case cmd.Action == input.ActionConfirmYes:
		return process.WithExit(m.onYes)
	case isKeyPress(cmd):
		return process.WithState(process.StateList)
	}
	return process.Continue()
}
