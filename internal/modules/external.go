package modules

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// EditorResolver returns the editor command line. *git.Client implements it.
type EditorResolver interface {
	Editor(ctx context.Context, override string) []string
}

// ExternalEditor hands the todo file to the user's editor and reloads it afterwards.
type ExternalEditor struct {
	process.Base
	sizeGuard

	ctx      context.Context
	resolver EditorResolver
	override string

	command  []string
	saved    string
	reloaded bool
	failure  error
}

// NewExternalEditor creates the external editor module.
func NewExternalEditor(ctx context.Context, resolver EditorResolver, opts Options) *ExternalEditor {
	return &ExternalEditor{sizeGuard: newSizeGuard(opts), ctx: ctx, resolver: resolver, override: opts.Editor}
}

func (m *ExternalEditor) Context() input.Context { return input.ContextText }

func (m *ExternalEditor) Activate(list *todo.List, previous process.State) process.Outcome {
	if previous == process.StateWindowSizeError && m.command != nil {
		return process.Continue()
	}
	m.failure = nil
	m.reloaded = false
	m.saved = list.Text()
	if err := list.Write(); err != nil {
		return process.WithError(err).State(process.StateList)
	}
	m.command = m.resolver.Editor(m.ctx, m.override)
	if len(m.command) == 0 {
		m.command = []string{"vi"}
	}
	return m.launch(list)
}

func (m *ExternalEditor) launch(list *todo.List) process.Outcome {
	args := append(append([]string{}, m.command[1:]...), list.Path())
	return process.WithCommand(m.command[0], args...)
}

func (m *ExternalEditor) BuildView(_ view.Context, _ *todo.List) *view.Data {
	data := view.New(title)
	if m.failure == nil {
		data.AddBody(view.Text("Editing the todo file in an external editor...", "Default"))
		return data
	}
	data.AddBody(
		view.Text(m.failure.Error(), "Error"),
		view.Line{},
		view.Text("1) Abort the rebase", "Default"),
		view.Text("2) Edit the file again", "Default"),
		view.Text("3) Undo the changes and return to the list", "Default"),
	)
	data.Hint = "Choose 1, 2 or 3"
	return data
}

func (m *ExternalEditor) HandleEvent(cmd input.Command, list *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}

	switch cmd.Action {
	case input.ActionCommandFailed:
		m.failure = fmt.Errorf("the editor failed: %w", cmd.Event.Err)
		return process.Continue()
	case input.ActionCommandSucceeded:
		return m.reload(list)
	}

	if m.failure == nil || !isKeyPress(cmd) || cmd.Event.Key.Code != input.CodeChar {
		return process.Continue()
	}
	switch cmd.Event.Key.Rune {
	case '1':
		return process.WithExit(process.ExitAbort)
	case '2':
		m.failure = nil
		return m.launch(list)
	case '3':
		if err := m.restore(list); err != nil {
			return process.WithError(err).State(process.StateList)
		}
		return process.WithState(process.StateList)
	}
	return process.Continue()
}

func (m *ExternalEditor) reload(list *todo.List) process.Outcome {
	if err := list.Reload(); err != nil {
		m.failure = err
		return process.Continue()
	}
	m.reloaded = true
	if list.IsEmpty() {
		m.failure = errors.New("the todo file is empty")
		return process.Continue()
	}
	logger.Infof("Reloaded %d instructions after external edit", list.Len())
	return process.WithState(process.StateList)
}

// restore puts back the list, and the file, as they were before the hand-off. Each
// reload recorded its own undo step, so the saved text is reloaded rather than undone.
func (m *ExternalEditor) restore(list *todo.List) error {
	if err := os.WriteFile(list.Path(), []byte(m.saved), 0o644); err != nil {
		return fmt.Errorf("%w: %w", todo.ErrWrite, err)
	}
	if !m.reloaded {
		return nil
	}
	m.reloaded = false
	return list.Reload()
}
