package modules

import (
	"errors"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Edit changes the argument of the exec, label, reset or merge line under the cursor.
type Edit struct {
	process.Base
	sizeGuard

	clipboard clipboard.Clipboard
	editor    lineEditor
	action    todo.Action
	status    string
}

// NewEdit creates the edit module.
func NewEdit(clip clipboard.Clipboard, opts Options) *Edit {
	return &Edit{sizeGuard: newSizeGuard(opts), clipboard: clip}
}

func (m *Edit) Context() input.Context { return input.ContextText }

func (m *Edit) Activate(list *todo.List, previous process.State) process.Outcome {
	if resumed(previous) {
		return process.Continue()
	}
	line, ok := list.CursorLine()
	if !ok || !line.Action().IsEditable() {
		return process.WithError(errors.New("only exec, label, reset and merge lines can be edited")).State(process.StateList)
	}
	m.action = line.Action()
	m.editor.Set(line.EditableText())
	m.status = ""
	return process.Continue()
}

func (m *Edit) BuildView(_ view.Context, _ *todo.List) *view.Data {
	data := view.New("Edit " + m.action.String())
	prompt := m.action.String() + " "
	data.AddBody(view.NewLine(
		view.Segment{Text: prompt, Style: "action." + m.action.String()},
		view.Segment{Text: m.editor.Text(), Style: "Default"},
	))
	data.TextCursor = &view.Position{Row: 0, Col: len(prompt) + m.editor.Column()}
	data.Hint = m.status
	if data.Hint == "" {
		data.Hint = "Enter: save, Esc: cancel"
	}
	return data
}

func (m *Edit) HandleEvent(cmd input.Command, list *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	if !isKeyPress(cmd) {
		return process.Continue()
	}

	switch cmd.Event.Key.Code {
	case input.CodeEnter:
		if strings.TrimSpace(m.editor.Text()) == "" {
			m.status = "The text must not be empty"
			return process.Continue()
		}
		list.EditContent(m.editor.Text())
		return process.WithState(process.StateList)
	case input.CodeEsc:
		return process.WithState(process.StateList)
	}
	m.status = ""
	m.editor.HandleKey(cmd.Event.Key, m.clipboard.ReadAll)
	return process.Continue()
}
