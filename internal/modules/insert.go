package modules

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// insertChoices are the kinds a new line can have, with the key that picks each.
var insertChoices = []struct {
	key    rune
	action todo.Action
}{
	{'e', todo.ActionExec},
	{'p', todo.ActionPick},
	{'l', todo.ActionLabel},
	{'r', todo.ActionReset},
	{'m', todo.ActionMerge},
}

// Insert adds a new line after the cursor: first the kind is chosen, then its text.
type Insert struct {
	process.Base
	sizeGuard

	clipboard clipboard.Clipboard
	editor    lineEditor
	action    todo.Action
	chosen    bool
	status    string
}

// NewInsert creates the insert module.
func NewInsert(clip clipboard.Clipboard, opts Options) *Insert {
	return &Insert{sizeGuard: newSizeGuard(opts), clipboard: clip}
}

func (m *Insert) Context() input.Context { return input.ContextText }

func (m *Insert) Activate(_ *todo.List, previous process.State) process.Outcome {
	if resumed(previous) {
		return process.Continue()
	}
	m.chosen = false
	m.editor.Set("")
	m.status = ""
	return process.Continue()
}

func (m *Insert) BuildView(_ view.Context, _ *todo.List) *view.Data {
	data := view.New("Insert line")
	if !m.chosen {
		for _, c := range insertChoices {
			data.AddBody(view.NewLine(
				view.Segment{Text: fmt.Sprintf("%c) ", c.key), Style: "Key"},
				view.Segment{Text: c.action.String(), Style: "action." + c.action.String()},
			))
		}
		data.AddBody(view.NewLine(
			view.Segment{Text: "q) ", Style: "Key"},
			view.Segment{Text: "cancel", Style: "Default"},
		))
		data.Hint = "Choose the kind of line to insert"
		return data
	}

	prompt := m.action.String() + " "
	data.AddBody(view.NewLine(
		view.Segment{Text: prompt, Style: "action." + m.action.String()},
		view.Segment{Text: m.editor.Text(), Style: "Default"},
	))
	data.TextCursor = &view.Position{Row: 0, Col: len(prompt) + m.editor.Column()}
	data.Hint = m.status
	if data.Hint == "" {
		data.Hint = "Enter: insert, Esc: cancel"
	}
	return data
}

func (m *Insert) HandleEvent(cmd input.Command, list *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	if !isKeyPress(cmd) {
		return process.Continue()
	}
	key := cmd.Event.Key

	if !m.chosen {
		if key.Code == input.CodeEsc || (key.Code == input.CodeChar && key.Rune == 'q') {
			return process.WithState(process.StateList)
		}
		for _, c := range insertChoices {
			if key.Code == input.CodeChar && key.Rune == c.key {
				m.action = c.action
				m.chosen = true
			}
		}
		return process.Continue()
	}

	switch key.Code {
	case input.CodeEnter:
		text := strings.TrimSpace(m.editor.Text())
		if text == "" {
			return process.WithState(process.StateList)
		}
		line, err := m.newLine(text)
		if err != nil {
			m.status = err.Error()
			return process.Continue()
		}
		list.InsertAfterCursor(line)
		return process.WithState(process.StateList)
	case input.CodeEsc:
		return process.WithState(process.StateList)
	}
	m.status = ""
	m.editor.HandleKey(key, m.clipboard.ReadAll)
	return process.Continue()
}

func (m *Insert) newLine(text string) (todo.Line, error) {
	if m.action.IsEditable() {
		return todo.NewEditableLine(m.action, text), nil
	}
	// A commit line is entered as "<hash> <subject>".
	line, err := todo.ParseLine(m.action.String() + " " + text)
	if err != nil {
		return todo.Line{}, err
	}
	return todo.NewLine(line.Action(), line.Reference(), line.Content()), nil
}
