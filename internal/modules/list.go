package modules

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// List is the main editor over the instruction list.
type List struct {
	process.Base
	sizeGuard

	bindings       *input.KeyBindings
	clipboard      clipboard.Clipboard
	autoSelectNext bool

	left   int
	status string
}

// NewList creates the list module.
func NewList(bindings *input.KeyBindings, clip clipboard.Clipboard, opts Options) *List {
	return &List{
		sizeGuard:      newSizeGuard(opts),
		bindings:       bindings,
		clipboard:      clip,
		autoSelectNext: opts.AutoSelectNext,
	}
}

func (m *List) Context() input.Context { return input.ContextList }

func (m *List) Activate(*todo.List, process.State) process.Outcome {
	m.status = ""
	return process.Continue()
}

func (m *List) BuildView(_ view.Context, list *todo.List) *view.Data {
	heading := title
	if list.IsVisualMode() {
		heading += " (visual)"
	}
	data := view.New(heading)
	cursor := list.Cursor()
	for i, line := range list.Lines() {
		vl := formatLine(line)
		vl.Selected = line.Selected()
		vl.Cursor = i == cursor
		data.AddBody(vl)
	}
	if list.Len() > 0 {
		data.Focus = cursor
	}
	data.Left = m.left

	data.Hint = m.status
	if data.Hint == "" {
		data.Hint = hint(m.bindings, input.ActionHelp, input.ActionRebase, input.ActionAbort)
	}
	return data
}

func (m *List) HandleEvent(cmd input.Command, list *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}
	if isKeyPress(cmd) {
		m.status = ""
	}

	if kind, ok := actionKinds[cmd.Action]; ok {
		list.SetRangeAction(kind)
		if m.autoSelectNext && !list.IsVisualMode() {
			list.MoveCursorDown(1)
		}
		return process.Continue()
	}

	switch cmd.Action {
	case input.ActionAbort:
		return process.WithState(process.StateConfirmAbort)
	case input.ActionForceAbort:
		return process.WithExit(process.ExitAbort)
	case input.ActionRebase:
		return process.WithState(process.StateConfirmRebase)
	case input.ActionForceRebase:
		return process.WithExit(process.ExitGood)
	case input.ActionBreak:
		list.ToggleBreak()
	case input.ActionEditLine:
		if line, ok := list.CursorLine(); ok && line.Action().IsEditable() && !list.IsVisualMode() {
			return process.WithState(process.StateEdit)
		}
		m.status = "Only exec, label, reset and merge lines can be edited"
	case input.ActionInsertLine:
		return process.WithState(process.StateInsert)
	case input.ActionRemoveLine:
		list.RemoveRange()
	case input.ActionMoveSelectionDown:
		list.SwapRangeDown()
	case input.ActionMoveSelectionUp:
		list.SwapRangeUp()
	case input.ActionToggleVisualMode:
		list.ToggleVisualMode()
	case input.ActionUndo:
		if !list.Undo() {
			m.status = "Nothing to undo"
		}
	case input.ActionRedo:
		if !list.Redo() {
			m.status = "Nothing to redo"
		}
	case input.ActionYank:
		return m.yank(list)
	case input.ActionOpenInEditor:
		return process.WithState(process.StateExternalEditor)
	case input.ActionMoveUp:
		list.MoveCursorUp(1)
	case input.ActionMoveDown:
		list.MoveCursorDown(1)
	case input.ActionMoveUpStep:
		list.MoveCursorUp(m.pageSize(0))
	case input.ActionMoveDownStep:
		list.MoveCursorDown(m.pageSize(0))
	case input.ActionMoveHome:
		list.MoveCursorHome()
	case input.ActionMoveEnd:
		list.MoveCursorEnd()
	case input.ActionMoveLeft:
		if m.left > 0 {
			m.left--
		}
	case input.ActionMoveRight:
		m.left++
	case input.ActionHelp:
		return process.WithState(process.StateHelp)
	case input.ActionShowCommit:
		if line, ok := list.CursorLine(); ok && line.Action().IsCommit() {
			return process.WithState(process.StateShowCommit)
		}
	}
	return process.Continue()
}

// yank copies the references of the selected commits, one per line.
func (m *List) yank(list *todo.List) process.Outcome {
	start, end := list.SelectionRange()
	var refs []string
	for i := start; i <= end; i++ {
		if line, ok := list.Line(i); ok && line.Reference() != "" {
			refs = append(refs, line.Reference())
		}
	}
	if len(refs) == 0 {
		return process.Continue()
	}
	if err := m.clipboard.WriteAll(strings.Join(refs, "\n")); err != nil {
		return process.WithError(fmt.Errorf("copy to clipboard: %w", err))
	}
	logger.DebugTagf("clipboard", "Yanked %d references", len(refs))
	m.status = fmt.Sprintf("Copied %d reference(s)", len(refs))
	return process.Continue()
}
