// Package modules holds the modal behaviors the process controller switches between.
package modules

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Options are the editor settings modules consult.
type Options struct {
	AutoSelectNext bool
	MinWidth       int
	MinHeight      int
	// Editor overrides git's editor for the external editor hand-off.
	Editor string
}

const title = "Git Interactive Rebase"

// sizeGuard tracks the terminal size and detects when it drops below the minimum.
type sizeGuard struct {
	minWidth  int
	minHeight int
	width     int
	height    int
}

func newSizeGuard(opts Options) sizeGuard {
	return sizeGuard{minWidth: opts.MinWidth, minHeight: opts.MinHeight}
}

func (g *sizeGuard) fits(width, height int) bool {
	return width >= g.minWidth && height >= g.minHeight
}

// common handles what every module reacts to the same way: the kill chord, and a
// resize below the minimum size.
func (g *sizeGuard) common(cmd input.Command) (process.Outcome, bool) {
	switch cmd.Action {
	case input.ActionKill:
		return process.WithExit(process.ExitKill), true
	case input.ActionResize:
		g.width, g.height = cmd.Event.Width, cmd.Event.Height
		if !g.fits(g.width, g.height) {
			return process.WithState(process.StateWindowSizeError).WithReprocess(), true
		}
	}
	return process.Continue(), false
}

// pageSize returns how far a page step moves for a view with the given chrome.
func (g *sizeGuard) pageSize(leading int) int {
	rows := g.height - view.Chrome - leading
	if rows < 2 {
		return 1
	}
	return rows / 2
}

// resumed reports whether a module is coming back from an overlay that did not change
// what it shows.
func resumed(previous process.State) bool {
	return previous == process.StateWindowSizeError || previous == process.StateHelp
}

// isKeyPress reports whether cmd came from the keyboard.
func isKeyPress(cmd input.Command) bool {
	return cmd.Event.Kind == input.EventKey
}

// actionKinds maps list commands to the instruction kind they set.
var actionKinds = map[input.Action]todo.Action{
	input.ActionDrop:   todo.ActionDrop,
	input.ActionEdit:   todo.ActionEdit,
	input.ActionFixup:  todo.ActionFixup,
	input.ActionPick:   todo.ActionPick,
	input.ActionReword: todo.ActionReword,
	input.ActionSquash: todo.ActionSquash,
}

// formatLine renders one instruction as styled segments.
func formatLine(line todo.Line) view.Line {
	action := line.Action()
	segments := []view.Segment{{Text: fmt.Sprintf("%-6s ", action), Style: "action." + action.String()}}

	switch {
	case action == todo.ActionBreak || action == todo.ActionNoop:
	case action.IsCommit():
		if line.Option() != "" {
			segments = append(segments, view.Segment{Text: line.Option() + " ", Style: "action." + action.String()})
		}
		segments = append(segments, view.Segment{Text: line.Reference(), Style: "reference"})
		if line.Content() != "" {
			segments = append(segments, view.Segment{Text: " " + line.Content(), Style: "Default"})
		}
	case action == todo.ActionLabel || action == todo.ActionReset:
		segments = append(segments, view.Segment{Text: line.EditableText(), Style: "reference"})
	default:
		segments = append(segments, view.Segment{Text: line.Content(), Style: "Default"})
	}
	return view.Line{Segments: segments}
}

// hint builds a status bar hint such as "q: abort, ?: help" from the first chord bound
// to each action.
func hint(bindings *input.KeyBindings, actions ...input.Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		if k, ok := bindings.First(a); ok {
			parts = append(parts, fmt.Sprintf("%s: %s", k, strings.ToLower(a.Description())))
		}
	}
	return strings.Join(parts, ", ")
}
