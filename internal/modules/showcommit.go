package modules

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/tide-rebase/internal/git"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// CommitLoader supplies commit details. *git.Client implements it.
type CommitLoader interface {
	LoadCommit(ctx context.Context, ref string) (*git.Commit, error)
	Diff(ctx context.Context, ref string) (string, error)
}

const dateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// ShowCommit displays the commit under the cursor.
type ShowCommit struct {
	process.Base
	sizeGuard

	ctx      context.Context
	loader   CommitLoader
	bindings *input.KeyBindings

	commit   *git.Commit
	diff     []string
	showDiff bool
	top      int
	left     int
}

// NewShowCommit creates the show-commit module. ctx bounds the git calls.
func NewShowCommit(ctx context.Context, loader CommitLoader, bindings *input.KeyBindings, opts Options) *ShowCommit {
	return &ShowCommit{sizeGuard: newSizeGuard(opts), ctx: ctx, loader: loader, bindings: bindings}
}

func (m *ShowCommit) Context() input.Context { return input.ContextShowCommit }

func (m *ShowCommit) Activate(list *todo.List, previous process.State) process.Outcome {
	if resumed(previous) && m.commit != nil {
		return process.Continue()
	}
	m.commit, m.diff, m.showDiff = nil, nil, false
	m.top, m.left = 0, 0

	line, ok := list.CursorLine()
	if !ok || !line.Action().IsCommit() {
		return process.WithError(errors.New("the selected line is not a commit")).State(process.StateList)
	}
	commit, err := m.loader.LoadCommit(m.ctx, line.Reference())
	if err != nil {
		return process.WithError(fmt.Errorf("load commit %s: %w", line.Reference(), err)).State(process.StateList)
	}
	m.commit = commit
	return process.Continue()
}

func (m *ShowCommit) lines() []view.Line {
	if m.commit == nil {
		return nil
	}
	if m.showDiff {
		return m.diffLines()
	}
	return m.overviewLines()
}

func (m *ShowCommit) overviewLines() []view.Line {
	c := m.commit
	field := func(name, value string) view.Line {
		return view.NewLine(
			view.Segment{Text: fmt.Sprintf("%-10s", name), Style: "commit.field"},
			view.Segment{Text: value, Style: "Default"},
		)
	}

	lines := []view.Line{
		field("Commit:", c.Hash),
		field("Author:", c.Author),
		field("Date:", c.AuthorDate.Format(dateLayout)),
	}
	if c.Committed() {
		lines = append(lines,
			field("Committer:", c.Committer),
			field("Committed:", c.CommitterDate.Format(dateLayout)),
		)
	}
	lines = append(lines, view.Line{}, view.Text(c.Subject, "diff.header"))
	if c.Body != "" {
		lines = append(lines, view.Line{})
		for _, ln := range strings.Split(c.Body, "\n") {
			lines = append(lines, view.Text(ln, "Default"))
		}
	}

	lines = append(lines, view.Line{})
	added, deleted := 0, 0
	for _, f := range c.Files {
		added += f.Added
		deleted += f.Deleted
		stat := fmt.Sprintf("+%d -%d", f.Added, f.Deleted)
		if f.Binary {
			stat = "binary"
		}
		lines = append(lines, view.NewLine(
			view.Segment{Text: fmt.Sprintf("%-12s", stat), Style: statStyle(f)},
			view.Segment{Text: f.Path, Style: "Default"},
		))
	}
	lines = append(lines, view.Text(fmt.Sprintf("%d file(s) changed, %d insertion(s)(+), %d deletion(s)(-)", len(c.Files), added, deleted), "Hint"))
	return lines
}

func statStyle(f git.FileStat) string {
	switch {
	case f.Binary:
		return "Hint"
	case f.Deleted > f.Added:
		return "diff.remove"
	default:
		return "diff.add"
	}
}

func (m *ShowCommit) diffLines() []view.Line {
	lines := make([]view.Line, 0, len(m.diff))
	for _, ln := range m.diff {
		lines = append(lines, view.Text(ln, diffStyle(ln)))
	}
	return lines
}

func diffStyle(ln string) string {
	switch {
	case strings.HasPrefix(ln, "diff "), strings.HasPrefix(ln, "index "),
		strings.HasPrefix(ln, "+++"), strings.HasPrefix(ln, "---"):
		return "diff.header"
	case strings.HasPrefix(ln, "@@"):
		return "diff.hunk"
	case strings.HasPrefix(ln, "+"):
		return "diff.add"
	case strings.HasPrefix(ln, "-"):
		return "diff.remove"
	}
	return "Default"
}

func (m *ShowCommit) BuildView(ctx view.Context, _ *todo.List) *view.Data {
	heading := "Commit"
	if m.commit != nil {
		heading = "Commit " + m.commit.Hash
	}
	data := view.New(heading)
	data.AddBody(m.lines()...)

	rows := data.BodyRows(ctx)
	if maxTop := len(data.Body) - rows; m.top > maxTop {
		m.top = maxTop
	}
	if m.top < 0 {
		m.top = 0
	}
	data.Top = m.top
	data.Left = m.left

	data.Hint = hint(m.bindings, input.ActionShowDiff, input.ActionHelp) + ", any other key: back"
	return data
}

func (m *ShowCommit) HandleEvent(cmd input.Command, _ *todo.List) process.Outcome {
	if out, ok := m.common(cmd); ok {
		return out
	}

	switch cmd.Action {
	case input.ActionResize:
	case input.ActionShowDiff:
		if !m.showDiff && m.diff == nil && m.commit != nil {
			patch, err := m.loader.Diff(m.ctx, m.commit.Hash)
			if err != nil {
				return process.WithError(fmt.Errorf("load diff: %w", err))
			}
			m.diff = strings.Split(strings.TrimRight(patch, "\n"), "\n")
		}
		m.showDiff = !m.showDiff
		m.top = 0
	case input.ActionHelp:
		return process.WithState(process.StateHelp)
	case input.ActionMoveUp:
		m.top--
	case input.ActionMoveDown:
		m.top++
	case input.ActionMoveUpStep:
		m.top -= m.pageSize(0)
	case input.ActionMoveDownStep:
		m.top += m.pageSize(0)
	case input.ActionMoveHome:
		m.top = 0
	case input.ActionMoveEnd:
		m.top = len(m.lines())
	case input.ActionMoveLeft:
		if m.left > 0 {
			m.left--
		}
	case input.ActionMoveRight:
		m.left++
	default:
		if isKeyPress(cmd) {
			return process.WithState(process.StateList)
		}
	}
	if m.top < 0 {
		m.top = 0
	}
	return process.Continue()
}
