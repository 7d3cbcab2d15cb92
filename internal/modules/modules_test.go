package modules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/config"
	"github.com/bethropolis/tide-rebase/internal/git"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

const sampleTodo = `pick aaa111 First commit
pick bbb222 Second commit
exec make test
pick ccc333 Third commit
`

var testOpts = Options{MinWidth: 40, MinHeight: 6}

func newDispatcher(t *testing.T) *input.Dispatcher {
	t.Helper()
	kb, err := input.NewKeyBindings(config.DefaultKeyBindings().Map())
	if err != nil {
		t.Fatalf("default key bindings: %v", err)
	}
	return input.NewDispatcher(kb)
}

func loadList(t *testing.T, content string) *todo.List {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := todo.Load(path, "#", 100)
	if err != nil {
		t.Fatal(err)
	}
	return list
}

func readList(t *testing.T, list *todo.List) string {
	t.Helper()
	data, err := os.ReadFile(list.Path())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func char(r rune) input.Event { return input.KeyEvent(input.Char(r, input.ModNone)) }

func special(c input.Code) input.Event { return input.KeyEvent(input.Special(c, input.ModNone)) }

func send(d *input.Dispatcher, m process.Module, list *todo.List, ev input.Event) process.Outcome {
	return m.HandleEvent(d.Resolve(m.Context(), ev), list)
}

func typeText(d *input.Dispatcher, m process.Module, list *todo.List, text string) {
	for _, r := range text {
		send(d, m, list, char(r))
	}
}

func wantState(t *testing.T, o process.Outcome, want process.State) {
	t.Helper()
	got, ok := o.NextState()
	if !ok || got != want {
		t.Errorf("outcome state = %v (set %v), want %v", got, ok, want)
	}
}

func wantExit(t *testing.T, o process.Outcome, want process.ExitStatus) {
	t.Helper()
	if o.Exit == nil || *o.Exit != want {
		t.Errorf("outcome exit = %v, want %v", o.Exit, want)
	}
}

func actions(list *todo.List) []todo.Action {
	out := make([]todo.Action, 0, list.Len())
	for _, l := range list.Lines() {
		out = append(out, l.Action())
	}
	return out
}

func TestListTransitions(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	tests := []struct {
		name string
		ev   input.Event
		want process.State
	}{
		{"abort asks", char('q'), process.StateConfirmAbort},
		{"rebase asks", char('w'), process.StateConfirmRebase},
		{"help", char('?'), process.StateHelp},
		{"insert", char('I'), process.StateInsert},
		{"external editor", char('!'), process.StateExternalEditor},
		{"show commit", char('c'), process.StateShowCommit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantState(t, send(d, m, list, tt.ev), tt.want)
		})
	}

	wantExit(t, send(d, m, list, char('Q')), process.ExitAbort)
	wantExit(t, send(d, m, list, char('W')), process.ExitGood)
	wantExit(t, send(d, m, list, input.KeyEvent(input.Char('c', input.ModCtrl))), process.ExitKill)
}

func TestListVisualDropIsOneUndoStep(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	send(d, m, list, char('v'))
	send(d, m, list, special(input.CodeDown))
	send(d, m, list, special(input.CodeDown))
	send(d, m, list, special(input.CodeDown))
	send(d, m, list, char('d'))

	want := []todo.Action{todo.ActionDrop, todo.ActionDrop, todo.ActionExec, todo.ActionDrop}
	if got := actions(list); !equalActions(got, want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	if list.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", list.UndoDepth())
	}

	send(d, m, list, input.KeyEvent(input.Char('z', input.ModCtrl)))
	want = []todo.Action{todo.ActionPick, todo.ActionPick, todo.ActionExec, todo.ActionPick}
	if got := actions(list); !equalActions(got, want) {
		t.Errorf("after undo actions = %v, want %v", got, want)
	}
}

func equalActions(a, b []todo.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListAutoSelectNext(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	opts := testOpts
	opts.AutoSelectNext = true
	m := NewList(d.Bindings(), &clipboard.Memory{}, opts)

	send(d, m, list, char('s'))
	if list.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", list.Cursor())
	}
	if line, _ := list.Line(0); line.Action() != todo.ActionSquash {
		t.Errorf("line 0 = %v, want squash", line.Action())
	}
}

func TestListMoveSelection(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	send(d, m, list, char('j'))
	if line, _ := list.Line(1); line.Reference() != "aaa111" {
		t.Errorf("line 1 = %q, want aaa111", line.Reference())
	}
	if list.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", list.Cursor())
	}
	send(d, m, list, char('k'))
	if line, _ := list.Line(0); line.Reference() != "aaa111" {
		t.Errorf("line 0 = %q, want aaa111", line.Reference())
	}
}

func TestListEditOnlyEditableLines(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	if o := send(d, m, list, char('E')); !o.IsEmpty() {
		t.Errorf("edit on a pick line = %+v, want no transition", o)
	}
	if data := m.BuildView(view.Context{Width: 80, Height: 24}, list); !strings.Contains(data.Hint, "can be edited") {
		t.Errorf("Hint = %q, want an explanation", data.Hint)
	}

	list.SetCursor(2)
	wantState(t, send(d, m, list, char('E')), process.StateEdit)
}

func TestListYank(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	clip := &clipboard.Memory{}
	m := NewList(d.Bindings(), clip, testOpts)

	send(d, m, list, char('v'))
	send(d, m, list, special(input.CodeEnd))
	send(d, m, list, char('Y'))

	got, _ := clip.ReadAll()
	if got != "aaa111\nbbb222\nccc333" {
		t.Errorf("clipboard = %q", got)
	}
}

func TestListTooSmall(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	o := send(d, m, list, input.ResizeEvent(20, 3))
	wantState(t, o, process.StateWindowSizeError)
	if !o.Reprocess {
		t.Error("Reprocess = false, want the resize forwarded")
	}
	if o := send(d, m, list, input.ResizeEvent(80, 24)); !o.IsEmpty() {
		t.Errorf("big enough resize = %+v, want nothing", o)
	}
}

func TestListView(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewList(d.Bindings(), &clipboard.Memory{}, testOpts)

	list.SetCursor(1)
	list.ToggleVisualMode()
	list.MoveCursorDown(1)
	data := m.BuildView(view.Context{Width: 80, Height: 24}, list)

	if !strings.Contains(data.Title, "visual") {
		t.Errorf("Title = %q, want visual marker", data.Title)
	}
	if len(data.Body) != 4 || data.Focus != 2 {
		t.Fatalf("len(Body) = %d, Focus = %d", len(data.Body), data.Focus)
	}
	if got := data.Body[0].String(); got != "pick   aaa111 First commit" {
		t.Errorf("Body[0] = %q", got)
	}
	if got := data.Body[2].String(); got != "exec   make test" {
		t.Errorf("Body[2] = %q", got)
	}
	if data.Body[0].Selected || !data.Body[1].Selected || !data.Body[2].Selected || !data.Body[2].Cursor {
		t.Errorf("selection flags wrong: %+v", data.Body)
	}
}

type fakeLoader struct {
	commit *git.Commit
	diff   string
	err    error
	loads  int
}

func (f *fakeLoader) LoadCommit(_ context.Context, ref string) (*git.Commit, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	c := *f.commit
	c.Hash = ref
	return &c, nil
}

func (f *fakeLoader) Diff(context.Context, string) (string, error) { return f.diff, f.err }

func newFakeLoader() *fakeLoader {
	return &fakeLoader{
		commit: &git.Commit{
			Author:     "Ada <ada@example.com>",
			AuthorDate: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Subject:    "First commit",
			Files:      []git.FileStat{{Path: "main.go", Added: 2, Deleted: 1}},
		},
		diff: "diff --git a/main.go b/main.go\n@@ -1 +1,2 @@\n-old\n+new\n+more\n",
	}
}

func TestShowCommit(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	loader := newFakeLoader()
	m := NewShowCommit(context.Background(), loader, d.Bindings(), testOpts)

	if o := m.Activate(list, process.StateList); !o.IsEmpty() {
		t.Fatalf("Activate = %+v", o)
	}
	data := m.BuildView(view.Context{Width: 80, Height: 24}, list)
	if !strings.Contains(data.Title, "aaa111") {
		t.Errorf("Title = %q", data.Title)
	}
	if got := data.Body[0].String(); !strings.Contains(got, "aaa111") {
		t.Errorf("Body[0] = %q", got)
	}

	send(d, m, list, char('d'))
	data = m.BuildView(view.Context{Width: 80, Height: 24}, list)
	if len(data.Body) != 5 || data.Body[3].Segments[0].Style != "diff.add" {
		t.Errorf("diff body = %+v", data.Body)
	}

	wantState(t, send(d, m, list, char('?')), process.StateHelp)
	m.Activate(list, process.StateHelp)
	if loader.loads != 1 {
		t.Errorf("loads = %d, want the commit kept when returning from help", loader.loads)
	}
	wantState(t, send(d, m, list, char('x')), process.StateList)
}

func TestShowCommitErrors(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	loader := newFakeLoader()
	m := NewShowCommit(context.Background(), loader, d.Bindings(), testOpts)

	list.SetCursor(2)
	o := m.Activate(list, process.StateList)
	if o.Err == nil {
		t.Error("Activate on exec line: want error")
	}
	wantState(t, o, process.StateList)

	list.SetCursor(0)
	loader.err = errors.New("bad object")
	o = m.Activate(list, process.StateList)
	if o.Err == nil || !strings.Contains(o.Err.Error(), "bad object") {
		t.Errorf("Activate error = %v", o.Err)
	}
}

type fakeResolver struct{ args []string }

func (f fakeResolver) Editor(context.Context, string) []string { return f.args }

func TestExternalEditorReload(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewExternalEditor(context.Background(), fakeResolver{[]string{"code", "--wait"}}, testOpts)

	o := m.Activate(list, process.StateList)
	if o.Command == nil || o.Command.Name != "code" || len(o.Command.Args) != 2 || o.Command.Args[1] != list.Path() {
		t.Fatalf("Activate command = %+v", o.Command)
	}

	if err := os.WriteFile(list.Path(), []byte("drop ccc333 Third commit\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	wantState(t, send(d, m, list, input.CommandEvent(nil)), process.StateList)
	if list.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after reload", list.Len())
	}
}

func TestExternalEditorEmptyResultRestore(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewExternalEditor(context.Background(), fakeResolver{[]string{"vi"}}, testOpts)
	m.Activate(list, process.StateList)

	if err := os.WriteFile(list.Path(), []byte("# all gone\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if o := send(d, m, list, input.CommandEvent(nil)); !o.IsEmpty() {
		t.Fatalf("empty reload = %+v, want to stay for a choice", o)
	}

	o := send(d, m, list, char('2'))
	if o.Command == nil || o.Command.Name != "vi" {
		t.Errorf("edit again = %+v, want the editor command", o)
	}
	send(d, m, list, input.CommandEvent(nil))

	wantState(t, send(d, m, list, char('3')), process.StateList)
	if list.Len() != 4 {
		t.Errorf("Len() = %d, want 4 after restore", list.Len())
	}
	if readList(t, list) != sampleTodo {
		t.Error("file not restored")
	}
}

func TestExternalEditorFailure(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewExternalEditor(context.Background(), fakeResolver{[]string{"vi"}}, testOpts)
	m.Activate(list, process.StateList)

	send(d, m, list, input.CommandEvent(errors.New("exit status 127")))
	data := m.BuildView(view.Context{Width: 80, Height: 24}, list)
	if !strings.Contains(data.Body[0].String(), "exit status 127") {
		t.Errorf("Body[0] = %q", data.Body[0].String())
	}
	wantExit(t, send(d, m, list, char('1')), process.ExitAbort)
}

func TestEdit(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	clip := &clipboard.Memory{}
	m := NewEdit(clip, testOpts)

	list.SetCursor(2)
	if o := m.Activate(list, process.StateList); !o.IsEmpty() {
		t.Fatalf("Activate = %+v", o)
	}
	send(d, m, list, special(input.CodeBackspace))
	send(d, m, list, special(input.CodeBackspace))
	send(d, m, list, special(input.CodeBackspace))
	send(d, m, list, special(input.CodeBackspace))
	typeText(d, m, list, "lint")
	_ = clip.WriteAll(" && make\nignored")
	send(d, m, list, input.KeyEvent(input.Char('v', input.ModCtrl)))

	data := m.BuildView(view.Context{Width: 80, Height: 24}, list)
	if data.TextCursor == nil || data.TextCursor.Col != len("exec make lint && make") {
		t.Errorf("TextCursor = %+v", data.TextCursor)
	}

	wantState(t, send(d, m, list, special(input.CodeEnter)), process.StateList)
	if line, _ := list.Line(2); line.Content() != "make lint && make" {
		t.Errorf("content = %q", line.Content())
	}
}

func TestEditCancelAndReject(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewEdit(&clipboard.Memory{}, testOpts)

	o := m.Activate(list, process.StateList)
	if o.Err == nil {
		t.Error("Activate on pick line: want error")
	}

	list.SetCursor(2)
	m.Activate(list, process.StateList)
	typeText(d, m, list, "xyz")
	wantState(t, send(d, m, list, special(input.CodeEsc)), process.StateList)
	if line, _ := list.Line(2); line.Content() != "make test" {
		t.Errorf("content = %q, want unchanged", line.Content())
	}
	if list.UndoDepth() != 0 {
		t.Errorf("UndoDepth() = %d, want 0", list.UndoDepth())
	}
}

func TestEditRejectsBlankText(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, "label onto\npick aaa111 First commit\n")
	m := NewEdit(&clipboard.Memory{}, testOpts)
	m.Activate(list, process.StateList)

	for range "onto" {
		send(d, m, list, special(input.CodeBackspace))
	}
	typeText(d, m, list, "   ")
	if o := send(d, m, list, special(input.CodeEnter)); !o.IsEmpty() {
		t.Fatalf("Enter on blank text = %+v, want to stay", o)
	}
	if got := m.BuildView(view.Context{Width: 80, Height: 24}, list).Hint; got != "The text must not be empty" {
		t.Errorf("Hint = %q", got)
	}
	if line, _ := list.Line(0); line.Reference() != "onto" {
		t.Errorf("reference = %q, want onto", line.Reference())
	}
	if list.UndoDepth() != 0 {
		t.Errorf("UndoDepth() = %d, want 0", list.UndoDepth())
	}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name   string
		choice rune
		text   string
		want   string
	}{
		{"exec", 'e', "go vet ./...", "exec go vet ./..."},
		{"label", 'l', "onto", "label onto"},
		{"pick", 'p', "ddd444 Fourth", "pick ddd444 Fourth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDispatcher(t)
			list := loadList(t, sampleTodo)
			m := NewInsert(&clipboard.Memory{}, testOpts)
			m.Activate(list, process.StateList)

			send(d, m, list, char(tt.choice))
			typeText(d, m, list, tt.text)
			wantState(t, send(d, m, list, special(input.CodeEnter)), process.StateList)

			line, _ := list.Line(1)
			if line.String() != tt.want {
				t.Errorf("inserted %q, want %q", line.String(), tt.want)
			}
			if list.Cursor() != 1 || list.Len() != 5 {
				t.Errorf("Cursor() = %d, Len() = %d", list.Cursor(), list.Len())
			}
		})
	}
}

func TestInsertCancel(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewInsert(&clipboard.Memory{}, testOpts)
	m.Activate(list, process.StateList)

	wantState(t, send(d, m, list, char('q')), process.StateList)
	if list.Len() != 4 {
		t.Errorf("Len() = %d, want 4", list.Len())
	}
}

func TestHelp(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	contextOf := func(s process.State) input.Context {
		if s == process.StateShowCommit {
			return input.ContextShowCommit
		}
		return input.ContextList
	}
	m := NewHelp(d.Bindings(), contextOf, testOpts)

	m.Activate(list, process.StateShowCommit)
	data := m.BuildView(view.Context{Width: 80, Height: 40}, list)
	var text []string
	for _, l := range data.Body {
		text = append(text, l.String())
	}
	joined := strings.Join(text, "\n")
	if !strings.Contains(joined, "Toggle the full diff") || strings.Contains(joined, "Set selected commits to drop") {
		t.Errorf("help for show-commit =\n%s", joined)
	}

	send(d, m, list, special(input.CodeDown))
	wantState(t, send(d, m, list, char('x')), process.StateShowCommit)
}

func TestErrorModule(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewError(testOpts)

	m.SetError(errors.New("first line\nsecond line"), process.StateShowCommit)
	data := m.BuildView(view.Context{Width: 80, Height: 24}, list)
	if len(data.Body) != 2 {
		t.Errorf("len(Body) = %d, want 2", len(data.Body))
	}
	if o := send(d, m, list, input.ResizeEvent(100, 30)); !o.IsEmpty() {
		t.Errorf("resize = %+v, want nothing", o)
	}
	wantState(t, send(d, m, list, char(' ')), process.StateShowCommit)
}

func TestConfirm(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)

	wantExit(t, send(d, NewConfirmAbort(d.Bindings(), testOpts), list, char('y')), process.ExitAbort)
	wantExit(t, send(d, NewConfirmRebase(d.Bindings(), testOpts), list, char('y')), process.ExitGood)
	wantState(t, send(d, NewConfirmRebase(d.Bindings(), testOpts), list, char('n')), process.StateList)
	wantState(t, send(d, NewConfirmRebase(d.Bindings(), testOpts), list, char('x')), process.StateList)
}

func TestWindowSize(t *testing.T) {
	d := newDispatcher(t)
	list := loadList(t, sampleTodo)
	m := NewWindowSize(testOpts)

	m.Activate(list, process.StateHelp)
	if o := send(d, m, list, input.ResizeEvent(30, 4)); !o.IsEmpty() {
		t.Errorf("still small = %+v", o)
	}
	if o := send(d, m, list, char('q')); !o.IsEmpty() {
		t.Errorf("key press = %+v, want ignored", o)
	}
	o := send(d, m, list, input.ResizeEvent(80, 24))
	wantState(t, o, process.StateHelp)
	if !o.Reprocess {
		t.Error("Reprocess = false, want the resize forwarded")
	}
}
