package process

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

const sampleTodo = "pick aaa111 One\npick bbb222 Two\n"

// fakeModule records its lifecycle calls and answers events from a script.
type fakeModule struct {
	Base
	ctx         input.Context
	activations []State
	deactivated int
	handled     []input.Command
	onActivate  func(previous State) Outcome
	onEvent     func(cmd input.Command, list *todo.List) Outcome
}

func (m *fakeModule) Activate(_ *todo.List, previous State) Outcome {
	m.activations = append(m.activations, previous)
	if m.onActivate != nil {
		return m.onActivate(previous)
	}
	return Continue()
}

func (m *fakeModule) Deactivate() { m.deactivated++ }

func (m *fakeModule) BuildView(view.Context, *todo.List) *view.Data { return view.New("fake") }

func (m *fakeModule) HandleEvent(cmd input.Command, list *todo.List) Outcome {
	m.handled = append(m.handled, cmd)
	if m.onEvent != nil {
		return m.onEvent(cmd, list)
	}
	return Continue()
}

func (m *fakeModule) Context() input.Context { return m.ctx }

// fakeErrorModule also accepts errors.
type fakeErrorModule struct {
	fakeModule
	err         error
	returnState State
}

func (m *fakeErrorModule) SetError(err error, returnState State) {
	m.err = err
	m.returnState = returnState
}

type fakeTerminal struct {
	events  []tcell.Event
	renders int
}

func (t *fakeTerminal) Render(*view.Data) { t.renders++ }
func (t *fakeTerminal) Size() (int, int)  { return 80, 24 }
func (t *fakeTerminal) PollEvent() tcell.Event {
	if len(t.events) == 0 {
		return nil
	}
	ev := t.events[0]
	t.events = t.events[1:]
	return ev
}

type fakeRunner struct {
	ran []ExternalCommand
	err error
}

func (r *fakeRunner) Run(_ context.Context, cmd ExternalCommand) error {
	r.ran = append(r.ran, cmd)
	return r.err
}

func keyEvent(r rune) tcell.Event {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func newTestList(t *testing.T) *todo.List {
	t.Helper()
	path := filepath.Join(t.TempDir(), "git-rebase-todo")
	if err := os.WriteFile(path, []byte(sampleTodo), 0o644); err != nil {
		t.Fatal(err)
	}
	list, err := todo.Load(path, "#", 10)
	if err != nil {
		t.Fatal(err)
	}
	return list
}

func newTestDispatcher(t *testing.T) *input.Dispatcher {
	t.Helper()
	kb, err := input.NewKeyBindings(map[string][]string{
		"show_commit": {"c"},
		"abort":       {"q"},
		"rebase":      {"w"},
		"action_drop": {"d"},
		"confirm_yes": {"y"},
		"help":        {"?"},
	})
	if err != nil {
		t.Fatal(err)
	}
	return input.NewDispatcher(kb)
}

type harness struct {
	list     *todo.List
	registry *Registry
	term     *fakeTerminal
	runner   *fakeRunner
	modules  map[State]*fakeModule
	errMod   *fakeErrorModule
	process  *Process
}

func newHarness(t *testing.T, events ...tcell.Event) *harness {
	t.Helper()
	h := &harness{
		list:     newTestList(t),
		registry: NewRegistry(),
		term:     &fakeTerminal{events: events},
		runner:   &fakeRunner{},
		modules:  make(map[State]*fakeModule),
		errMod:   &fakeErrorModule{fakeModule: fakeModule{ctx: input.ContextConfirm}},
	}
	for _, s := range []State{StateList, StateShowCommit, StateExternalEditor, StateConfirmRebase} {
		m := &fakeModule{ctx: input.ContextList}
		h.modules[s] = m
		h.registry.Register(s, m)
	}
	h.registry.Register(StateError, h.errMod)
	h.process = New(h.list, h.registry, newTestDispatcher(t), h.term, h.runner)
	return h
}

func (h *harness) readFile(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.list.Path())
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestTransitionSequencing(t *testing.T) {
	h := newHarness(t, keyEvent('c'))
	listMod := h.modules[StateList]
	showMod := h.modules[StateShowCommit]
	listMod.onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionShowCommit {
			return WithState(StateShowCommit)
		}
		return Continue()
	}

	status, err := h.process.Run(context.Background())
	if err != nil || status != ExitKill {
		t.Fatalf("Run() = %v, %v; want kill when input ends", status, err)
	}
	if listMod.deactivated != 1 {
		t.Errorf("list Deactivate calls = %d, want 1", listMod.deactivated)
	}
	if len(showMod.activations) != 1 || showMod.activations[0] != StateList {
		t.Errorf("show-commit activations = %v, want [list]", showMod.activations)
	}
	if showMod.deactivated != 0 {
		t.Errorf("show-commit Deactivate calls = %d, want 0", showMod.deactivated)
	}
	if h.process.State() != StateShowCommit {
		t.Errorf("State() = %v, want show-commit", h.process.State())
	}
}

func TestSyntheticResizeBeforeFirstRender(t *testing.T) {
	h := newHarness(t)
	listMod := h.modules[StateList]
	listMod.onEvent = func(input.Command, *todo.List) Outcome {
		if h.term.renders != 0 {
			t.Error("module saw an event after the first render")
		}
		return Continue()
	}

	if _, err := h.process.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(listMod.handled) != 1 {
		t.Fatalf("handled %d commands, want 1", len(listMod.handled))
	}
	got := listMod.handled[0]
	if got.Action != input.ActionResize || got.Event.Width != 80 || got.Event.Height != 24 {
		t.Errorf("first command = %+v, want resize 80x24", got)
	}
}

func TestExitGoodWritesList(t *testing.T) {
	h := newHarness(t, keyEvent('d'), keyEvent('w'))
	h.modules[StateList].onEvent = func(cmd input.Command, list *todo.List) Outcome {
		switch cmd.Action {
		case input.ActionDrop:
			list.SetRangeAction(todo.ActionDrop)
		case input.ActionRebase:
			return WithExit(ExitGood)
		}
		return Continue()
	}

	status, err := h.process.Run(context.Background())
	if err != nil || status != ExitGood {
		t.Fatalf("Run() = %v, %v; want good", status, err)
	}
	if got, want := h.readFile(t), "drop aaa111 One\npick bbb222 Two\n"; got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
}

func TestAbortNeverWrites(t *testing.T) {
	for _, status := range []ExitStatus{ExitAbort, ExitKill, ExitStateError} {
		t.Run(status.String(), func(t *testing.T) {
			h := newHarness(t, keyEvent('d'), keyEvent('q'))
			h.modules[StateList].onEvent = func(cmd input.Command, list *todo.List) Outcome {
				switch cmd.Action {
				case input.ActionDrop:
					list.SetRangeAction(todo.ActionDrop)
				case input.ActionAbort:
					return WithExit(status)
				}
				return Continue()
			}

			got, err := h.process.Run(context.Background())
			if err != nil || got != status {
				t.Fatalf("Run() = %v, %v; want %v", got, err, status)
			}
			if h.readFile(t) != sampleTodo {
				t.Error("todo file was modified")
			}
		})
	}
}

func TestAbortRestoresHandedOffFile(t *testing.T) {
	for _, status := range []ExitStatus{ExitAbort, ExitKill} {
		t.Run(status.String(), func(t *testing.T) {
			h := newHarness(t, keyEvent('c'))
			h.modules[StateList].onEvent = func(cmd input.Command, list *todo.List) Outcome {
				if cmd.Action == input.ActionShowCommit {
					list.SwapRangeDown()
					return WithState(StateExternalEditor)
				}
				return Continue()
			}
			editor := h.modules[StateExternalEditor]
			editor.onActivate = func(State) Outcome {
				if err := h.list.Write(); err != nil {
					return WithError(err)
				}
				return WithCommand("vi", h.list.Path())
			}
			editor.onEvent = func(cmd input.Command, _ *todo.List) Outcome {
				if cmd.Action == input.ActionCommandSucceeded {
					if got := h.readFile(t); got != "pick bbb222 Two\npick aaa111 One\n" {
						t.Errorf("file during hand-off = %q", got)
					}
					return WithExit(status)
				}
				return Continue()
			}

			got, err := h.process.Run(context.Background())
			if err != nil || got != status {
				t.Fatalf("Run() = %v, %v; want %v", got, err, status)
			}
			if h.readFile(t) != sampleTodo {
				t.Errorf("file = %q, want the original", h.readFile(t))
			}
		})
	}
}

func TestWriteFailure(t *testing.T) {
	h := newHarness(t, keyEvent('w'))
	h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionRebase {
			return WithExit(ExitGood)
		}
		return Continue()
	}
	if err := os.Remove(h.list.Path()); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(h.list.Path(), 0o755); err != nil {
		t.Fatal(err)
	}

	status, err := h.process.Run(context.Background())
	if status != ExitFileWriteError || !errors.Is(err, todo.ErrWrite) {
		t.Errorf("Run() = %v, %v; want file-write-error wrapping ErrWrite", status, err)
	}
}

func TestErrorRoutesToErrorModule(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		outcome Outcome
		want    State
	}{
		{"returns to current", WithError(boom), StateList},
		{"returns to requested", WithError(boom).State(StateShowCommit), StateShowCommit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, keyEvent('c'))
			h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
				if cmd.Action == input.ActionShowCommit {
					return tt.outcome
				}
				return Continue()
			}

			if _, err := h.process.Run(context.Background()); err != nil {
				t.Fatal(err)
			}
			if h.process.State() != StateError {
				t.Errorf("State() = %v, want error", h.process.State())
			}
			if !errors.Is(h.errMod.err, boom) || h.errMod.returnState != tt.want {
				t.Errorf("SetError(%v, %v), want (boom, %v)", h.errMod.err, h.errMod.returnState, tt.want)
			}
			if len(h.errMod.activations) != 1 || h.errMod.activations[0] != StateList {
				t.Errorf("error activations = %v, want [list]", h.errMod.activations)
			}
		})
	}
}

func TestActivationOutcomeRunsCommand(t *testing.T) {
	h := newHarness(t, keyEvent('c'))
	h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionShowCommit {
			return WithState(StateExternalEditor)
		}
		return Continue()
	}
	editor := h.modules[StateExternalEditor]
	editor.onActivate = func(State) Outcome { return WithCommand("vi", "file") }
	editor.onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionCommandSucceeded {
			return WithState(StateList)
		}
		return Continue()
	}

	if _, err := h.process.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(h.runner.ran) != 1 || h.runner.ran[0].String() != "vi file" {
		t.Errorf("ran = %v, want [vi file]", h.runner.ran)
	}
	if len(editor.handled) != 1 || editor.handled[0].Action != input.ActionCommandSucceeded {
		t.Errorf("editor handled %v, want command_succeeded", editor.handled)
	}
	if h.process.State() != StateList {
		t.Errorf("State() = %v, want list", h.process.State())
	}
}

func TestCommandFailureIsReported(t *testing.T) {
	h := newHarness(t, keyEvent('c'))
	h.runner.err = errors.New("exit status 1")
	h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionShowCommit {
			return WithCommand("false")
		}
		if cmd.Action == input.ActionCommandFailed {
			return WithError(cmd.Event.Err)
		}
		return Continue()
	}

	if _, err := h.process.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if h.errMod.err == nil || h.errMod.err.Error() != "exit status 1" {
		t.Errorf("error module got %v, want the command error", h.errMod.err)
	}
}

func TestReprocessRedeliversCommand(t *testing.T) {
	h := newHarness(t, keyEvent('w'))
	h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionRebase {
			return WithState(StateConfirmRebase).WithReprocess()
		}
		return Continue()
	}
	confirm := h.modules[StateConfirmRebase]
	confirm.onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionRebase {
			return WithExit(ExitGood)
		}
		return Continue()
	}

	status, err := h.process.Run(context.Background())
	if err != nil || status != ExitGood {
		t.Fatalf("Run() = %v, %v; want good", status, err)
	}
	if len(confirm.handled) != 1 {
		t.Errorf("confirm handled %d commands, want 1", len(confirm.handled))
	}
}

func TestRunawayChainIsAStateError(t *testing.T) {
	h := newHarness(t)
	h.modules[StateList].onEvent = func(input.Command, *todo.List) Outcome {
		return Continue().WithReprocess()
	}
	status, err := h.process.Run(context.Background())
	if status != ExitStateError || err == nil {
		t.Errorf("Run() = %v, %v; want state-error", status, err)
	}
}

func TestMissingModule(t *testing.T) {
	h := newHarness(t, keyEvent('?'))
	h.modules[StateList].onEvent = func(cmd input.Command, _ *todo.List) Outcome {
		if cmd.Action == input.ActionHelp {
			return WithState(StateHelp)
		}
		return Continue()
	}
	status, err := h.process.Run(context.Background())
	if status != ExitStateError || err == nil {
		t.Errorf("Run() = %v, %v; want state-error", status, err)
	}
	if h.readFile(t) != sampleTodo {
		t.Error("todo file was modified")
	}
}

func TestCancelledContextKills(t *testing.T) {
	h := newHarness(t, keyEvent('d'))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	status, err := h.process.Run(ctx)
	if err != nil || status != ExitKill {
		t.Errorf("Run() = %v, %v; want kill", status, err)
	}
}
