package process

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// maxChain bounds how many outcomes one input may chain through.
const maxChain = 64

// Terminal is the render and input boundary.
type Terminal interface {
	Render(data *view.Data)
	Size() (width, height int)
	// PollEvent blocks for the next raw event. It returns nil once the terminal is
	// closed.
	PollEvent() tcell.Event
}

// CommandRunner runs an external program with the terminal handed over to it. The
// terminal must be restored before Run returns, whatever the result.
type CommandRunner interface {
	Run(ctx context.Context, cmd ExternalCommand) error
}

// Process is the editing session: it owns the list, the modules, and the active state.
type Process struct {
	list       *todo.List
	registry   *Registry
	dispatcher *input.Dispatcher
	terminal   Terminal
	runner     CommandRunner

	state  State
	width  int
	height int
}

// New creates a session over list that starts in StateList.
func New(list *todo.List, registry *Registry, dispatcher *input.Dispatcher, terminal Terminal, runner CommandRunner) *Process {
	return &Process{
		list:       list,
		registry:   registry,
		dispatcher: dispatcher,
		terminal:   terminal,
		runner:     runner,
		state:      StateList,
	}
}

// State returns the active state.
func (p *Process) State() State { return p.state }

// Run drives the session until a module requests an exit. The list is written back only
// on ExitGood; a write failure is returned as the error with ExitFileWriteError. Any other
// ending leaves the file as it was loaded, even if a module wrote it in the meantime.
func (p *Process) Run(ctx context.Context) (ExitStatus, error) {
	status, err := p.loop(ctx)
	if err != nil {
		logger.Errorf("Session ended in %s: %v", p.state, err)
		return status, errors.Join(err, p.list.Discard())
	}
	logger.Infof("Session ended with status %s in state %s", status, p.state)

	if !status.Persists() {
		return status, p.list.Discard()
	}
	if err := p.list.Write(); err != nil {
		return ExitFileWriteError, err
	}
	return status, nil
}

func (p *Process) loop(ctx context.Context) (ExitStatus, error) {
	module, err := p.registry.Get(p.state)
	if err != nil {
		return ExitStateError, err
	}
	if status, done, err := p.apply(ctx, module.Activate(p.list, p.state), input.Command{}); done {
		return status, err
	}

	p.width, p.height = p.terminal.Size()
	resize := p.dispatcher.Resolve(input.ContextList, input.ResizeEvent(p.width, p.height))
	if status, done, err := p.deliver(ctx, resize); done {
		return status, err
	}

	for {
		if ctx.Err() != nil {
			return ExitKill, nil
		}
		module, err := p.registry.Get(p.state)
		if err != nil {
			return ExitStateError, err
		}
		p.terminal.Render(module.BuildView(view.Context{Width: p.width, Height: p.height}, p.list))

		raw := p.terminal.PollEvent()
		if raw == nil {
			return ExitKill, nil
		}
		cmd, ok := p.dispatcher.Dispatch(module.Context(), raw)
		if !ok {
			continue
		}
		if status, done, err := p.deliver(ctx, cmd); done {
			return status, err
		}
	}
}

// deliver hands cmd to the active module and applies what it returns.
func (p *Process) deliver(ctx context.Context, cmd input.Command) (ExitStatus, bool, error) {
	if cmd.Event.Kind == input.EventResize {
		p.width, p.height = cmd.Event.Width, cmd.Event.Height
	}
	module, err := p.registry.Get(p.state)
	if err != nil {
		return ExitStateError, true, err
	}
	return p.apply(ctx, module.HandleEvent(cmd, p.list), cmd)
}

// rebind resolves cmd's event again in the module's own context. A reprocessed key may
// mean something different to the module it is redelivered to.
func (p *Process) rebind(module Module, cmd input.Command) input.Command {
	if cmd.Event.Kind == input.EventKey || cmd.Event.Kind == input.EventResize {
		return p.dispatcher.Resolve(module.Context(), cmd.Event)
	}
	return cmd
}

// apply carries out an outcome and everything it chains into: error routing, state
// changes, external commands and reprocessing. The bool is true when the session ends.
func (p *Process) apply(ctx context.Context, o Outcome, cmd input.Command) (ExitStatus, bool, error) {
	for i := 0; i < maxChain; i++ {
		if o.Exit != nil {
			return *o.Exit, true, nil
		}

		if o.Err != nil {
			returnState := p.state
			if s, ok := o.NextState(); ok {
				returnState = s
			}
			logger.Warnf("Error in %s: %v", p.state, o.Err)
			sink, err := p.registry.Get(StateError)
			if err != nil {
				return ExitStateError, true, err
			}
			es, ok := sink.(ErrorSink)
			if !ok {
				return ExitStateError, true, fmt.Errorf("module for state %s cannot show errors", StateError)
			}
			es.SetError(o.Err, returnState)
			next, err := p.transition(StateError)
			if err != nil {
				return ExitStateError, true, err
			}
			o = next
			continue
		}

		if s, ok := o.NextState(); ok && s != p.state {
			next, err := p.transition(s)
			if err != nil {
				return ExitStateError, true, err
			}
			if !next.IsEmpty() {
				next.Reprocess = next.Reprocess || o.Reprocess
				next.Command = firstCommand(next.Command, o.Command)
				o = next
				continue
			}
		}

		if o.Command != nil {
			result := p.runCommand(ctx, *o.Command)
			module, err := p.registry.Get(p.state)
			if err != nil {
				return ExitStateError, true, err
			}
			cmd = p.dispatcher.Resolve(module.Context(), input.CommandEvent(result))
			o = module.HandleEvent(cmd, p.list)
			continue
		}

		if o.Reprocess {
			module, err := p.registry.Get(p.state)
			if err != nil {
				return ExitStateError, true, err
			}
			o = module.HandleEvent(p.rebind(module, cmd), p.list)
			continue
		}
		return 0, false, nil
	}
	return ExitStateError, true, fmt.Errorf("outcome chain in state %s did not settle", p.state)
}

func firstCommand(a, b *ExternalCommand) *ExternalCommand {
	if a != nil {
		return a
	}
	return b
}

// transition deactivates the current module and activates the one for s, returning the
// activation outcome.
func (p *Process) transition(s State) (Outcome, error) {
	incoming, err := p.registry.Get(s)
	if err != nil {
		return Outcome{}, err
	}
	outgoing, err := p.registry.Get(p.state)
	if err != nil {
		return Outcome{}, err
	}

	previous := p.state
	outgoing.Deactivate()
	p.state = s
	logger.DebugTagf("process", "State %s -> %s", previous, s)
	return incoming.Activate(p.list, previous), nil
}

func (p *Process) runCommand(ctx context.Context, cmd ExternalCommand) error {
	if p.runner == nil {
		return fmt.Errorf("cannot run %q: no command runner", cmd.Name)
	}
	logger.Infof("Running external command: %s", cmd)
	err := p.runner.Run(ctx, cmd)
	if err != nil {
		logger.Warnf("External command %q failed: %v", cmd.Name, err)
	}
	// The terminal may have been resized while the command ran.
	p.width, p.height = p.terminal.Size()
	return err
}
