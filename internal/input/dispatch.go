package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-rebase/internal/logger"
)

// Command is a resolved input: the semantic action plus the event that produced it.
// Text-entry modules read Event directly when Action is ActionNone.
type Command struct {
	Action Action
	Event  Event
}

// Dispatcher turns raw terminal events into commands for the active context.
type Dispatcher struct {
	bindings *KeyBindings
}

// NewDispatcher creates a dispatcher over kb.
func NewDispatcher(kb *KeyBindings) *Dispatcher {
	return &Dispatcher{bindings: kb}
}

// Bindings returns the bindings the dispatcher resolves against.
func (d *Dispatcher) Bindings() *KeyBindings {
	return d.bindings
}

// Dispatch converts raw and resolves it in ctx. It reports false for events that carry
// no input meaning.
func (d *Dispatcher) Dispatch(ctx Context, raw tcell.Event) (Command, bool) {
	ev, ok := FromTcell(raw)
	if !ok {
		return Command{}, false
	}
	return d.Resolve(ctx, ev), true
}

// Resolve wraps an already converted event.
func (d *Dispatcher) Resolve(ctx Context, ev Event) Command {
	cmd := Command{Action: d.bindings.Resolve(ctx, ev), Event: ev}
	if ev.Kind == EventKey {
		logger.DebugTagf("input", "%s key %s -> %s", ctx, ev.Key, cmd.Action)
	}
	return cmd
}
