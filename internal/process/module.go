package process

import (
	"fmt"

	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/view"
)

// Module is one modal behavior of the editor. Exactly one module is active at a time.
// The list passed to Activate, BuildView and HandleEvent must not be retained.
type Module interface {
	// Activate is called when the module becomes active, with the state it replaces.
	Activate(list *todo.List, previous State) Outcome
	// Deactivate is called when the module stops being active.
	Deactivate()
	// BuildView describes what to show.
	BuildView(ctx view.Context, list *todo.List) *view.Data
	// HandleEvent reacts to one resolved input.
	HandleEvent(cmd input.Command, list *todo.List) Outcome
	// Context selects the key bindings the module's input is resolved against.
	Context() input.Context
}

// ErrorSink is implemented by the module registered for StateError.
type ErrorSink interface {
	SetError(err error, returnState State)
}

// Base provides no-op Activate and Deactivate for embedding.
type Base struct{}

func (Base) Activate(*todo.List, State) Outcome { return Continue() }

func (Base) Deactivate() {}

// Registry maps each state to the module that implements it.
type Registry struct {
	modules map[State]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[State]Module)}
}

// Register sets the module for s, replacing any earlier one.
func (r *Registry) Register(s State, m Module) {
	r.modules[s] = m
}

// Get returns the module for s.
func (r *Registry) Get(s State) (Module, error) {
	m, ok := r.modules[s]
	if !ok {
		return nil, fmt.Errorf("no module registered for state %s", s)
	}
	return m, nil
}
