package process

import "strings"

// ExternalCommand is a program the controller runs with the terminal suspended.
type ExternalCommand struct {
	Name string
	Args []string
}

func (c ExternalCommand) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Outcome is what a module asks the controller to do next. Every part is optional.
type Outcome struct {
	state   *State
	Err     error
	Exit    *ExitStatus
	Command *ExternalCommand
	// Reprocess delivers the current command again, to the module active after this
	// outcome is applied, without waiting for input.
	Reprocess bool
}

// Continue is the empty outcome: stay in the current state and wait for input.
func Continue() Outcome { return Outcome{} }

// WithState requests a transition to s.
func WithState(s State) Outcome { return Outcome{}.State(s) }

// WithError surfaces err in the error module.
func WithError(err error) Outcome { return Outcome{Err: err} }

// WithExit ends the session with status.
func WithExit(status ExitStatus) Outcome { return Outcome{Exit: &status} }

// WithCommand runs cmd and feeds the result back as an event.
func WithCommand(name string, args ...string) Outcome {
	return Outcome{Command: &ExternalCommand{Name: name, Args: args}}
}

// State returns a copy of o that also requests a transition to s. Combined with an
// error, s is where the error module returns to.
func (o Outcome) State(s State) Outcome {
	o.state = &s
	return o
}

// WithReprocess returns a copy of o that redelivers the current command.
func (o Outcome) WithReprocess() Outcome {
	o.Reprocess = true
	return o
}

// NextState returns the requested state, if any.
func (o Outcome) NextState() (State, bool) {
	if o.state == nil {
		return 0, false
	}
	return *o.state, true
}

// IsEmpty reports whether the outcome asks for nothing.
func (o Outcome) IsEmpty() bool {
	return o.state == nil && o.Err == nil && o.Exit == nil && o.Command == nil && !o.Reprocess
}
