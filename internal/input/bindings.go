package input

import (
	"fmt"
	"sort"
	"strings"
)

// killKey is always bound and cannot be reassigned.
var killKey = Char('c', ModCtrl)

// Conflict describes one chord bound to two actions in the same context.
type Conflict struct {
	Context Context
	Key     Key
	First   Action
	Second  Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s is bound to both %s and %s in the %s view", c.Key, c.First, c.Second, c.Context)
}

// ConflictError is returned when a configuration binds one chord ambiguously.
type ConflictError struct {
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	msgs := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		msgs[i] = c.String()
	}
	return "conflicting key bindings: " + strings.Join(msgs, "; ")
}

// KeyBindings maps each action to the chords that trigger it.
type KeyBindings struct {
	keys map[Action][]Key
}

// NewKeyBindings parses binding strings keyed by action name (e.g. "move_up") and
// rejects chords that would be ambiguous within a context.
func NewKeyBindings(specs map[string][]string) (*KeyBindings, error) {
	kb := &KeyBindings{keys: map[Action][]Key{ActionKill: {killKey}}}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		action, ok := ActionByName(name)
		if !ok || action == ActionKill || action >= ActionResize {
			return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidBinding, name)
		}
		keys, err := ParseBindings(specs[name])
		if err != nil {
			return nil, fmt.Errorf("key binding %q: %w", name, err)
		}
		kb.keys[action] = keys
	}

	if err := kb.validate(); err != nil {
		return nil, err
	}
	return kb, nil
}

// validate checks every context for chords that resolve to more than one action.
func (kb *KeyBindings) validate() error {
	var conflicts []Conflict
	for _, ctx := range []Context{ContextList, ContextShowCommit, ContextConfirm, ContextHelp, ContextText} {
		actions := ctx.Actions()
		for i, a := range actions {
			for _, b := range actions[i+1:] {
				for _, ka := range kb.keys[a] {
					for _, kbk := range kb.keys[b] {
						if ka.Matches(kbk) {
							conflicts = append(conflicts, Conflict{Context: ctx, Key: ka, First: a, Second: b})
						}
					}
				}
			}
		}
	}
	if len(conflicts) > 0 {
		return &ConflictError{Conflicts: conflicts}
	}
	return nil
}

// Keys returns the chords bound to a.
func (kb *KeyBindings) Keys(a Action) []Key {
	return kb.keys[a]
}

// First returns the first chord bound to a, for hints.
func (kb *KeyBindings) First(a Action) (Key, bool) {
	keys := kb.keys[a]
	if len(keys) == 0 {
		return Key{}, false
	}
	return keys[0], true
}

// Label renders all chords of a joined by commas.
func (kb *KeyBindings) Label(a Action) string {
	keys := kb.keys[a]
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, ", ")
}

// Resolve returns the action that ev triggers in ctx, or ActionNone.
// Signals resolve regardless of context.
func (kb *KeyBindings) Resolve(ctx Context, ev Event) Action {
	switch ev.Kind {
	case EventResize:
		return ActionResize
	case EventCommandSucceeded:
		return ActionCommandSucceeded
	case EventCommandFailed:
		return ActionCommandFailed
	}
	for _, a := range ctx.Actions() {
		for _, k := range kb.keys[a] {
			if k.Matches(ev.Key) {
				return a
			}
		}
	}
	return ActionNone
}
