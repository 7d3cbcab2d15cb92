// Package todo models the interactive rebase todo list: parsing, editing,
// undo/redo history and writing it back to disk.
package todo

import (
	"errors"
	"fmt"
	"strings"
)

// Action is the kind of a single todo instruction.
type Action int

const (
	ActionBreak Action = iota
	ActionDrop
	ActionEdit
	ActionExec
	ActionFixup
	ActionLabel
	ActionMerge
	ActionNoop
	ActionPick
	ActionReset
	ActionReword
	ActionSquash
)

// ErrUnknownAction is returned when a todo line starts with an unrecognized keyword.
var ErrUnknownAction = errors.New("unknown action")

var actionNames = [...]string{
	ActionBreak:  "break",
	ActionDrop:   "drop",
	ActionEdit:   "edit",
	ActionExec:   "exec",
	ActionFixup:  "fixup",
	ActionLabel:  "label",
	ActionMerge:  "merge",
	ActionNoop:   "noop",
	ActionPick:   "pick",
	ActionReset:  "reset",
	ActionReword: "reword",
	ActionSquash: "squash",
}

// noop has no short form in git.
var actionAbbrevs = [...]string{
	ActionBreak:  "b",
	ActionDrop:   "d",
	ActionEdit:   "e",
	ActionExec:   "x",
	ActionFixup:  "f",
	ActionLabel:  "l",
	ActionMerge:  "m",
	ActionNoop:   "noop",
	ActionPick:   "p",
	ActionReset:  "t",
	ActionReword: "r",
	ActionSquash: "s",
}

// ParseAction resolves a full or abbreviated keyword.
func ParseAction(word string) (Action, error) {
	w := strings.ToLower(word)
	for a := ActionBreak; a <= ActionSquash; a++ {
		if actionNames[a] == w || actionAbbrevs[a] == w {
			return a, nil
		}
	}
	return ActionNoop, fmt.Errorf("%w: %q", ErrUnknownAction, word)
}

// String returns the full git keyword.
func (a Action) String() string {
	if a < ActionBreak || a > ActionSquash {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Abbrev returns the short git keyword.
func (a Action) Abbrev() string {
	if a < ActionBreak || a > ActionSquash {
		return "?"
	}
	return actionAbbrevs[a]
}

// IsCommit reports whether the action operates on a commit.
func (a Action) IsCommit() bool {
	switch a {
	case ActionPick, ActionReword, ActionEdit, ActionFixup, ActionSquash, ActionDrop:
		return true
	}
	return false
}

// IsStatic reports whether the action can never be converted to another kind.
func (a Action) IsStatic() bool {
	return !a.IsCommit()
}

// IsEditable reports whether the line text after the keyword can be edited in place.
func (a Action) IsEditable() bool {
	switch a {
	case ActionExec, ActionLabel, ActionReset, ActionMerge:
		return true
	}
	return false
}

// CanChangeTo reports whether a line of kind a may be rewritten to kind b.
func (a Action) CanChangeTo(b Action) bool {
	return a.IsCommit() && b.IsCommit()
}
