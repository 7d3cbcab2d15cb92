package todo

import "github.com/bethropolis/tide-rebase/internal/logger"

// DefaultUndoLimit is the number of undo entries kept when no limit is configured.
const DefaultUndoLimit = 5000

// snapshot is a whole-list copy taken before a mutation.
type snapshot struct {
	lines    []Line
	trailing []string
	cursor   int
	anchor   int
}

// history keeps bounded undo and redo stacks of snapshots.
// The bound is an entry count; a limit of zero disables recording.
type history struct {
	undo  []snapshot
	redo  []snapshot
	limit int
}

func newHistory(limit int) *history {
	if limit < 0 {
		limit = 0
	}
	return &history{limit: limit}
}

func (h *history) enabled() bool {
	return h.limit > 0
}

// record pushes the pre-mutation state and drops any redo entries.
func (h *history) record(s snapshot) {
	if !h.enabled() {
		return
	}
	h.redo = h.redo[:0]
	h.undo = push(h.undo, s, h.limit)
	logger.DebugTagf("history", "recorded snapshot, undo depth %d", len(h.undo))
}

// stepBack pops the newest undo entry, parking current on the redo stack.
func (h *history) stepBack(current snapshot) (snapshot, bool) {
	if len(h.undo) == 0 {
		return snapshot{}, false
	}
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = push(h.redo, current, h.limit)
	return s, true
}

// stepForward pops the newest redo entry, parking current on the undo stack.
func (h *history) stepForward(current snapshot) (snapshot, bool) {
	if len(h.redo) == 0 {
		return snapshot{}, false
	}
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = push(h.undo, current, h.limit)
	return s, true
}

func (h *history) undoDepth() int { return len(h.undo) }
func (h *history) redoDepth() int { return len(h.redo) }

// push appends s and evicts the oldest entries beyond limit.
func push(stack []snapshot, s snapshot, limit int) []snapshot {
	stack = append(stack, s)
	if len(stack) > limit {
		stack = stack[len(stack)-limit:]
	}
	return stack
}
