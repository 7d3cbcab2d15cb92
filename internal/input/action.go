// internal/input/action.go
package input

// Action is a semantic command a module can react to.
type Action int

const (
	ActionNone Action = iota

	// --- Exit ---
	ActionAbort
	ActionForceAbort
	ActionRebase
	ActionForceRebase
	ActionKill // Ctrl+C, not configurable

	// --- Instruction kind ---
	ActionBreak
	ActionDrop
	ActionEdit
	ActionFixup
	ActionPick
	ActionReword
	ActionSquash

	// --- List editing ---
	ActionEditLine
	ActionInsertLine
	ActionRemoveLine
	ActionMoveSelectionDown
	ActionMoveSelectionUp
	ActionToggleVisualMode
	ActionUndo
	ActionRedo
	ActionYank
	ActionOpenInEditor

	// --- Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveUpStep
	ActionMoveDownStep
	ActionMoveHome
	ActionMoveEnd
	ActionMoveLeft
	ActionMoveRight

	// --- Views ---
	ActionHelp
	ActionShowCommit
	ActionShowDiff
	ActionConfirmYes
	ActionConfirmNo

	// --- Signals ---
	ActionResize
	ActionCommandSucceeded
	ActionCommandFailed
)

// actionInfo holds the configuration key and help text of an action.
type actionInfo struct {
	name        string
	description string
}

var actionInfos = map[Action]actionInfo{
	ActionAbort:             {"abort", "Abort the rebase"},
	ActionForceAbort:        {"force_abort", "Abort the rebase without confirmation"},
	ActionRebase:            {"rebase", "Write the todo list and continue"},
	ActionForceRebase:       {"force_rebase", "Write and continue without confirmation"},
	ActionKill:              {"kill", "Exit immediately without writing"},
	ActionBreak:             {"action_break", "Toggle a break after the line"},
	ActionDrop:              {"action_drop", "Set selected commits to drop"},
	ActionEdit:              {"action_edit", "Set selected commits to edit"},
	ActionFixup:             {"action_fixup", "Set selected commits to fixup"},
	ActionPick:              {"action_pick", "Set selected commits to pick"},
	ActionReword:            {"action_reword", "Set selected commits to reword"},
	ActionSquash:            {"action_squash", "Set selected commits to squash"},
	ActionEditLine:          {"edit", "Edit an exec, label, reset or merge line"},
	ActionInsertLine:        {"insert_line", "Insert a new line"},
	ActionRemoveLine:        {"remove_line", "Remove the selected lines"},
	ActionMoveSelectionDown: {"move_selection_down", "Move the selection down"},
	ActionMoveSelectionUp:   {"move_selection_up", "Move the selection up"},
	ActionToggleVisualMode:  {"toggle_visual_mode", "Toggle visual mode"},
	ActionUndo:              {"undo", "Undo the last change"},
	ActionRedo:              {"redo", "Redo the last undone change"},
	ActionYank:              {"yank", "Copy selected references to the clipboard"},
	ActionOpenInEditor:      {"open_in_external_editor", "Open the todo file in the external editor"},
	ActionMoveUp:            {"move_up", "Move up"},
	ActionMoveDown:          {"move_down", "Move down"},
	ActionMoveUpStep:        {"move_up_step", "Move up one page"},
	ActionMoveDownStep:      {"move_down_step", "Move down one page"},
	ActionMoveHome:          {"move_home", "Move to the top"},
	ActionMoveEnd:           {"move_end", "Move to the bottom"},
	ActionMoveLeft:          {"move_left", "Scroll left"},
	ActionMoveRight:         {"move_right", "Scroll right"},
	ActionHelp:              {"help", "Show help"},
	ActionShowCommit:        {"show_commit", "Show commit details"},
	ActionShowDiff:          {"show_diff", "Toggle the full diff"},
	ActionConfirmYes:        {"confirm_yes", "Confirm"},
	ActionConfirmNo:         {"confirm_no", "Cancel"},
	ActionResize:            {"resize", ""},
	ActionCommandSucceeded:  {"command_succeeded", ""},
	ActionCommandFailed:     {"command_failed", ""},
}

// String returns the configuration key of the action.
func (a Action) String() string {
	if info, ok := actionInfos[a]; ok {
		return info.name
	}
	return "none"
}

// Description returns the help text of the action.
func (a Action) Description() string {
	return actionInfos[a].description
}

// ActionByName resolves a configuration key.
func ActionByName(name string) (Action, bool) {
	for a, info := range actionInfos {
		if info.name == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Context selects which actions a module listens to.
type Context int

const (
	ContextList Context = iota
	ContextShowCommit
	ContextConfirm
	ContextHelp
	ContextText
)

func (c Context) String() string {
	switch c {
	case ContextList:
		return "list"
	case ContextShowCommit:
		return "show-commit"
	case ContextConfirm:
		return "confirm"
	case ContextHelp:
		return "help"
	case ContextText:
		return "text"
	}
	return "unknown"
}

// contextActions lists, per context, the actions checked in order.
var contextActions = map[Context][]Action{
	ContextList: {
		ActionKill,
		ActionAbort, ActionForceAbort, ActionRebase, ActionForceRebase,
		ActionBreak, ActionDrop, ActionEdit, ActionFixup, ActionPick, ActionReword, ActionSquash,
		ActionEditLine, ActionInsertLine, ActionRemoveLine,
		ActionMoveSelectionDown, ActionMoveSelectionUp, ActionToggleVisualMode,
		ActionUndo, ActionRedo, ActionYank, ActionOpenInEditor,
		ActionMoveUp, ActionMoveDown, ActionMoveUpStep, ActionMoveDownStep,
		ActionMoveHome, ActionMoveEnd, ActionMoveLeft, ActionMoveRight,
		ActionHelp, ActionShowCommit,
	},
	ContextShowCommit: {
		ActionKill,
		ActionShowDiff, ActionHelp,
		ActionMoveUp, ActionMoveDown, ActionMoveUpStep, ActionMoveDownStep,
		ActionMoveHome, ActionMoveEnd, ActionMoveLeft, ActionMoveRight,
	},
	ContextConfirm: {ActionKill, ActionConfirmYes, ActionConfirmNo},
	ContextHelp: {
		ActionKill,
		ActionMoveUp, ActionMoveDown, ActionMoveUpStep, ActionMoveDownStep,
		ActionMoveHome, ActionMoveEnd,
	},
	ContextText: {ActionKill},
}

// Actions returns the actions resolved in ctx, in resolution order.
func (c Context) Actions() []Action {
	return contextActions[c]
}
