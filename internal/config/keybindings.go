package config

// KeyBindings holds the binding strings of every configurable action, as they appear in
// the [key_bindings] table. See input.ParseBinding for the string format.
type KeyBindings struct {
	Abort                []string `toml:"abort"`
	ActionBreak          []string `toml:"action_break"`
	ActionDrop           []string `toml:"action_drop"`
	ActionEdit           []string `toml:"action_edit"`
	ActionFixup          []string `toml:"action_fixup"`
	ActionPick           []string `toml:"action_pick"`
	ActionReword         []string `toml:"action_reword"`
	ActionSquash         []string `toml:"action_squash"`
	ConfirmNo            []string `toml:"confirm_no"`
	ConfirmYes           []string `toml:"confirm_yes"`
	Edit                 []string `toml:"edit"`
	ForceAbort           []string `toml:"force_abort"`
	ForceRebase          []string `toml:"force_rebase"`
	Help                 []string `toml:"help"`
	InsertLine           []string `toml:"insert_line"`
	MoveDown             []string `toml:"move_down"`
	MoveDownStep         []string `toml:"move_down_step"`
	MoveEnd              []string `toml:"move_end"`
	MoveHome             []string `toml:"move_home"`
	MoveLeft             []string `toml:"move_left"`
	MoveRight            []string `toml:"move_right"`
	MoveSelectionDown    []string `toml:"move_selection_down"`
	MoveSelectionUp      []string `toml:"move_selection_up"`
	MoveUp               []string `toml:"move_up"`
	MoveUpStep           []string `toml:"move_up_step"`
	OpenInExternalEditor []string `toml:"open_in_external_editor"`
	Rebase               []string `toml:"rebase"`
	Redo                 []string `toml:"redo"`
	RemoveLine           []string `toml:"remove_line"`
	ShowCommit           []string `toml:"show_commit"`
	ShowDiff             []string `toml:"show_diff"`
	ToggleVisualMode     []string `toml:"toggle_visual_mode"`
	Undo                 []string `toml:"undo"`
	Yank                 []string `toml:"yank"`
}

// DefaultKeyBindings returns the stock bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Abort:                []string{"q"},
		ActionBreak:          []string{"b"},
		ActionDrop:           []string{"d"},
		ActionEdit:           []string{"e"},
		ActionFixup:          []string{"f"},
		ActionPick:           []string{"p"},
		ActionReword:         []string{"r"},
		ActionSquash:         []string{"s"},
		ConfirmNo:            []string{"n"},
		ConfirmYes:           []string{"y"},
		Edit:                 []string{"E"},
		ForceAbort:           []string{"Q"},
		ForceRebase:          []string{"W"},
		Help:                 []string{"?"},
		InsertLine:           []string{"I"},
		MoveDown:             []string{"Down"},
		MoveDownStep:         []string{"PageDown"},
		MoveEnd:              []string{"End"},
		MoveHome:             []string{"Home"},
		MoveLeft:             []string{"Left"},
		MoveRight:            []string{"Right"},
		MoveSelectionDown:    []string{"j"},
		MoveSelectionUp:      []string{"k"},
		MoveUp:               []string{"Up"},
		MoveUpStep:           []string{"PageUp"},
		OpenInExternalEditor: []string{"!"},
		Rebase:               []string{"w"},
		Redo:                 []string{"Controly"},
		RemoveLine:           []string{"Delete"},
		ShowCommit:           []string{"c"},
		ShowDiff:             []string{"d"},
		ToggleVisualMode:     []string{"v"},
		Undo:                 []string{"Controlz"},
		Yank:                 []string{"Y"},
	}
}

// Map returns the bindings keyed by action name.
func (k KeyBindings) Map() map[string][]string {
	return map[string][]string{
		"abort":                   k.Abort,
		"action_break":            k.ActionBreak,
		"action_drop":             k.ActionDrop,
		"action_edit":             k.ActionEdit,
		"action_fixup":            k.ActionFixup,
		"action_pick":             k.ActionPick,
		"action_reword":           k.ActionReword,
		"action_squash":           k.ActionSquash,
		"confirm_no":              k.ConfirmNo,
		"confirm_yes":             k.ConfirmYes,
		"edit":                    k.Edit,
		"force_abort":             k.ForceAbort,
		"force_rebase":            k.ForceRebase,
		"help":                    k.Help,
		"insert_line":             k.InsertLine,
		"move_down":               k.MoveDown,
		"move_down_step":          k.MoveDownStep,
		"move_end":                k.MoveEnd,
		"move_home":               k.MoveHome,
		"move_left":               k.MoveLeft,
		"move_right":              k.MoveRight,
		"move_selection_down":     k.MoveSelectionDown,
		"move_selection_up":       k.MoveSelectionUp,
		"move_up":                 k.MoveUp,
		"move_up_step":            k.MoveUpStep,
		"open_in_external_editor": k.OpenInExternalEditor,
		"rebase":                  k.Rebase,
		"redo":                    k.Redo,
		"remove_line":             k.RemoveLine,
		"show_commit":             k.ShowCommit,
		"show_diff":               k.ShowDiff,
		"toggle_visual_mode":      k.ToggleVisualMode,
		"undo":                    k.Undo,
		"yank":                    k.Yank,
	}
}
