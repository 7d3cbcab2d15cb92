package process

// State identifies the active module.
type State int

const (
	StateList State = iota
	StateShowCommit
	StateExternalEditor
	StateEdit
	StateInsert
	StateHelp
	StateError
	StateConfirmAbort
	StateConfirmRebase
	StateWindowSizeError
)

var stateNames = map[State]string{
	StateList:            "list",
	StateShowCommit:      "show-commit",
	StateExternalEditor:  "external-editor",
	StateEdit:            "edit",
	StateInsert:          "insert",
	StateHelp:            "help",
	StateError:           "error",
	StateConfirmAbort:    "confirm-abort",
	StateConfirmRebase:   "confirm-rebase",
	StateWindowSizeError: "window-size-error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
