package process

// ExitStatus classifies how a session, or the whole program, ended.
type ExitStatus int

const (
	ExitGood ExitStatus = iota
	ExitConfigError
	ExitFileReadError
	ExitFileWriteError
	ExitStateError
	ExitAbort
	ExitKill
)

// Code returns the process exit code.
func (s ExitStatus) Code() int { return int(s) }

// Persists reports whether the todo list is written back on this status.
func (s ExitStatus) Persists() bool { return s == ExitGood }

func (s ExitStatus) String() string {
	switch s {
	case ExitGood:
		return "good"
	case ExitConfigError:
		return "config-error"
	case ExitFileReadError:
		return "file-read-error"
	case ExitFileWriteError:
		return "file-write-error"
	case ExitStateError:
		return "state-error"
	case ExitAbort:
		return "abort"
	case ExitKill:
		return "kill"
	}
	return "unknown"
}
