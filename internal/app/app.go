// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/config"
	"github.com/bethropolis/tide-rebase/internal/git"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/process"
	"github.com/bethropolis/tide-rebase/internal/theme"
	"github.com/bethropolis/tide-rebase/internal/todo"
	"github.com/bethropolis/tide-rebase/internal/tui"
)

// Startup messages.
const (
	msgMissingPath = "A todo file path must be provided."
	msgNoop        = "A noop rebase was provided, skipping editing"
	msgEmpty       = "An empty rebase was provided, nothing to edit"
)

// Options configure a run. The zero values of the collaborators select the real
// terminal, git binary and system clipboard.
type Options struct {
	TodoPath string
	Flags    *config.Flags

	Screen    tcell.Screen
	Git       git.Runner
	Clipboard clipboard.Clipboard
	// Runner runs the external editor; nil hands the terminal to the child process.
	Runner process.CommandRunner
}

// Exit is the result of a run: the status to exit with and an optional message for the
// user.
type Exit struct {
	Status  process.ExitStatus
	Message string
}

func exitf(status process.ExitStatus, format string, args ...interface{}) Exit {
	return Exit{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Run loads the configuration and the todo file, then edits the list interactively until
// the user exits.
func Run(ctx context.Context, opts Options) Exit {
	if opts.TodoPath == "" {
		return Exit{Status: process.ExitStateError, Message: msgMissingPath}
	}

	var configPath string
	if opts.Flags != nil {
		configPath = opts.Flags.ConfigFilePath
	}
	cfg, err := config.Load(configPath, opts.Flags)
	if err != nil {
		return exitf(process.ExitConfigError, "Error loading configuration: %v", err)
	}

	closer, err := logger.InitFromConfig(cfg.Logger)
	if err != nil {
		return exitf(process.ExitConfigError, "Error initializing logger: %v", err)
	}
	defer closer.Close()
	logger.Infof("Starting %s %s on %s", config.AppName, config.Version, opts.TodoPath)
	cfg.ReportUndecoded()

	gitRunner := opts.Git
	if gitRunner == nil {
		gitRunner = git.ExecRunner{}
	}
	gitClient := git.NewClient(gitRunner)

	commentChar := cfg.Git.CommentChar
	if commentChar == config.CommentCharAuto {
		commentChar = gitClient.CommentChar(ctx)
	}

	list, err := todo.Load(opts.TodoPath, commentChar, cfg.Editor.UndoLimit)
	if err != nil {
		return exitf(process.ExitFileReadError, "Error reading file: %v", err)
	}
	if list.IsNoop() {
		return Exit{Status: process.ExitGood, Message: msgNoop}
	}
	if list.IsEmpty() {
		return Exit{Status: process.ExitGood, Message: msgEmpty}
	}

	bindings, err := input.NewKeyBindings(cfg.KeyBindings.Map())
	if err != nil {
		var conflict *input.ConflictError
		if errors.As(err, &conflict) {
			return exitf(process.ExitConfigError, "Conflicting key bindings: %v", err)
		}
		return exitf(process.ExitConfigError, "Invalid key binding: %v", err)
	}

	themes := theme.NewManager(theme.DefaultThemesDir(config.AppName))
	if err := themes.LoadThemesFromDir(); err != nil {
		logger.Warnf("Error loading themes: %v", err)
	}
	activeTheme, err := themes.Select(cfg.Theme.Name, cfg.Theme.Styles)
	if err != nil {
		return exitf(process.ExitConfigError, "Error selecting theme: %v", err)
	}

	screen := opts.Screen
	if screen == nil {
		if screen, err = tcell.NewScreen(); err != nil {
			return exitf(process.ExitStateError, "failed to create tcell screen: %v", err)
		}
	}
	terminal, err := tui.NewWithScreen(screen, activeTheme)
	if err != nil {
		return exitf(process.ExitStateError, "TUI initialization failed: %v", err)
	}
	defer terminal.Close()

	runner := opts.Runner
	if runner == nil {
		runner = tui.NewCommandRunner(terminal)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.Default()
	}

	registry := newRegistry(ctx, cfg, bindings, gitClient, clip)
	session := process.New(list, registry, input.NewDispatcher(bindings), terminal, runner)

	status, err := session.Run(ctx)
	if err != nil {
		return exitf(status, "%v", err)
	}
	return Exit{Status: status}
}
