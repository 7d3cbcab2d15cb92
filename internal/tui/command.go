package tui

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/bethropolis/tide-rebase/internal/logger"
	"github.com/bethropolis/tide-rebase/internal/process"
)

// CommandRunner runs external programs in the foreground, suspending the TUI while they
// own the terminal.
type CommandRunner struct {
	tui *TUI
}

// NewCommandRunner creates a runner that hands t's terminal to each command.
func NewCommandRunner(t *TUI) *CommandRunner {
	return &CommandRunner{tui: t}
}

// Run executes cmd with the standard streams attached and waits for it.
func (r *CommandRunner) Run(ctx context.Context, cmd process.ExternalCommand) error {
	if err := r.tui.Suspend(); err != nil {
		return fmt.Errorf("suspend terminal: %w", err)
	}
	defer func() {
		if err := r.tui.Resume(); err != nil {
			logger.Errorf("Failed to resume terminal after %s: %v", cmd.Name, err)
		}
	}()

	logger.Infof("Running external command: %s", cmd)
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return nil
}
