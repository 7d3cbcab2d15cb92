// Package cli is the command-line entry point.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tide-rebase/internal/app"
	"github.com/bethropolis/tide-rebase/internal/config"
	"github.com/bethropolis/tide-rebase/internal/process"
)

// runFunc starts an editing session. app.Run outside tests.
type runFunc func(ctx context.Context, opts app.Options) app.Exit

// NewRootCmd builds the root command. The session result is stored in exit.
func NewRootCmd(run runFunc, exit *app.Exit) *cobra.Command {
	var flags config.Flags

	cmd := &cobra.Command{
		Use:           config.AppName + " [flags] <todo-file>",
		Short:         "Interactive editor for git rebase todo lists",
		Version:       config.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Use as git's sequence editor
  git config --global sequence.editor tide-rebase

  # Edit a todo file by hand
  tide-rebase .git/rebase-merge/git-rebase-todo
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.Options{Flags: &flags}
			if len(args) > 0 {
				opts.TodoPath = args[0]
			}
			*exit = run(cmd.Context(), opts)
			if opts.TodoPath == "" {
				exit.Message += "\n\n" + cmd.UsageString()
			}
			return nil
		},
	}

	flags.DefineFlags(cmd.Flags())
	return cmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, os.Args[1:], app.Run, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, run runFunc, stdout, stderr io.Writer) int {
	var exit app.Exit
	cmd := NewRootCmd(run, &exit)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, cmd.UsageString())
		return process.ExitStateError.Code()
	}
	if exit.Message != "" {
		fmt.Fprintln(stderr, exit.Message)
	}
	return exit.Status.Code()
}
