package app

import (
	"context"

	"github.com/bethropolis/tide-rebase/internal/clipboard"
	"github.com/bethropolis/tide-rebase/internal/config"
	"github.com/bethropolis/tide-rebase/internal/git"
	"github.com/bethropolis/tide-rebase/internal/input"
	"github.com/bethropolis/tide-rebase/internal/modules"
	"github.com/bethropolis/tide-rebase/internal/process"
)

// newRegistry creates one module per state.
func newRegistry(ctx context.Context, cfg *config.Config, bindings *input.KeyBindings, gitClient *git.Client, clip clipboard.Clipboard) *process.Registry {
	opts := modules.Options{
		AutoSelectNext: cfg.Editor.AutoSelectNext,
		MinWidth:       cfg.Editor.MinWidth,
		MinHeight:      cfg.Editor.MinHeight,
		Editor:         cfg.Git.Editor,
	}

	registry := process.NewRegistry()
	contextOf := func(s process.State) input.Context {
		m, err := registry.Get(s)
		if err != nil {
			return input.ContextList
		}
		return m.Context()
	}

	registry.Register(process.StateList, modules.NewList(bindings, clip, opts))
	registry.Register(process.StateShowCommit, modules.NewShowCommit(ctx, gitClient, bindings, opts))
	registry.Register(process.StateExternalEditor, modules.NewExternalEditor(ctx, gitClient, opts))
	registry.Register(process.StateEdit, modules.NewEdit(clip, opts))
	registry.Register(process.StateInsert, modules.NewInsert(clip, opts))
	registry.Register(process.StateHelp, modules.NewHelp(bindings, contextOf, opts))
	registry.Register(process.StateError, modules.NewError(opts))
	registry.Register(process.StateConfirmAbort, modules.NewConfirmAbort(bindings, opts))
	registry.Register(process.StateConfirmRebase, modules.NewConfirmRebase(bindings, opts))
	registry.Register(process.StateWindowSizeError, modules.NewWindowSize(opts))
	return registry
}
