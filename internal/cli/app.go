package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fluttering/flagctl/internal/service"
	"github.com/fluttering/flagctl/internal/store"
)

var errCancelled = errors.New("cancelled")

// App holds the services and terminal hooks used by CLI commands.
type App struct {
	Workspace service.WorkspaceService
	Auth      service.AuthService

	// Now is the reference time for relative timestamps. Defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Defaults to a huh confirm form.
	Confirm func(title, description string) (bool, error)
	// Prompt asks for a line of input. Defaults to a huh input form.
	Prompt func(title, description string) (string, error)
	// RunProgram runs a bubbletea model. Defaults to a full-screen program.
	RunProgram func(m tea.Model) error
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// confirm passes when yes is set, asks when a terminal is attached, and
// otherwise fails with a hint to pass --yes.
func (a *App) confirm(yes bool, title, description string) error {
	if yes {
		return nil
	}
	if !a.interactive() {
		return fmt.Errorf("%s; rerun with --yes to confirm", description)
	}
	ask := a.Confirm
	if ask == nil {
		ask = confirmForm
	}
	ok, err := ask(title, description)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}

func (a *App) prompt(title, description string) (string, error) {
	ask := a.Prompt
	if ask == nil {
		ask = inputForm
	}
	return ask(title, description)
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// load reads the workspace for read-only commands.
func (a *App) load(ctx context.Context) (*store.Store, error) {
	return a.Workspace.Load(ctx)
}

// apply runs one mutation against the workspace and persists it.
func (a *App) apply(ctx context.Context, useCase string, fields map[string]any, fn func(st *store.Store) error) (*store.Store, error) {
	return a.Workspace.Apply(ctx, useCase, fields, fn)
}
