package service

import (
	"context"
	"errors"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/store"
)

var (
	ErrNoSession       = errors.New("not signed in")
	ErrSessionExpired  = errors.New("session expired")
	ErrAlreadySignedIn = errors.New("already signed in")
	ErrEmptyUser       = errors.New("user name is required")
)

// WorkspaceService moves the flag workspace between sqlite and a store.
type WorkspaceService interface {
	// Load returns a store holding the persisted workspace, seeding the
	// database first when it has no projects.
	Load(ctx context.Context) (*store.Store, error)
	// Save writes the store's full snapshot in one transaction.
	Save(ctx context.Context, st *store.Store) error
	// Apply loads the workspace, runs fn against it and saves only when fn
	// succeeds. The store is returned either way for rendering.
	Apply(ctx context.Context, useCase string, fields map[string]any, fn func(st *store.Store) error) (*store.Store, error)
}

type AuthService interface {
	Login(ctx context.Context, user string) (*domain.AuthSession, error)
	Logout(ctx context.Context) (*domain.AuthSession, error)
	Current(ctx context.Context) (*domain.AuthSession, error)
}
