package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fluttering/flagctl/internal/db"
	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/importer"
	"github.com/fluttering/flagctl/internal/repository"
	"github.com/fluttering/flagctl/internal/store"
)

// WorkspaceConfig tunes how a workspace is seeded and how its store is built.
type WorkspaceConfig struct {
	SeedPath     string // empty uses the embedded seed
	Now          func() time.Time
	StoreOptions []store.Option
}

type workspaceService struct {
	uow       db.UnitOfWork
	seedPath  string
	now       func() time.Time
	storeOpts []store.Option
	observer  UseCaseObserver
}

func NewWorkspaceService(uow db.UnitOfWork, cfg WorkspaceConfig, observers ...UseCaseObserver) WorkspaceService {
	now := nowOrDefault(cfg.Now)
	opts := append([]store.Option{store.WithClock(now)}, cfg.StoreOptions...)
	return &workspaceService{
		uow:       uow,
		seedPath:  cfg.SeedPath,
		now:       now,
		storeOpts: opts,
		observer:  combineObservers(observers),
	}
}

func (s *workspaceService) Load(ctx context.Context) (st *store.Store, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		observeUseCase(ctx, s.observer, "workspace-load", startedAt, fields, err)
	}()

	state, err := db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (store.State, error) {
		count, err := repository.NewSQLiteProjectRepo(tx).Count(ctx)
		if err != nil {
			return store.State{}, err
		}
		if count == 0 {
			fields["seeded"] = true
			return s.seed(ctx, tx)
		}
		return readState(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}
	fields["projects"] = len(state.Projects)
	fields["enum_types"] = len(state.EnumTypes)
	return store.New(state, s.storeOpts...), nil
}

func (s *workspaceService) Save(ctx context.Context, st *store.Store) (err error) {
	startedAt := time.Now().UTC()
	state := st.Snapshot()
	fields := map[string]any{"projects": len(state.Projects)}
	defer func() {
		observeUseCase(ctx, s.observer, "workspace-save", startedAt, fields, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return writeState(ctx, tx, state)
	})
	if err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

func (s *workspaceService) Apply(ctx context.Context, useCase string, fields map[string]any, fn func(st *store.Store) error) (st *store.Store, err error) {
	startedAt := time.Now().UTC()
	if fields == nil {
		fields = map[string]any{}
	}
	defer func() {
		observeUseCase(ctx, s.observer, useCase, startedAt, fields, err)
	}()

	st, err = s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err = fn(st); err != nil {
		fields["rejected"] = errors.Is(err, store.ErrRejected)
		return st, err
	}
	if err = s.Save(ctx, st); err != nil {
		return st, err
	}
	return st, nil
}

// seed persists the configured seed dataset and returns it as state.
func (s *workspaceService) seed(ctx context.Context, tx db.DBTX) (store.State, error) {
	schema := importer.DefaultSeed()
	if s.seedPath != "" {
		var err error
		schema, err = importer.LoadSeed(s.seedPath)
		if err != nil {
			return store.State{}, fmt.Errorf("loading seed %s: %w", s.seedPath, err)
		}
	}
	if errs := importer.ValidateSeed(schema); len(errs) > 0 {
		return store.State{}, formatValidationErrors(errs)
	}
	state, err := importer.Convert(schema, s.now())
	if err != nil {
		return store.State{}, fmt.Errorf("converting seed: %w", err)
	}

	projects := repository.NewSQLiteProjectRepo(tx)
	for i := range state.Projects {
		if err := projects.Create(ctx, &state.Projects[i], i); err != nil {
			return store.State{}, fmt.Errorf("creating project %s: %w", state.Projects[i].ID, err)
		}
	}
	if err := writeState(ctx, tx, state); err != nil {
		return store.State{}, err
	}
	return state, nil
}

func readState(ctx context.Context, tx db.DBTX) (store.State, error) {
	var state store.State
	var err error

	if state.Projects, err = repository.NewSQLiteProjectRepo(tx).List(ctx); err != nil {
		return store.State{}, err
	}
	if state.EnumTypes, err = repository.NewSQLiteEnumTypeRepo(tx).List(ctx); err != nil {
		return store.State{}, err
	}
	if state.Flags, err = repository.NewSQLiteFlagRepo(tx).ListAll(ctx); err != nil {
		return store.State{}, err
	}

	views := repository.NewSQLiteViewStateRepo(tx)
	collapsed, err := views.ListCollapsed(ctx)
	if err != nil {
		return store.State{}, err
	}
	state.CollapsedFlagIDs = make(map[string]bool, len(collapsed))
	for _, id := range collapsed {
		state.CollapsedFlagIDs[id] = true
	}

	selected, err := viewValue(ctx, views, repository.KeySelectedProject)
	if err != nil {
		return store.State{}, err
	}
	state.SelectedProjectID = selected
	_, known := domain.FindProject(state.Projects, selected)
	if !known && len(state.Projects) > 0 {
		state.SelectedProjectID = state.Projects[0].ID
	}

	state.SidebarOpen = true
	sidebar, err := viewValue(ctx, views, repository.KeySidebarOpen)
	if err != nil {
		return store.State{}, err
	}
	if b, perr := strconv.ParseBool(sidebar); perr == nil {
		state.SidebarOpen = b
	}
	return state, nil
}

// writeState replaces every persisted table except projects. Enum types go
// first so the flag rows can reference them.
func writeState(ctx context.Context, tx db.DBTX, state store.State) error {
	if err := repository.NewSQLiteEnumTypeRepo(tx).ReplaceAll(ctx, state.EnumTypes); err != nil {
		return err
	}
	if err := repository.NewSQLiteFlagRepo(tx).ReplaceAll(ctx, state.Flags); err != nil {
		return err
	}
	views := repository.NewSQLiteViewStateRepo(tx)
	if err := views.ReplaceCollapsed(ctx, state.CollapsedIDs()); err != nil {
		return err
	}
	if err := views.Set(ctx, repository.KeySelectedProject, state.SelectedProjectID); err != nil {
		return err
	}
	return views.Set(ctx, repository.KeySidebarOpen, strconv.FormatBool(state.SidebarOpen))
}

func viewValue(ctx context.Context, views repository.ViewStateRepo, key string) (string, error) {
	v, err := views.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return v, err
}
