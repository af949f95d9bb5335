package repository

import (
	"context"
	"testing"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Production")
	require.NoError(t, repo.Create(ctx, proj, 0))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj, fetched)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectRepo_ListOrdersByPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	staging := &domain.Project{ID: "a-staging", Name: "Staging"}
	prod := &domain.Project{ID: "z-prod", Name: "Production"}
	require.NoError(t, repo.Create(ctx, staging, 1))
	require.NoError(t, repo.Create(ctx, prod, 0))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Project{*prod, *staging}, list)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProjectRepo_CreateDuplicateFails(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Production")
	require.NoError(t, repo.Create(ctx, proj, 0))
	assert.Error(t, repo.Create(ctx, proj, 1))
}
