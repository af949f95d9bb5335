package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingWorkspace(uow *testutil.FailingUoW) WorkspaceService {
	return NewWorkspaceService(uow, WorkspaceConfig{Now: func() time.Time { return testutil.FixedNow }})
}

func TestWorkspaceService_Save_RollsBackOnAnyWriteFailure(t *testing.T) {
	statements := []struct {
		name  string
		match string
		nth   int
	}{
		{name: "enum value insert", match: "INSERT INTO enum_values"},
		{name: "second flag insert", match: "INSERT INTO flags", nth: 2},
		{name: "collapsed ids", match: "INSERT INTO collapsed_flags"},
		{name: "view state", match: "INSERT INTO view_state", nth: 2},
	}

	for _, tt := range statements {
		t.Run(tt.name, func(t *testing.T) {
			database := testutil.NewTestDB(t)
			ctx := context.Background()

			st, err := newWorkspace(t, database, "").Load(ctx)
			require.NoError(t, err)
			id, err := st.AddFlag("proj-1", "late-flag", domain.FlagBoolean, nil, "")
			require.NoError(t, err)
			_, err = st.AddFlag("proj-1", "late-child", domain.FlagBoolean, &id, "")
			require.NoError(t, err)
			st.ToggleFlagCollapsed(id)
			st.SetSidebarOpen(false)
			_, err = st.CreateEnumType("Plan", []string{"basic"})
			require.NoError(t, err)

			uow := &testutil.FailingUoW{DB: database, Match: tt.match, Nth: tt.nth, Err: errors.New("injected failure")}
			err = failingWorkspace(uow).Save(ctx, st)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "injected failure")

			reloaded, err := newWorkspace(t, database, "").Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, reloaded.EnumTypes())
			assert.Equal(t, []string{"dark-mode", "new-checkout"}, flagNames(reloaded.Flags("proj-1")))
			assert.Equal(t, []string{"beta-dashboard"}, flagNames(reloaded.Flags("proj-2")))
			assert.Empty(t, reloaded.CollapsedFlagIDs())
			assert.True(t, reloaded.SidebarOpen())
		})
	}
}

func TestWorkspaceService_Save_WritesTypesBeforeFlags(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	st, err := newWorkspace(t, database, "").Load(ctx)
	require.NoError(t, err)
	_, err = st.CreateEnumType("Plan", []string{"basic"})
	require.NoError(t, err)

	uow := &testutil.FailingUoW{DB: database, Match: "no statement matches this"}
	require.NoError(t, failingWorkspace(uow).Save(ctx, st))

	firstFlag := slices.IndexFunc(uow.Execs, func(q string) bool { return strings.Contains(q, "INSERT INTO flags") })
	lastType := -1
	for i, q := range uow.Execs {
		if strings.Contains(q, "INSERT INTO enum_") {
			lastType = i
		}
	}
	require.GreaterOrEqual(t, lastType, 0)
	assert.Less(t, lastType, firstFlag, "enum types are written before the flags that reference them")
}

func TestWorkspaceService_Load_RollsBackFailedSeed(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	uow := &testutil.FailingUoW{DB: database, Match: "INSERT INTO flags", Nth: 3, Err: errors.New("injected seed failure")}
	_, err := failingWorkspace(uow).Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected seed failure")

	st, err := newWorkspace(t, database, "").Load(ctx)
	require.NoError(t, err)
	assert.Len(t, st.Projects(), 2, "seeding retried cleanly after rollback")
	assert.Len(t, st.Flags("proj-1"), 2)
}
