package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/fluttering/flagctl/internal/repository"
	"github.com/fluttering/flagctl/internal/service"
	"github.com/fluttering/flagctl/internal/store"
	"github.com/fluttering/flagctl/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB seeded with the
// default dataset.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	now := func() time.Time { return testutil.FixedNow }

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	return &App{
		Workspace: service.NewWorkspaceService(testutil.NewTestUoW(database), service.WorkspaceConfig{
			Now:          now,
			StoreOptions: []store.Option{store.WithIDGenerator(newID)},
		}),
		Auth: service.NewAuthService(repository.NewSQLiteAuthSessionRepo(database), time.Hour, now),
		Now:  now,
	}
}

// signedInApp returns a test App with a live session.
func signedInApp(t *testing.T) *App {
	t.Helper()
	app := testApp(t)
	_, err := app.Auth.Login(context.Background(), "tester")
	require.NoError(t, err)
	return app
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansi.Strip(buf.String()), err
}

func mustExecute(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

func loadStore(t *testing.T, app *App) *store.Store {
	t.Helper()
	st, err := app.Workspace.Load(context.Background())
	require.NoError(t, err)
	return st
}
