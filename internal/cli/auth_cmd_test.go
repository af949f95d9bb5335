package cli

import (
	"testing"

	"github.com/fluttering/flagctl/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthGate_RequiresSession(t *testing.T) {
	app := testApp(t)

	for _, args := range [][]string{
		{"flag", "list"},
		{"project", "list"},
		{"enum", "list"},
		{"ui", "sidebar", "open"},
		{"browse"},
	} {
		_, err := executeCmd(t, app, args...)
		require.Error(t, err, args)
		assert.ErrorIs(t, err, service.ErrNoSession, args)
		assert.Contains(t, err.Error(), "flagctl login", args)
	}
}

func TestAuthGate_PublicCommands(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "version")
	assert.Contains(t, out, "flagctl dev")

	out = mustExecute(t, app, "logout")
	assert.Contains(t, out, "Not signed in.")

	_, err := executeCmd(t, app, "whoami")
	assert.ErrorIs(t, err, service.ErrNoSession)

	_, err = executeCmd(t, app, "help")
	assert.NoError(t, err)
}

func TestLoginFlow(t *testing.T) {
	app := testApp(t)

	out := mustExecute(t, app, "login", "--user", "alice")
	assert.Contains(t, out, "Signed in as alice")

	out = mustExecute(t, app, "whoami")
	assert.Contains(t, out, "alice")

	_, err := executeCmd(t, app, "login", "--user", "bob")
	require.ErrorIs(t, err, service.ErrAlreadySignedIn)
	assert.Contains(t, err.Error(), "already signed in as alice")

	mustExecute(t, app, "project", "list")

	out = mustExecute(t, app, "logout")
	assert.Contains(t, out, "Signed out alice")

	_, err = executeCmd(t, app, "project", "list")
	assert.ErrorIs(t, err, service.ErrNoSession)
}

func TestLogin_PromptsWhenInteractive(t *testing.T) {
	app := testApp(t)
	app.IsInteractive = func() bool { return true }
	app.Prompt = func(title, description string) (string, error) { return "carol", nil }

	out := mustExecute(t, app, "login")
	assert.Contains(t, out, "Signed in as carol")
}

func TestLogin_EmptyUserNonInteractive(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "login")
	assert.ErrorIs(t, err, service.ErrEmptyUser)
}
