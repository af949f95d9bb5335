package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fluttering/flagctl/internal/cli/formatter"
	"github.com/fluttering/flagctl/internal/service"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Start a session",
		Annotations: public(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(user) == "" && app.interactive() {
				var err error
				if user, err = app.prompt("Sign in", "User name"); err != nil {
					return err
				}
			}
			session, err := app.Auth.Login(cmd.Context(), user)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (until %s)\n",
				formatter.Bold(session.User), session.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User name")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "End the current session",
		Annotations: public(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Auth.Logout(cmd.Context())
			if errors.Is(err, service.ErrNoSession) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s\n", session.User)
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in user",
		Annotations: public(),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Auth.Current(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", session.User,
				formatter.Dim("(session expires "+session.ExpiresAt.Local().Format("Jan 2, 2006 15:04")+")"))
			return nil
		},
	}
}
