package cli

import (
	"fmt"

	"github.com/fluttering/flagctl/internal/store"
	"github.com/spf13/cobra"
)

func newUICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Persisted view settings",
	}

	sidebar := &cobra.Command{
		Use:       "sidebar open|close",
		Short:     "Show or hide the project sidebar in the browser",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"open", "close"},
		RunE: func(cmd *cobra.Command, args []string) error {
			open := args[0] == "open"
			_, err := app.apply(cmd.Context(), "sidebar-set", map[string]any{"open": open}, func(st *store.Store) error {
				st.SetSidebarOpen(open)
				return nil
			})
			if err != nil {
				return err
			}
			if open {
				fmt.Fprintln(cmd.OutOrStdout(), "Sidebar open")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Sidebar closed")
			}
			return nil
		},
	}

	cmd.AddCommand(sidebar)
	return cmd
}
