package cli

import (
	"fmt"

	"github.com/fluttering/flagctl/internal/cli/formatter"
	"github.com/fluttering/flagctl/internal/store"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "List and select projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectSelectCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			projects := st.Projects()
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			counts := make(map[string]int, len(projects))
			for id, flags := range st.FlagsByProject() {
				counts[id] = len(flags)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(projects, st.SelectedProjectID(), counts))
			return nil
		},
	}
}

func newProjectSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select ID",
		Short: "Select the project flag commands act on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			_, err := app.apply(cmd.Context(), "project-select", map[string]any{"input": args[0]}, func(st *store.Store) error {
				p, err := resolveProjectOrSelected(st, args[0])
				if err != nil {
					return err
				}
				name = p.Name
				st.SelectProject(p.ID)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Selected project %s\n", formatter.Bold(name))
			return nil
		},
	}
}
