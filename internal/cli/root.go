package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is reported by "flagctl version".
var Version = "dev"

// annotationPublic marks commands that run without a signed-in session.
const annotationPublic = "flagctl/public"

var publicCommands = map[string]bool{
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// NewRootCmd creates the top-level "flagctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "flagctl",
		Short:         "Manage feature flags organised as per-project trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if isPublic(cmd) {
				return nil
			}
			if _, err := app.Auth.Current(cmd.Context()); err != nil {
				return fmt.Errorf("%w (run 'flagctl login --user NAME')", err)
			}
			return nil
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newVersionCmd(),
		newProjectCmd(app),
		newFlagCmd(app),
		newEnumCmd(app),
		newUICmd(app),
		newBrowseCmd(app),
	)

	return root
}

func isPublic(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if publicCommands[c.Name()] || c.Annotations[annotationPublic] == "true" {
			return true
		}
	}
	return false
}

func public() map[string]string {
	return map[string]string{annotationPublic: "true"}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the flagctl version",
		Annotations: public(),
		Args:        cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "flagctl "+Version)
		},
	}
}
