package cli

import (
	"errors"
	"fmt"

	"github.com/fluttering/flagctl/internal/cli/formatter"
	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/flagtree"
	"github.com/fluttering/flagctl/internal/store"
	"github.com/spf13/cobra"
)

func newFlagCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "flag",
		Short: "Manage the flags of a project",
	}
	cmd.PersistentFlags().StringVarP(&project, "project", "p", "", "Project ID, name or ID prefix (default: selected project)")

	cmd.AddCommand(
		newFlagListCmd(app, &project),
		newFlagAddCmd(app, &project),
		newFlagUpdateCmd(app, &project),
		newFlagToggleCmd(app, &project),
		newFlagSetCmd(app, &project),
		newFlagRemoveCmd(app, &project),
		newFlagMoveCmd(app, &project),
		newFlagCollapseCmd(app, &project),
		newFlagCandidatesCmd(app, &project),
	)

	return cmd
}

// flagTarget is a resolved project and flag.
type flagTarget struct {
	project domain.Project
	flagID  string
}

func resolveFlagTarget(st *store.Store, project, input string) (flagTarget, error) {
	p, err := resolveProjectOrSelected(st, project)
	if err != nil {
		return flagTarget{}, err
	}
	id, err := resolveFlagID(st, p.ID, input)
	if err != nil {
		return flagTarget{}, err
	}
	return flagTarget{project: p, flagID: id}, nil
}

func newFlagListCmd(app *App, project *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the flag tree of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			p, err := resolveProjectOrSelected(st, *project)
			if err != nil {
				return err
			}
			if asJSON {
				flags := st.Flags(p.ID)
				out := make([]formatter.FlagJSON, 0, len(flags))
				for _, f := range flags {
					out = append(out, formatter.NewFlagJSON(p.ID, f))
				}
				return formatter.WriteJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFlagList(p, st, app.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print flags as JSON in list order")
	return cmd
}

func newFlagAddCmd(app *App, project *string) *cobra.Command {
	typ := flagTypeValue(domain.FlagBoolean)
	var parent, enumType string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if enumType != "" && !cmd.Flags().Changed("type") {
				typ = flagTypeValue(domain.FlagEnum)
			}
			fields := map[string]any{"name": args[0], "type": typ.String()}

			var created domain.Flag
			_, err := app.apply(cmd.Context(), "flag-add", fields, func(st *store.Store) error {
				p, err := resolveProjectOrSelected(st, *project)
				if err != nil {
					return err
				}
				var parentID *string
				if parent != "" {
					id, err := resolveFlagID(st, p.ID, parent)
					if err != nil {
						return err
					}
					parentID = &id
				}
				typeID := ""
				if enumType != "" {
					if typeID, err = resolveEnumTypeID(st, enumType); err != nil {
						return err
					}
				}
				id, err := st.AddFlag(p.ID, args[0], typ.FlagType(), parentID, typeID)
				if err != nil {
					return err
				}
				created, _ = st.Flag(p.ID, id)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", formatter.FormatFlagLine(created))
			return nil
		},
	}

	addTypeFlag(cmd, &typ, "Flag type: boolean or enum")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent boolean flag")
	cmd.Flags().StringVar(&enumType, "enum-type", "", "Enum type for enum flags")
	return cmd
}

func newFlagUpdateCmd(app *App, project *string) *cobra.Command {
	var typ flagTypeValue
	var name, enumType string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a flag or change its type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			if !changed("name") && !changed("type") && !changed("enum-type") {
				return errors.New("nothing to update (use --name, --type or --enum-type)")
			}

			var updated domain.Flag
			_, err := app.apply(cmd.Context(), "flag-update", map[string]any{"flag": args[0]}, func(st *store.Store) error {
				target, err := resolveFlagTarget(st, *project, args[0])
				if err != nil {
					return err
				}
				var u store.FlagUpdate
				if changed("name") {
					u.Name = &name
				}
				if changed("type") {
					t := typ.FlagType()
					u.Type = &t
				}
				if changed("enum-type") {
					id, err := resolveEnumTypeID(st, enumType)
					if err != nil {
						return err
					}
					u.EnumTypeID = &id
				}
				if err := st.UpdateFlag(target.project.ID, target.flagID, u); err != nil {
					return err
				}
				updated, _ = st.Flag(target.project.ID, target.flagID)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatter.FormatFlagLine(updated))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	addTypeFlag(cmd, &typ, "New type: boolean or enum (the value resets)")
	cmd.Flags().StringVar(&enumType, "enum-type", "", "Enum type (resets the value to its default)")
	return cmd
}

// newSimpleFlagCmd builds a command that resolves one flag, applies op and
// reports the flag afterwards.
func newSimpleFlagCmd(app *App, project *string, use, short, useCase, verb string, argsCheck cobra.PositionalArgs,
	op func(st *store.Store, t flagTarget, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argsCheck,
		RunE: func(cmd *cobra.Command, args []string) error {
			var after domain.Flag
			_, err := app.apply(cmd.Context(), useCase, map[string]any{"flag": args[0]}, func(st *store.Store) error {
				target, err := resolveFlagTarget(st, *project, args[0])
				if err != nil {
					return err
				}
				if err := op(st, target, args); err != nil {
					return err
				}
				after, _ = st.Flag(target.project.ID, target.flagID)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, formatter.FormatFlagLine(after))
			return nil
		},
	}
}

func newFlagToggleCmd(app *App, project *string) *cobra.Command {
	return newSimpleFlagCmd(app, project, "toggle ID", "Flip a boolean flag", "flag-toggle", "Toggled",
		cobra.ExactArgs(1),
		func(st *store.Store, t flagTarget, _ []string) error {
			return st.ToggleFlagValue(t.project.ID, t.flagID)
		})
}

func newFlagSetCmd(app *App, project *string) *cobra.Command {
	return newSimpleFlagCmd(app, project, "set ID VALUE", "Set the value of an enum flag", "flag-set", "Set",
		cobra.ExactArgs(2),
		func(st *store.Store, t flagTarget, args []string) error {
			return st.SetEnumFlagValue(t.project.ID, t.flagID, args[1])
		})
}

func newFlagMoveCmd(app *App, project *string) *cobra.Command {
	var parent string
	var toRoot bool

	cmd := newSimpleFlagCmd(app, project, "move ID", "Move a flag under another boolean flag or to the root", "flag-move", "Moved",
		cobra.ExactArgs(1),
		func(st *store.Store, t flagTarget, _ []string) error {
			if toRoot {
				return st.SetFlagParent(t.project.ID, t.flagID, nil)
			}
			id, err := resolveFlagID(st, t.project.ID, parent)
			if err != nil {
				return err
			}
			return st.SetFlagParent(t.project.ID, t.flagID, &id)
		})

	cmd.Flags().StringVar(&parent, "parent", "", "New parent flag")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move to the root level")
	cmd.MarkFlagsMutuallyExclusive("parent", "root")
	cmd.MarkFlagsOneRequired("parent", "root")
	return cmd
}

func newFlagRemoveCmd(app *App, project *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a flag; its children move up one level",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed domain.Flag
			var promoted int
			_, err := app.apply(cmd.Context(), "flag-delete", map[string]any{"flag": args[0]}, func(st *store.Store) error {
				target, err := resolveFlagTarget(st, *project, args[0])
				if err != nil {
					return err
				}
				removed, _ = st.Flag(target.project.ID, target.flagID)
				promoted = len(flagtree.GetDirectChildren(st.Flags(target.project.ID), target.flagID))
				return st.DeleteFlag(target.project.ID, target.flagID)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", formatter.Bold(removed.Name))
			if promoted > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Dim(formatter.Plural(promoted, "child flag")+" moved up one level"))
			}
			return nil
		},
	}
}

func newFlagCollapseCmd(app *App, project *string) *cobra.Command {
	return &cobra.Command{
		Use:   "collapse ID",
		Short: "Collapse or expand a flag's children in listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			var collapsed bool
			_, err := app.apply(cmd.Context(), "flag-collapse", map[string]any{"flag": args[0]}, func(st *store.Store) error {
				target, err := resolveFlagTarget(st, *project, args[0])
				if err != nil {
					return err
				}
				f, _ := st.Flag(target.project.ID, target.flagID)
				name = f.Name
				collapsed = st.ToggleFlagCollapsed(target.flagID)
				return nil
			})
			if err != nil {
				return err
			}
			state := "Expanded"
			if collapsed {
				state = "Collapsed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state, formatter.Bold(name))
			return nil
		},
	}
}

func newFlagCandidatesCmd(app *App, project *string) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates ID",
		Short: "List the flags a flag can be moved under",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			target, err := resolveFlagTarget(st, *project, args[0])
			if err != nil {
				return err
			}
			candidates := st.ParentCandidates(target.project.ID, target.flagID)
			if len(candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No parent candidates.")
				return nil
			}
			rows := make([][]string, 0, len(candidates))
			for _, f := range candidates {
				rows = append(rows, []string{formatter.StyleGreen.Render(formatter.ShortID(f.ID)), f.Name, formatter.ValuePill(f)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "VALUE"}, rows))
			return nil
		},
	}
}
