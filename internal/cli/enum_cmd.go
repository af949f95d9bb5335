package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fluttering/flagctl/internal/cli/formatter"
	"github.com/fluttering/flagctl/internal/enumtype"
	"github.com/fluttering/flagctl/internal/store"
	"github.com/spf13/cobra"
)

func newEnumCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "enum",
		Aliases: []string{"enums"},
		Short:   "Manage the enum types shared by enum flags",
	}

	cmd.AddCommand(
		newEnumListCmd(app),
		newEnumAddCmd(app),
		newEnumUpdateCmd(app),
		newEnumRemoveCmd(app),
		newEnumImpactCmd(app),
	)

	return cmd
}

// cleanValues trims values and drops blanks. A single argument may hold a
// comma separated list.
func cleanValues(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, v := range strings.Split(arg, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func newEnumListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enum types and how many flags use each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			types := st.EnumTypes()
			byProject := st.FlagsByProject()
			usage := make(map[string]int, len(types))
			for _, et := range types {
				usage[et.ID] = enumtype.AffectedFlagCount(et.ID, byProject)
			}
			if asJSON {
				out := make([]formatter.EnumTypeJSON, 0, len(types))
				for _, et := range types {
					out = append(out, formatter.EnumTypeJSON{ID: et.ID, Name: et.Name, Values: et.Values, Flags: usage[et.ID]})
				}
				return formatter.WriteJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEnumTypeList(types, usage))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print enum types as JSON")
	return cmd
}

func newEnumAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME [VALUE...]",
		Short: "Create an enum type; the first value is the default",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			values := cleanValues(args[1:])
			if len(values) == 0 && app.interactive() {
				input, err := app.prompt("Values for "+name, "Comma separated; the first is the default")
				if err != nil {
					return err
				}
				values = cleanValues([]string{input})
			}
			if len(values) == 0 {
				return errors.New("at least one value is required")
			}

			_, err := app.apply(cmd.Context(), "enum-create", map[string]any{"name": name, "values": len(values)}, func(st *store.Store) error {
				_, err := st.CreateEnumType(name, values)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created enum type %s: %s\n", formatter.Bold(strings.TrimSpace(name)), formatter.FormatEnumValues(values))
			return nil
		},
	}
}

func newEnumUpdateCmd(app *App) *cobra.Command {
	var name string
	var yes bool

	cmd := &cobra.Command{
		Use:   "update ID [VALUE...]",
		Short: "Rename an enum type or replace its values",
		Long: "Rename an enum type or replace its values. Flags holding a removed value\n" +
			"are reset to the new default value.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveEnumTypeID(st, args[0])
			if err != nil {
				return err
			}
			current, _ := st.EnumType(id)

			newName := current.Name
			if cmd.Flags().Changed("name") {
				newName = name
			}
			values := current.Values
			if len(args) > 1 {
				values = cleanValues(args[1:])
				if len(values) == 0 {
					return errors.New("at least one value is required")
				}
			}

			byProject := st.FlagsByProject()
			removed := enumtype.RemovedValues(current.Values, values)
			affected := 0
			for _, v := range removed {
				affected += enumtype.AffectedFlagsByValue(id, v, byProject)
			}
			if affected > 0 {
				desc := fmt.Sprintf("removing %s resets %s to %q",
					strings.Join(removed, ", "), formatter.Plural(affected, "flag"), values[0])
				if err := app.confirm(yes, "Update "+current.Name+"?", desc); err != nil {
					return err
				}
			}

			var reset int
			_, err = app.apply(cmd.Context(), "enum-update", map[string]any{"enum_type": id}, func(st *store.Store) error {
				var err error
				reset, err = st.UpdateEnumType(id, newName, values)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated enum type %s: %s\n", formatter.Bold(strings.TrimSpace(newName)), formatter.FormatEnumValues(values))
			if reset > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(formatter.Plural(reset, "flag")+" reset to "+values[0]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation when flags would be reset")
	return cmd
}

func newEnumRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete an enum type and every flag that uses it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveEnumTypeID(st, args[0])
			if err != nil {
				return err
			}
			et, _ := st.EnumType(id)
			if affected := enumtype.AffectedFlagCount(id, st.FlagsByProject()); affected > 0 {
				desc := fmt.Sprintf("deleting %s also deletes %s using it", et.Name, formatter.Plural(affected, "flag"))
				if err := app.confirm(yes, "Delete "+et.Name+"?", desc); err != nil {
					return err
				}
			}

			var removed int
			_, err = app.apply(cmd.Context(), "enum-delete", map[string]any{"enum_type": id}, func(st *store.Store) error {
				var err error
				removed, err = st.DeleteEnumType(id)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted enum type %s\n", formatter.Bold(et.Name))
			if removed > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(formatter.Plural(removed, "flag")+" deleted"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation when flags would be deleted")
	return cmd
}

func newEnumImpactCmd(app *App) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "impact ID",
		Short: "Show the flags that use an enum type or one of its values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := app.load(cmd.Context())
			if err != nil {
				return err
			}
			id, err := resolveEnumTypeID(st, args[0])
			if err != nil {
				return err
			}
			et, _ := st.EnumType(id)

			var usage []store.ProjectFlag
			if value == "" {
				usage = st.FlagsByEnumType(id)
			} else {
				if !et.HasValue(value) {
					return fmt.Errorf("%q is not a value of %s", value, et.Name)
				}
				for _, p := range st.Projects() {
					for _, f := range st.FlagsByEnumValue(p.ID, id, value) {
						usage = append(usage, store.ProjectFlag{ProjectID: p.ID, Flag: f})
					}
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEnumImpact(et, st.Projects(), usage))
			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Only flags holding this value")
	return cmd
}
