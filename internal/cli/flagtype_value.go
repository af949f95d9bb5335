package cli

import (
	"fmt"
	"strings"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagTypeValue is a pflag.Value restricted to the known flag types.
type flagTypeValue domain.FlagType

var _ pflag.Value = (*flagTypeValue)(nil)

func (v *flagTypeValue) String() string { return string(*v) }

func (v *flagTypeValue) Set(s string) error {
	t := domain.FlagType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return fmt.Errorf("must be one of %s, %s", domain.FlagBoolean, domain.FlagEnum)
	}
	*v = flagTypeValue(t)
	return nil
}

func (v *flagTypeValue) Type() string { return "boolean|enum" }

func (v *flagTypeValue) FlagType() domain.FlagType { return domain.FlagType(*v) }

// addTypeFlag registers --type with shell completion of the allowed values.
func addTypeFlag(cmd *cobra.Command, v *flagTypeValue, usage string) {
	cmd.Flags().Var(v, "type", usage)
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(domain.FlagBoolean), string(domain.FlagEnum)}, cobra.ShellCompDirectiveNoFileComp
	})
}
