package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/store"
)

// FormatProjectList renders projects with their flag counts. The selected
// project is marked with ▸.
func FormatProjectList(projects []domain.Project, selectedID string, flagCounts map[string]int) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		marker := " "
		name := p.Name
		if p.ID == selectedID {
			marker = StyleGreen.Render("▸")
			name = Bold(name)
		}
		rows = append(rows, []string{marker, StyleGreen.Render(ShortID(p.ID)), name, strconv.Itoa(flagCounts[p.ID])})
	}
	return RenderTable([]string{" ", "ID", "NAME", "FLAGS"}, rows)
}

// FormatFlagList renders the header line and the flag tree of one project.
func FormatFlagList(project domain.Project, st *store.Store, now time.Time) string {
	flags := st.Flags(project.ID)
	var b strings.Builder
	b.WriteString(Header(project.Name) + "\n")
	if len(flags) == 0 {
		b.WriteString(Dim("No flags yet.") + "\n")
		return b.String()
	}
	nodes := st.RenderList(project.ID)
	b.WriteString(RenderFlagTree(nodes, st.CollapsedFlagIDs(), now))
	if hidden := len(flags) - len(nodes); hidden > 0 {
		b.WriteString(Dim(fmt.Sprintf("(%s hidden under collapsed parents)", Plural(hidden, "flag"))) + "\n")
	}
	return b.String()
}

// FormatEnumTypeList renders the enum type registry with usage counts. The
// default value is shown first and in bold.
func FormatEnumTypeList(types []domain.EnumType, usage map[string]int) string {
	if len(types) == 0 {
		return Dim("No enum types defined.") + "\n"
	}
	rows := make([][]string, 0, len(types))
	for _, et := range types {
		rows = append(rows, []string{
			StyleGreen.Render(ShortID(et.ID)),
			et.Name,
			FormatEnumValues(et.Values),
			strconv.Itoa(usage[et.ID]),
		})
	}
	return RenderTable([]string{"ID", "NAME", "VALUES", "FLAGS"}, rows)
}

// FormatEnumValues joins values with the default highlighted.
func FormatEnumValues(values []string) string {
	if len(values) == 0 {
		return Dim("--")
	}
	parts := make([]string, len(values))
	for i, v := range values {
		if i == 0 {
			parts[i] = Bold(v)
			continue
		}
		parts[i] = v
	}
	return strings.Join(parts, Dim(", "))
}

// FormatEnumImpact lists the flags that use an enum type, grouped by project
// in the order given.
func FormatEnumImpact(et domain.EnumType, projects []domain.Project, usage []store.ProjectFlag) string {
	var b strings.Builder
	b.WriteString(Header(et.Name) + "\n")
	if len(usage) == 0 {
		b.WriteString(Dim("Not used by any flag.") + "\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Used by %s:\n", Plural(len(usage), "flag")))

	byProject := make(map[string][]domain.Flag)
	for _, pf := range usage {
		byProject[pf.ProjectID] = append(byProject[pf.ProjectID], pf.Flag)
	}
	for _, p := range projects {
		flags := byProject[p.ID]
		if len(flags) == 0 {
			continue
		}
		b.WriteString("  " + StyleBold.Render(p.Name) + "\n")
		for _, f := range flags {
			b.WriteString(fmt.Sprintf("    %s  %s  %s\n", f.Name, Dim(ShortID(f.ID)), ValuePill(f)))
		}
	}
	return b.String()
}

// FormatFlagLine renders a one-line confirmation for a flag.
func FormatFlagLine(f domain.Flag) string {
	return fmt.Sprintf("%s %s  %s  %s", StyleGreen.Render(ShortID(f.ID)), Bold(f.Name), TypeBadge(f.Type), ValuePill(f))
}
