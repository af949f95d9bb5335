package cli

import (
	"fmt"
	"strings"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/store"
)

// matchID resolves input against ids and names. Exact id wins, then a
// case-insensitive name, then a unique id prefix.
func matchID(kind, input string, ids, names []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", kind)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var byName []string
	for i, name := range names {
		if strings.EqualFold(name, input) {
			byName = append(byName, ids[i])
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", kind, input, len(matches))
	case len(byName) > 1:
		return "", fmt.Errorf("%s name %q is ambiguous (%d matches); use the ID", kind, input, len(byName))
	default:
		return "", fmt.Errorf("%s not found: %q", kind, input)
	}
}

func resolveProjectID(st *store.Store, input string) (string, error) {
	projects := st.Projects()
	ids := make([]string, len(projects))
	names := make([]string, len(projects))
	for i, p := range projects {
		ids[i], names[i] = p.ID, p.Name
	}
	return matchID("project", input, ids, names)
}

// resolveProjectOrSelected falls back to the selected project when input
// is empty.
func resolveProjectOrSelected(st *store.Store, input string) (domain.Project, error) {
	id := st.SelectedProjectID()
	if input != "" {
		var err error
		if id, err = resolveProjectID(st, input); err != nil {
			return domain.Project{}, err
		}
	}
	if p, ok := domain.FindProject(st.Projects(), id); ok {
		return p, nil
	}
	return domain.Project{}, fmt.Errorf("no project selected (use --project or 'flagctl project select')")
}

func resolveFlagID(st *store.Store, projectID, input string) (string, error) {
	flags := st.Flags(projectID)
	ids := make([]string, len(flags))
	names := make([]string, len(flags))
	for i, f := range flags {
		ids[i], names[i] = f.ID, f.Name
	}
	return matchID("flag", input, ids, names)
}

func resolveEnumTypeID(st *store.Store, input string) (string, error) {
	types := st.EnumTypes()
	ids := make([]string, len(types))
	names := make([]string, len(types))
	for i, et := range types {
		ids[i], names[i] = et.ID, et.Name
	}
	return matchID("enum type", input, ids, names)
}
