package importer

import (
	"fmt"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/store"
)

// Convert builds the initial workspace state from a validated seed. Call
// ValidateSeed first; Convert assumes referential integrity holds. Missing
// timestamps default to now.
func Convert(schema *SeedSchema, now time.Time) (store.State, error) {
	st := store.State{
		Flags:            make(map[string][]domain.Flag),
		CollapsedFlagIDs: make(map[string]bool),
		SidebarOpen:      true,
	}

	for _, p := range schema.Projects {
		st.Projects = append(st.Projects, domain.Project{ID: p.ID, Name: p.Name})
	}
	st.SelectedProjectID = schema.SelectedProject
	if st.SelectedProjectID == "" && len(st.Projects) > 0 {
		st.SelectedProjectID = st.Projects[0].ID
	}

	types := make(map[string]domain.EnumType, len(schema.EnumTypes))
	for _, et := range schema.EnumTypes {
		t := domain.EnumType{ID: et.ID, Name: et.Name, Values: append([]string(nil), et.Values...)}
		st.EnumTypes = append(st.EnumTypes, t)
		types[t.ID] = t
	}

	for _, fs := range schema.Flags {
		created, err := parseSeedTime(fs.CreatedAt, now)
		if err != nil {
			return store.State{}, fmt.Errorf("flag %s created_at: %w", fs.ID, err)
		}
		updated, err := parseSeedTime(fs.UpdatedAt, created)
		if err != nil {
			return store.State{}, fmt.Errorf("flag %s updated_at: %w", fs.ID, err)
		}

		var parentID *string
		if fs.Parent != "" {
			parentID = domain.StringPtr(fs.Parent)
		}

		var f domain.Flag
		switch domain.FlagType(fs.Type) {
		case domain.FlagBoolean:
			f = domain.NewBooleanFlag(fs.ID, fs.Name, parentID, created)
			f.BoolValue = fs.Enabled
		case domain.FlagEnum:
			et, ok := types[fs.EnumType]
			if !ok {
				return store.State{}, fmt.Errorf("flag %s: unknown enum type %q", fs.ID, fs.EnumType)
			}
			f = domain.NewEnumFlag(fs.ID, fs.Name, parentID, et, created)
			if fs.EnumValue != "" {
				f.EnumValue = fs.EnumValue
			}
		default:
			return store.State{}, fmt.Errorf("flag %s: unknown type %q", fs.ID, fs.Type)
		}
		f.UpdatedAt = updated
		st.Flags[fs.Project] = append(st.Flags[fs.Project], f)
	}
	return st, nil
}

func parseSeedTime(s string, fallback time.Time) (time.Time, error) {
	if s == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
