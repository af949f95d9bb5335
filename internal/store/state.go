package store

import (
	"maps"
	"slices"

	"github.com/fluttering/flagctl/internal/domain"
)

// State is the full flag workspace. Flags are keyed by project ID and kept in
// creation order; that order drives sibling order in the rendered tree.
type State struct {
	Projects          []domain.Project
	SelectedProjectID string
	Flags             map[string][]domain.Flag
	EnumTypes         []domain.EnumType
	CollapsedFlagIDs  map[string]bool
	SidebarOpen       bool
}

// Clone returns a deep copy of s. Maps in the copy are never nil.
func (s State) Clone() State {
	out := State{
		Projects:          slices.Clone(s.Projects),
		SelectedProjectID: s.SelectedProjectID,
		Flags:             make(map[string][]domain.Flag, len(s.Flags)),
		EnumTypes:         make([]domain.EnumType, len(s.EnumTypes)),
		CollapsedFlagIDs:  maps.Clone(s.CollapsedFlagIDs),
		SidebarOpen:       s.SidebarOpen,
	}
	for pid, flags := range s.Flags {
		out.Flags[pid] = cloneFlags(flags)
	}
	for i, et := range s.EnumTypes {
		out.EnumTypes[i] = et.Clone()
	}
	if out.CollapsedFlagIDs == nil {
		out.CollapsedFlagIDs = make(map[string]bool)
	}
	return out
}

// CollapsedIDs returns the collapsed flag IDs in sorted order.
func (s State) CollapsedIDs() []string {
	ids := make([]string, 0, len(s.CollapsedFlagIDs))
	for id, ok := range s.CollapsedFlagIDs {
		if ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func cloneFlags(flags []domain.Flag) []domain.Flag {
	if flags == nil {
		return nil
	}
	out := make([]domain.Flag, len(flags))
	for i, f := range flags {
		out[i] = f.Clone()
	}
	return out
}

func (s *State) hasProject(id string) bool {
	return slices.ContainsFunc(s.Projects, func(p domain.Project) bool { return p.ID == id })
}

func (s *State) flagIndex(projectID, flagID string) int {
	return slices.IndexFunc(s.Flags[projectID], func(f domain.Flag) bool { return f.ID == flagID })
}

func (s *State) enumTypeIndex(id string) int {
	return slices.IndexFunc(s.EnumTypes, func(et domain.EnumType) bool { return et.ID == id })
}
