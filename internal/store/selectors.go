package store

import (
	"maps"
	"slices"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/flagtree"
)

// ProjectFlag pairs a flag with the project that owns it.
type ProjectFlag struct {
	ProjectID string
	Flag      domain.Flag
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State { return s.state.Clone() }

func (s *Store) Projects() []domain.Project { return slices.Clone(s.state.Projects) }
func (s *Store) SelectedProjectID() string  { return s.state.SelectedProjectID }
func (s *Store) SidebarOpen() bool          { return s.state.SidebarOpen }

// Flags returns a copy of the project's flags in list order.
func (s *Store) Flags(projectID string) []domain.Flag {
	return cloneFlags(s.state.Flags[projectID])
}

// FlagsByProject returns a copy of every project's flags.
func (s *Store) FlagsByProject() map[string][]domain.Flag {
	out := make(map[string][]domain.Flag, len(s.state.Flags))
	for pid, flags := range s.state.Flags {
		out[pid] = cloneFlags(flags)
	}
	return out
}

// Flag looks up a flag within a project.
func (s *Store) Flag(projectID, flagID string) (domain.Flag, bool) {
	idx := s.state.flagIndex(projectID, flagID)
	if idx < 0 {
		return domain.Flag{}, false
	}
	return s.state.Flags[projectID][idx].Clone(), true
}

// EnumTypes returns a copy of the enum type registry in creation order.
func (s *Store) EnumTypes() []domain.EnumType {
	out := make([]domain.EnumType, len(s.state.EnumTypes))
	for i, et := range s.state.EnumTypes {
		out[i] = et.Clone()
	}
	return out
}

// EnumType looks up an enum type by ID.
func (s *Store) EnumType(id string) (domain.EnumType, bool) {
	idx := s.state.enumTypeIndex(id)
	if idx < 0 {
		return domain.EnumType{}, false
	}
	return s.state.EnumTypes[idx].Clone(), true
}

// IsCollapsed reports whether the flag's subtree is hidden.
func (s *Store) IsCollapsed(flagID string) bool { return s.state.CollapsedFlagIDs[flagID] }

// CollapsedFlagIDs returns a copy of the collapsed set.
func (s *Store) CollapsedFlagIDs() map[string]bool { return maps.Clone(s.state.CollapsedFlagIDs) }

// FlagsByEnumType returns every enum flag of the given type, grouped by
// project in sorted project ID order.
func (s *Store) FlagsByEnumType(enumTypeID string) []ProjectFlag {
	var out []ProjectFlag
	for _, pid := range slices.Sorted(maps.Keys(s.state.Flags)) {
		for _, f := range s.state.Flags[pid] {
			if f.References(enumTypeID) {
				out = append(out, ProjectFlag{ProjectID: pid, Flag: f.Clone()})
			}
		}
	}
	return out
}

// FlagsByEnumValue returns the project's enum flags of the given type that
// hold value.
func (s *Store) FlagsByEnumValue(projectID, enumTypeID, value string) []domain.Flag {
	var out []domain.Flag
	for _, f := range s.state.Flags[projectID] {
		if f.References(enumTypeID) && f.EnumValue == value {
			out = append(out, f.Clone())
		}
	}
	return out
}

// RenderList returns the project's visible tree in display order.
func (s *Store) RenderList(projectID string) []flagtree.RenderNode {
	return flagtree.BuildRenderList(s.Flags(projectID), s.state.CollapsedFlagIDs)
}

// ParentCandidates returns the flags in the project that flagID may be
// moved under.
func (s *Store) ParentCandidates(projectID, flagID string) []domain.Flag {
	return flagtree.ParentCandidates(s.Flags(projectID), flagID)
}
