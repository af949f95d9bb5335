// Package store owns the flag workspace state and every mutation on it.
//
// Each mutation works on a private copy of the state and swaps it in only
// when every precondition holds, so a rejected call never leaves a partial
// change behind. A Store is not safe for concurrent use: one goroutine (a CLI
// command or the TUI update loop) owns it.
package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/fluttering/flagctl/internal/enumtype"
	"github.com/fluttering/flagctl/internal/flagtree"
	"github.com/google/uuid"
)

// Store holds a State and applies validated mutations to it.
type Store struct {
	state State
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for CreatedAt and UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the ID source for new flags and enum types.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns a Store holding a copy of initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state: initial.Clone(),
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FlagUpdate lists the fields UpdateFlag may change. Nil fields are left as is.
type FlagUpdate struct {
	Name       *string
	Type       *domain.FlagType
	EnumTypeID *string
}

// SelectProject sets the selected project. It does not check that the
// project exists.
func (s *Store) SelectProject(projectID string) {
	s.state.SelectedProjectID = projectID
}

// SetSidebarOpen records whether the project sidebar is shown.
func (s *Store) SetSidebarOpen(open bool) {
	s.state.SidebarOpen = open
}

// AddFlag creates a flag at the end of the project's list and returns its ID.
// Boolean flags start off; enum flags start at their type's default value.
// A non-nil parentID must name a boolean flag in the same project.
func (s *Store) AddFlag(projectID, name string, typ domain.FlagType, parentID *string, enumTypeID string) (string, error) {
	next := s.state.Clone()
	if !next.hasProject(projectID) {
		return "", fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if !typ.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, typ)
	}
	if parentID != nil {
		if err := next.checkParent(projectID, *parentID); err != nil {
			return "", err
		}
	}

	now := s.now()
	id := s.newID()
	var flag domain.Flag
	switch typ {
	case domain.FlagBoolean:
		flag = domain.NewBooleanFlag(id, name, parentID, now)
	case domain.FlagEnum:
		et, err := next.usableEnumType(enumTypeID)
		if err != nil {
			return "", err
		}
		flag = domain.NewEnumFlag(id, name, parentID, et, now)
	}

	next.Flags[projectID] = append(next.Flags[projectID], flag)
	s.state = next
	return id, nil
}

// UpdateFlag renames a flag and/or changes its type or enum type.
//
// Switching to enum requires EnumTypeID and sets the value to the type's
// default; switching to boolean sets the value to off. A boolean flag with
// direct children cannot change type. Changing the enum type of an enum flag
// resets its value to the new type's default.
func (s *Store) UpdateFlag(projectID, flagID string, u FlagUpdate) error {
	next := s.state.Clone()
	idx := next.flagIndex(projectID, flagID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFlagNotFound, flagID)
	}
	flags := next.Flags[projectID]
	f := flags[idx]

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return ErrEmptyName
		}
		f.Name = name
	}

	target := f.Type
	if u.Type != nil {
		if !u.Type.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidType, *u.Type)
		}
		target = *u.Type
	}

	if target != f.Type && f.IsBoolean() && len(flagtree.GetDirectChildren(flags, f.ID)) > 0 {
		return fmt.Errorf("%w: %s cannot stop being boolean", ErrHasChildren, f.ID)
	}

	switch target {
	case domain.FlagBoolean:
		if u.EnumTypeID != nil && *u.EnumTypeID != "" {
			return fmt.Errorf("%w: boolean flags have no enum type", ErrNotEnum)
		}
		if f.Type != domain.FlagBoolean {
			f.Type = domain.FlagBoolean
			f.BoolValue = false
			f.EnumTypeID = ""
			f.EnumValue = ""
		}
	case domain.FlagEnum:
		typeID := f.EnumTypeID
		if u.EnumTypeID != nil {
			typeID = *u.EnumTypeID
		}
		if f.Type != domain.FlagEnum || typeID != f.EnumTypeID {
			et, err := next.usableEnumType(typeID)
			if err != nil {
				return err
			}
			f.Type = domain.FlagEnum
			f.BoolValue = false
			f.EnumTypeID = et.ID
			f.EnumValue = et.Default()
		}
	}

	f.UpdatedAt = s.now()
	flags[idx] = f
	s.state = next
	return nil
}

// ToggleFlagValue flips a boolean flag's value.
func (s *Store) ToggleFlagValue(projectID, flagID string) error {
	next := s.state.Clone()
	idx := next.flagIndex(projectID, flagID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFlagNotFound, flagID)
	}
	f := &next.Flags[projectID][idx]
	if !f.IsBoolean() {
		return fmt.Errorf("%w: %s", ErrNotBoolean, flagID)
	}
	f.BoolValue = !f.BoolValue
	f.UpdatedAt = s.now()
	s.state = next
	return nil
}

// DeleteFlag removes a flag. Its direct children become roots; deeper
// descendants keep their parents. The flag is also dropped from the
// collapsed set.
func (s *Store) DeleteFlag(projectID, flagID string) error {
	next := s.state.Clone()
	idx := next.flagIndex(projectID, flagID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFlagNotFound, flagID)
	}
	now := s.now()
	old := next.Flags[projectID]
	kept := make([]domain.Flag, 0, len(old)-1)
	for _, f := range old {
		if f.ID == flagID {
			continue
		}
		if f.HasParent(flagID) {
			f.ParentID = nil
			f.UpdatedAt = now
		}
		kept = append(kept, f)
	}
	next.Flags[projectID] = kept
	delete(next.CollapsedFlagIDs, flagID)
	s.state = next
	return nil
}

// SetFlagParent moves a flag under parentID, or to the root when parentID
// is nil. The parent must be a boolean flag in the same project and must not
// be the flag itself or one of its descendants.
func (s *Store) SetFlagParent(projectID, flagID string, parentID *string) error {
	next := s.state.Clone()
	if parentID != nil {
		if *parentID == flagID {
			return fmt.Errorf("%w: %s cannot be its own parent", ErrCycle, flagID)
		}
		if err := next.checkParent(projectID, *parentID); err != nil {
			return err
		}
	}
	idx := next.flagIndex(projectID, flagID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFlagNotFound, flagID)
	}
	flags := next.Flags[projectID]
	if parentID != nil && flagtree.HasDescendant(flags, flagID, *parentID) {
		return fmt.Errorf("%w: %s is a descendant of %s", ErrCycle, *parentID, flagID)
	}

	f := &flags[idx]
	if parentID == nil {
		f.ParentID = nil
	} else {
		f.ParentID = domain.StringPtr(*parentID)
	}
	f.UpdatedAt = s.now()
	s.state = next
	return nil
}

// ToggleFlagCollapsed flips the flag's membership in the collapsed set and
// returns the new membership. The flag does not need to exist.
func (s *Store) ToggleFlagCollapsed(flagID string) bool {
	if s.state.CollapsedFlagIDs[flagID] {
		delete(s.state.CollapsedFlagIDs, flagID)
		return false
	}
	s.state.CollapsedFlagIDs[flagID] = true
	return true
}

// CreateEnumType appends a new enum type and returns its ID. The trimmed name
// must be non-empty and unique ignoring case; values must be non-empty,
// non-blank and unique.
func (s *Store) CreateEnumType(name string, values []string) (string, error) {
	next := s.state.Clone()
	name = strings.TrimSpace(name)
	if err := next.checkEnumType(name, values, ""); err != nil {
		return "", err
	}
	id := s.newID()
	next.EnumTypes = append(next.EnumTypes, domain.EnumType{
		ID:     id,
		Name:   name,
		Values: append([]string(nil), values...),
	})
	s.state = next
	return id, nil
}

// UpdateEnumType replaces an enum type's name and values. Flags in any
// project holding a value that no longer exists are reset to the new default.
// It returns the number of flags reset.
func (s *Store) UpdateEnumType(id, name string, values []string) (int, error) {
	next := s.state.Clone()
	idx := next.enumTypeIndex(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", ErrEnumTypeNotFound, id)
	}
	name = strings.TrimSpace(name)
	if err := next.checkEnumType(name, values, id); err != nil {
		return 0, err
	}

	et := domain.EnumType{ID: id, Name: name, Values: append([]string(nil), values...)}
	next.EnumTypes[idx] = et

	now := s.now()
	reset := 0
	for _, flags := range next.Flags {
		for i := range flags {
			f := &flags[i]
			if f.References(id) && !et.HasValue(f.EnumValue) {
				f.EnumValue = et.Default()
				f.UpdatedAt = now
				reset++
			}
		}
	}
	s.state = next
	return reset, nil
}

// DeleteEnumType removes an enum type and every enum flag of that type in
// every project. It returns the number of flags removed.
func (s *Store) DeleteEnumType(id string) (int, error) {
	next := s.state.Clone()
	idx := next.enumTypeIndex(id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", ErrEnumTypeNotFound, id)
	}
	next.EnumTypes = append(next.EnumTypes[:idx], next.EnumTypes[idx+1:]...)

	removed := 0
	for pid, flags := range next.Flags {
		kept := flags[:0]
		for _, f := range flags {
			if f.References(id) {
				delete(next.CollapsedFlagIDs, f.ID)
				removed++
				continue
			}
			kept = append(kept, f)
		}
		next.Flags[pid] = kept
	}
	s.state = next
	return removed, nil
}

// SetEnumFlagValue sets an enum flag's value. value must be one of its
// type's values.
func (s *Store) SetEnumFlagValue(projectID, flagID, value string) error {
	next := s.state.Clone()
	idx := next.flagIndex(projectID, flagID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFlagNotFound, flagID)
	}
	f := &next.Flags[projectID][idx]
	if !f.IsEnum() {
		return fmt.Errorf("%w: %s", ErrNotEnum, flagID)
	}
	etIdx := next.enumTypeIndex(f.EnumTypeID)
	if etIdx < 0 {
		return fmt.Errorf("%w: %s", ErrEnumTypeNotFound, f.EnumTypeID)
	}
	if !next.EnumTypes[etIdx].HasValue(value) {
		return fmt.Errorf("%w: %q", ErrInvalidValue, value)
	}
	f.EnumValue = value
	f.UpdatedAt = s.now()
	s.state = next
	return nil
}

func (s *State) checkParent(projectID, parentID string) error {
	idx := s.flagIndex(projectID, parentID)
	if idx < 0 || !s.Flags[projectID][idx].IsBoolean() {
		return fmt.Errorf("%w: %s", ErrInvalidParent, parentID)
	}
	return nil
}

func (s *State) usableEnumType(id string) (domain.EnumType, error) {
	idx := s.enumTypeIndex(id)
	if idx < 0 {
		return domain.EnumType{}, fmt.Errorf("%w: %s", ErrEnumTypeNotFound, id)
	}
	et := s.EnumTypes[idx]
	if len(et.Values) == 0 {
		return domain.EnumType{}, fmt.Errorf("%w: %s has no values", ErrInvalidValues, id)
	}
	return et, nil
}

func (s *State) checkEnumType(name string, values []string, excludeID string) error {
	if name == "" {
		return ErrEmptyName
	}
	if !enumtype.IsNameUnique(name, s.EnumTypes, excludeID) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if len(values) == 0 || !enumtype.AreValuesUnique(values) {
		return ErrInvalidValues
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidValues
		}
	}
	return nil
}
