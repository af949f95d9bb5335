package domain

import "time"

// Flag is a named configuration toggle. It is a tagged union on Type:
//
//   - FlagBoolean uses BoolValue and may be the parent of other flags.
//   - FlagEnum uses EnumTypeID and EnumValue; EnumValue is always one of the
//     referenced EnumType's values, and an enum flag is never a parent.
//
// Fields belonging to the other variant are kept at their zero value.
type Flag struct {
	ID       string
	Name     string
	Type     FlagType
	ParentID *string

	BoolValue bool

	EnumTypeID string
	EnumValue  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooleanFlag creates a boolean flag with value false.
func NewBooleanFlag(id, name string, parentID *string, now time.Time) Flag {
	return Flag{
		ID:        id,
		Name:      name,
		Type:      FlagBoolean,
		ParentID:  clonePtr(parentID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewEnumFlag creates an enum flag holding the type's default value.
func NewEnumFlag(id, name string, parentID *string, et EnumType, now time.Time) Flag {
	return Flag{
		ID:         id,
		Name:       name,
		Type:       FlagEnum,
		ParentID:   clonePtr(parentID),
		EnumTypeID: et.ID,
		EnumValue:  et.Default(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (f Flag) IsBoolean() bool { return f.Type == FlagBoolean }
func (f Flag) IsEnum() bool    { return f.Type == FlagEnum }
func (f Flag) IsRoot() bool    { return f.ParentID == nil }

// HasParent reports whether f is a direct child of parentID.
func (f Flag) HasParent(parentID string) bool {
	return f.ParentID != nil && *f.ParentID == parentID
}

// References reports whether f is an enum flag of the given type.
func (f Flag) References(enumTypeID string) bool {
	return f.Type == FlagEnum && f.EnumTypeID == enumTypeID
}

// DisplayValue renders the current value as text: "on"/"off" or the enum value.
func (f Flag) DisplayValue() string {
	switch f.Type {
	case FlagBoolean:
		if f.BoolValue {
			return "on"
		}
		return "off"
	case FlagEnum:
		return f.EnumValue
	default:
		return ""
	}
}

// Clone returns a copy whose ParentID does not alias f's.
func (f Flag) Clone() Flag {
	f.ParentID = clonePtr(f.ParentID)
	return f
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
