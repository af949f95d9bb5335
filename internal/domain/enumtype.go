package domain

import "slices"

// EnumType is a named, ordered list of allowed values shared by enum flags.
// Values[0] is the implicit default.
type EnumType struct {
	ID     string
	Name   string
	Values []string
}

// Default returns the first value, or "" when the type has no values.
func (e EnumType) Default() string {
	if len(e.Values) == 0 {
		return ""
	}
	return e.Values[0]
}

// HasValue reports whether v is one of the allowed values (case-sensitive).
func (e EnumType) HasValue(v string) bool {
	return slices.Contains(e.Values, v)
}

// Clone returns a copy that shares no backing storage with e.
func (e EnumType) Clone() EnumType {
	e.Values = slices.Clone(e.Values)
	return e
}
