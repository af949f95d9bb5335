package domain

// FlagType discriminates the Flag variants.
type FlagType string

const (
	FlagBoolean FlagType = "boolean"
	FlagEnum    FlagType = "enum"
)

// ValidFlagTypes is the canonical set of accepted flag type strings.
var ValidFlagTypes = map[string]bool{
	string(FlagBoolean): true,
	string(FlagEnum):    true,
}

// Valid reports whether t is one of the known flag types.
func (t FlagType) Valid() bool {
	return ValidFlagTypes[string(t)]
}
