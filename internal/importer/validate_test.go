package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validMinimalSeed() *SeedSchema {
	return &SeedSchema{
		Projects: []ProjectSeed{{ID: "p1", Name: "Production"}},
		EnumTypes: []EnumTypeSeed{
			{ID: "region", Name: "Region", Values: []string{"eu", "us"}},
		},
		Flags: []FlagSeed{
			{ID: "f1", Project: "p1", Name: "checkout", Type: "boolean"},
			{ID: "f2", Project: "p1", Parent: "f1", Name: "region", Type: "enum", EnumType: "region"},
		},
	}
}

func errorText(errs []error) string {
	var parts []string
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

func TestValidateSeed_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateSeed(validMinimalSeed()))
}

func TestValidateSeed_StructRules(t *testing.T) {
	seed := &SeedSchema{
		EnumTypes: []EnumTypeSeed{{ID: "t", Name: "T"}},
		Flags: []FlagSeed{
			{ID: "f1", Project: "p1", Name: "x", Type: "string"},
			{ID: "f2", Project: "p1", Type: "boolean", CreatedAt: "yesterday"},
		},
	}
	text := errorText(ValidateSeed(seed))

	assert.Contains(t, text, "projects is required")
	assert.Contains(t, text, "enum_types[0].values is required")
	assert.Contains(t, text, `flags[0].type: invalid value "string"`)
	assert.Contains(t, text, "flags[1].name is required")
	assert.Contains(t, text, `flags[1].created_at: invalid timestamp "yesterday"`)
}

func TestValidateSeed_BlankEnumValue(t *testing.T) {
	seed := validMinimalSeed()
	seed.EnumTypes[0].Values = []string{"eu", ""}
	assert.Contains(t, errorText(ValidateSeed(seed)), "enum_types[0].values[1] is required")
}

func TestValidateSeed_Referential(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SeedSchema)
		want   string
	}{
		{"duplicate project", func(s *SeedSchema) {
			s.Projects = append(s.Projects, ProjectSeed{ID: "p1", Name: "Again"})
		}, `projects[1].id: duplicate id "p1"`},
		{"unknown selected project", func(s *SeedSchema) {
			s.SelectedProject = "nope"
		}, `selected_project: unknown project "nope"`},
		{"unknown flag project", func(s *SeedSchema) {
			s.Flags[0].Project = "p9"
		}, `flags[0].project: unknown project "p9"`},
		{"duplicate flag", func(s *SeedSchema) {
			s.Flags[1].ID = "f1"
			s.Flags[1].Parent = ""
		}, `flags[1].id: duplicate id "f1"`},
		{"unknown parent", func(s *SeedSchema) {
			s.Flags[1].Parent = "ghost"
		}, `flags[1].parent: unknown flag "ghost"`},
		{"self parent", func(s *SeedSchema) {
			s.Flags[0].Parent = "f1"
		}, "cannot be its own parent"},
		{"enum parent", func(s *SeedSchema) {
			s.Flags = append(s.Flags, FlagSeed{ID: "f3", Project: "p1", Parent: "f2", Name: "x", Type: "boolean"})
		}, `flags[2].parent: "f2" is not a boolean flag`},
		{"parent in other project", func(s *SeedSchema) {
			s.Projects = append(s.Projects, ProjectSeed{ID: "p2", Name: "Staging"})
			s.Flags = append(s.Flags, FlagSeed{ID: "f3", Project: "p2", Parent: "f1", Name: "x", Type: "boolean"})
		}, "belongs to another project"},
		{"unknown enum type", func(s *SeedSchema) {
			s.Flags[1].EnumType = "tier"
		}, `flags[1].enum_type: unknown enum type "tier"`},
		{"bad enum value", func(s *SeedSchema) {
			s.Flags[1].EnumValue = "EU"
		}, `flags[1].enum_value: "EU" is not a value of region`},
		{"boolean with enum fields", func(s *SeedSchema) {
			s.Flags[0].EnumValue = "eu"
		}, "boolean flag must not set enum_type or enum_value"},
		{"enum enabled", func(s *SeedSchema) {
			s.Flags[1].Enabled = true
		}, "enum flag must not set enabled"},
		{"duplicate enum type name", func(s *SeedSchema) {
			s.EnumTypes = append(s.EnumTypes, EnumTypeSeed{ID: "r2", Name: "REGION", Values: []string{"x"}})
		}, `enum_types[1].name: "REGION" duplicates enum_types[0]`},
		{"duplicate enum values", func(s *SeedSchema) {
			s.EnumTypes[0].Values = []string{"eu", "eu"}
		}, "enum_types[0].values: duplicate values"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seed := validMinimalSeed()
			tc.mutate(seed)
			assert.Contains(t, errorText(ValidateSeed(seed)), tc.want)
		})
	}
}

func TestValidateSeed_Cycle(t *testing.T) {
	seed := &SeedSchema{
		Projects: []ProjectSeed{{ID: "p1", Name: "Production"}},
		Flags: []FlagSeed{
			{ID: "a", Project: "p1", Parent: "c", Name: "a", Type: "boolean"},
			{ID: "b", Project: "p1", Parent: "a", Name: "b", Type: "boolean"},
			{ID: "c", Project: "p1", Parent: "b", Name: "c", Type: "boolean"},
			{ID: "d", Project: "p1", Parent: "a", Name: "d", Type: "boolean"},
		},
	}
	text := errorText(ValidateSeed(seed))
	assert.Contains(t, text, `flags[0].parent: cycle through "a"`)
	assert.Contains(t, text, `flags[2].parent: cycle through "c"`)
	assert.NotContains(t, text, `cycle through "d"`)
}

func TestValidateSeed_CollectsAllErrors(t *testing.T) {
	seed := validMinimalSeed()
	seed.Projects[0].Name = ""
	seed.Flags[1].EnumType = "tier"
	assert.Len(t, ValidateSeed(seed), 2)
}
