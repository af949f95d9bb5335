package importer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/fluttering/flagctl/internal/enumtype"
	"github.com/go-playground/validator/v10"
)

var seedValidate = validator.New(validator.WithRequiredStructEnabled())

// ValidateSeed checks the seed for errors before conversion. It returns every
// problem found rather than stopping at the first.
func ValidateSeed(schema *SeedSchema) []error {
	var errs []error

	if err := seedValidate.Struct(schema); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []error{fmt.Errorf("validating seed: %w", err)}
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError(fe))
		}
	}

	projects := make(map[string]bool)
	for i, p := range schema.Projects {
		if p.ID != "" && projects[p.ID] {
			errs = append(errs, fmt.Errorf("projects[%d].id: duplicate id %q", i, p.ID))
		}
		projects[p.ID] = true
	}
	if schema.SelectedProject != "" && !projects[schema.SelectedProject] {
		errs = append(errs, fmt.Errorf("selected_project: unknown project %q", schema.SelectedProject))
	}

	errs = append(errs, validateEnumTypes(schema.EnumTypes)...)
	errs = append(errs, validateFlags(schema.Flags, projects, schema.EnumTypes)...)
	return errs
}

// fieldError turns a validator failure into "flags[0].type: ..." form.
func fieldError(fe validator.FieldError) error {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	path = toSnake(path)
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", path)
	case "min":
		return fmt.Errorf("%s must have at least %s entries", path, fe.Param())
	case "oneof":
		return fmt.Errorf("%s: invalid value %q (want one of %s)", path, fe.Value(), fe.Param())
	case "datetime":
		return fmt.Errorf("%s: invalid timestamp %q (expected RFC 3339)", path, fe.Value())
	default:
		return fmt.Errorf("%s: failed %s check", path, fe.Tag())
	}
}

// toSnake converts Go field names in a namespace to the seed's key names,
// e.g. "EnumTypes[0].Values[1]" to "enum_types[0].values[1]".
func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && s[i-1] != '.' && s[i-1] != '[' {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validateEnumTypes(types []EnumTypeSeed) []error {
	var errs []error
	ids := make(map[string]bool)
	for i, et := range types {
		prefix := fmt.Sprintf("enum_types[%d]", i)
		if et.ID != "" && ids[et.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, et.ID))
		}
		ids[et.ID] = true

		if strings.TrimSpace(et.Name) != et.Name {
			errs = append(errs, fmt.Errorf("%s.name: %q has surrounding whitespace", prefix, et.Name))
		}
		for j := 0; j < i; j++ {
			if strings.EqualFold(types[j].Name, et.Name) {
				errs = append(errs, fmt.Errorf("%s.name: %q duplicates enum_types[%d]", prefix, et.Name, j))
				break
			}
		}
		if !enumtype.AreValuesUnique(et.Values) {
			errs = append(errs, fmt.Errorf("%s.values: duplicate values", prefix))
		}
	}
	return errs
}

func validateFlags(flags []FlagSeed, projects map[string]bool, types []EnumTypeSeed) []error {
	var errs []error

	typesByID := make(map[string]EnumTypeSeed, len(types))
	for _, et := range types {
		typesByID[et.ID] = et
	}
	byID := make(map[string]FlagSeed, len(flags))
	for i, f := range flags {
		prefix := fmt.Sprintf("flags[%d]", i)
		if f.ID != "" {
			if _, dup := byID[f.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, f.ID))
			}
			byID[f.ID] = f
		}
		if f.Project != "" && !projects[f.Project] {
			errs = append(errs, fmt.Errorf("%s.project: unknown project %q", prefix, f.Project))
		}
		if f.Name != "" && strings.TrimSpace(f.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is blank", prefix))
		}

		switch f.Type {
		case "boolean":
			if f.EnumType != "" || f.EnumValue != "" {
				errs = append(errs, fmt.Errorf("%s: boolean flag must not set enum_type or enum_value", prefix))
			}
		case "enum":
			if f.Enabled {
				errs = append(errs, fmt.Errorf("%s: enum flag must not set enabled", prefix))
			}
			et, ok := typesByID[f.EnumType]
			if !ok {
				errs = append(errs, fmt.Errorf("%s.enum_type: unknown enum type %q", prefix, f.EnumType))
				break
			}
			if f.EnumValue != "" && !slices.Contains(et.Values, f.EnumValue) {
				errs = append(errs, fmt.Errorf("%s.enum_value: %q is not a value of %s", prefix, f.EnumValue, et.ID))
			}
		}
	}

	for i, f := range flags {
		if f.Parent == "" {
			continue
		}
		prefix := fmt.Sprintf("flags[%d].parent", i)
		parent, ok := byID[f.Parent]
		switch {
		case f.Parent == f.ID:
			errs = append(errs, fmt.Errorf("%s: flag %q cannot be its own parent", prefix, f.ID))
		case !ok:
			errs = append(errs, fmt.Errorf("%s: unknown flag %q", prefix, f.Parent))
		case parent.Project != f.Project:
			errs = append(errs, fmt.Errorf("%s: %q belongs to another project", prefix, f.Parent))
		case parent.Type != "boolean":
			errs = append(errs, fmt.Errorf("%s: %q is not a boolean flag", prefix, f.Parent))
		}
	}

	errs = append(errs, detectCycles(flags, byID)...)
	return errs
}

// detectCycles reports each flag whose parent chain loops back on itself.
func detectCycles(flags []FlagSeed, byID map[string]FlagSeed) []error {
	var errs []error
	for i, f := range flags {
		seen := map[string]bool{f.ID: true}
		for cur := f.Parent; cur != "" && cur != f.ID; {
			if seen[cur] {
				break
			}
			seen[cur] = true
			next, ok := byID[cur]
			if !ok {
				break
			}
			if next.Parent == f.ID {
				errs = append(errs, fmt.Errorf("flags[%d].parent: cycle through %q", i, f.ID))
				break
			}
			cur = next.Parent
		}
	}
	return errs
}
