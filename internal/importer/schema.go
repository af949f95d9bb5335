package importer

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

//go:embed default_seed.yaml
var defaultSeed []byte

// SeedSchema is the dataset an empty workspace is initialised from.
type SeedSchema struct {
	SelectedProject string         `json:"selected_project,omitempty" yaml:"selected_project,omitempty"`
	Projects        []ProjectSeed  `json:"projects" yaml:"projects" validate:"required,min=1,dive"`
	EnumTypes       []EnumTypeSeed `json:"enum_types,omitempty" yaml:"enum_types,omitempty" validate:"dive"`
	Flags           []FlagSeed     `json:"flags,omitempty" yaml:"flags,omitempty" validate:"dive"`
}

type ProjectSeed struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Name string `json:"name" yaml:"name" validate:"required"`
}

// EnumTypeSeed lists values in order; the first is the default.
type EnumTypeSeed struct {
	ID     string   `json:"id" yaml:"id" validate:"required"`
	Name   string   `json:"name" yaml:"name" validate:"required"`
	Values []string `json:"values" yaml:"values" validate:"required,min=1,dive,required"`
}

// FlagSeed is one flag. Enabled applies to boolean flags; EnumType and
// EnumValue to enum flags, where an empty EnumValue means the type's default.
// Timestamps are RFC 3339; UpdatedAt defaults to CreatedAt.
type FlagSeed struct {
	ID        string `json:"id" yaml:"id" validate:"required"`
	Project   string `json:"project" yaml:"project" validate:"required"`
	Parent    string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Type      string `json:"type" yaml:"type" validate:"required,oneof=boolean enum"`
	Enabled   bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	EnumType  string `json:"enum_type,omitempty" yaml:"enum_type,omitempty"`
	EnumValue string `json:"enum_value,omitempty" yaml:"enum_value,omitempty"`
	CreatedAt string `json:"created_at,omitempty" yaml:"created_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// LoadSeed reads a seed file. The format follows the extension: .json is
// JSON, .yaml and .yml are YAML.
func LoadSeed(path string) (*SeedSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseSeedJSON(data)
	case ".yaml", ".yml":
		return ParseSeedYAML(data)
	default:
		return nil, fmt.Errorf("unsupported seed file extension %q (want .json, .yaml or .yml)", ext)
	}
}

// DefaultSeed returns the built-in dataset.
func DefaultSeed() *SeedSchema {
	schema, err := ParseSeedYAML(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return schema
}

func ParseSeedJSON(data []byte) (*SeedSchema, error) {
	var schema SeedSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing seed JSON: %w", err)
	}
	return &schema, nil
}

func ParseSeedYAML(data []byte) (*SeedSchema, error) {
	var schema SeedSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing seed YAML: %w", err)
	}
	return &schema, nil
}
