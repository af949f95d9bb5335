package formatter

import (
	"io"
	"time"

	"github.com/fluttering/flagctl/internal/domain"
	"github.com/goccy/go-json"
)

// FlagJSON is the machine-readable form of a flag.
type FlagJSON struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ParentID  *string   `json:"parent_id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Value     any       `json:"value"`
	EnumType  string    `json:"enum_type_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EnumTypeJSON struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Values []string `json:"values"`
	Flags  int      `json:"flags"`
}

// NewFlagJSON converts a flag. Value is a bool for boolean flags and the
// selected value for enum flags.
func NewFlagJSON(projectID string, f domain.Flag) FlagJSON {
	out := FlagJSON{
		ID:        f.ID,
		ProjectID: projectID,
		ParentID:  f.ParentID,
		Name:      f.Name,
		Type:      string(f.Type),
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if f.IsEnum() {
		out.Value = f.EnumValue
		out.EnumType = f.EnumTypeID
	} else {
		out.Value = f.BoolValue
	}
	return out
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
