package repository

import (
	"context"
	"fmt"

	"github.com/fluttering/flagctl/internal/db"
	"github.com/fluttering/flagctl/internal/domain"
)

// SQLiteEnumTypeRepo implements EnumTypeRepo using a SQLite database.
type SQLiteEnumTypeRepo struct {
	db db.DBTX
}

// NewSQLiteEnumTypeRepo creates a new SQLiteEnumTypeRepo.
func NewSQLiteEnumTypeRepo(conn db.DBTX) *SQLiteEnumTypeRepo {
	return &SQLiteEnumTypeRepo{db: conn}
}

func (r *SQLiteEnumTypeRepo) List(ctx context.Context) ([]domain.EnumType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.name, v.value
		FROM enum_types t
		LEFT JOIN enum_values v ON v.enum_type_id = t.id
		ORDER BY t.position, t.id, v.position`)
	if err != nil {
		return nil, fmt.Errorf("listing enum types: %w", err)
	}
	defer rows.Close()

	var types []domain.EnumType
	for rows.Next() {
		var id, name string
		var value *string
		if err := rows.Scan(&id, &name, &value); err != nil {
			return nil, fmt.Errorf("scanning enum type: %w", err)
		}
		if len(types) == 0 || types[len(types)-1].ID != id {
			types = append(types, domain.EnumType{ID: id, Name: name})
		}
		if value != nil {
			last := &types[len(types)-1]
			last.Values = append(last.Values, *value)
		}
	}
	return types, rows.Err()
}

// ReplaceAll deletes every stored enum type and writes types in order.
// Flags referencing a removed type are deleted by the foreign key cascade.
func (r *SQLiteEnumTypeRepo) ReplaceAll(ctx context.Context, types []domain.EnumType) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM enum_values`); err != nil {
		return fmt.Errorf("clearing enum values: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM enum_types`); err != nil {
		return fmt.Errorf("clearing enum types: %w", err)
	}
	for pos, et := range types {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO enum_types (id, name, position) VALUES (?, ?, ?)`,
			et.ID, et.Name, pos); err != nil {
			return fmt.Errorf("inserting enum type %s: %w", et.ID, err)
		}
		for i, v := range et.Values {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO enum_values (enum_type_id, position, value) VALUES (?, ?, ?)`,
				et.ID, i, v); err != nil {
				return fmt.Errorf("inserting value %q of %s: %w", v, et.ID, err)
			}
		}
	}
	return nil
}
