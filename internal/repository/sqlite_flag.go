package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluttering/flagctl/internal/db"
	"github.com/fluttering/flagctl/internal/domain"
)

// SQLiteFlagRepo implements FlagRepo using a SQLite database.
type SQLiteFlagRepo struct {
	db db.DBTX
}

// NewSQLiteFlagRepo creates a new SQLiteFlagRepo.
func NewSQLiteFlagRepo(conn db.DBTX) *SQLiteFlagRepo {
	return &SQLiteFlagRepo{db: conn}
}

const flagColumns = `id, project_id, parent_id, name, type, bool_value, enum_type_id, enum_value, created_at, updated_at`

func (r *SQLiteFlagRepo) GetByID(ctx context.Context, id string) (*domain.Flag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+flagColumns+` FROM flags WHERE id = ?`, id)
	f, _, err := scanFlag(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("flag: %w", ErrNotFound)
		}
		return nil, err
	}
	return &f, nil
}

func (r *SQLiteFlagRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Flag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+flagColumns+` FROM flags WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing flags: %w", err)
	}
	defer rows.Close()

	var flags []domain.Flag
	for rows.Next() {
		f, _, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, rows.Err()
}

func (r *SQLiteFlagRepo) ListAll(ctx context.Context) (map[string][]domain.Flag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+flagColumns+` FROM flags ORDER BY project_id, position`)
	if err != nil {
		return nil, fmt.Errorf("listing flags: %w", err)
	}
	defer rows.Close()

	byProject := make(map[string][]domain.Flag)
	for rows.Next() {
		f, projectID, err := scanFlag(rows)
		if err != nil {
			return nil, err
		}
		byProject[projectID] = append(byProject[projectID], f)
	}
	return byProject, rows.Err()
}

// ReplaceAll deletes every stored flag and writes flagsByProject, keeping
// each project's slice order as its position.
func (r *SQLiteFlagRepo) ReplaceAll(ctx context.Context, flagsByProject map[string][]domain.Flag) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM flags`); err != nil {
		return fmt.Errorf("clearing flags: %w", err)
	}
	query := `INSERT INTO flags (` + flagColumns + `, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for projectID, flags := range flagsByProject {
		for pos, f := range flags {
			_, err := r.db.ExecContext(ctx, query,
				f.ID,
				projectID,
				nullableString(f.ParentID),
				f.Name,
				string(f.Type),
				boolToInt(f.BoolValue),
				emptyToNull(f.EnumTypeID),
				f.EnumValue,
				formatTime(f.CreatedAt),
				formatTime(f.UpdatedAt),
				pos,
			)
			if err != nil {
				return fmt.Errorf("inserting flag %s: %w", f.ID, err)
			}
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlag(row rowScanner) (domain.Flag, string, error) {
	var (
		f                    domain.Flag
		projectID, typ       string
		parentID, enumTypeID sql.NullString
		boolValue            int
		createdAt, updatedAt string
	)
	err := row.Scan(&f.ID, &projectID, &parentID, &f.Name, &typ, &boolValue,
		&enumTypeID, &f.EnumValue, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return f, "", err
		}
		return f, "", fmt.Errorf("scanning flag: %w", err)
	}

	f.Type = domain.FlagType(typ)
	f.ParentID = stringPtrFromNull(parentID)
	f.BoolValue = intToBool(boolValue)
	f.EnumTypeID = enumTypeID.String
	if f.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return f, "", err
	}
	if f.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return f, "", err
	}
	return f, projectID, nil
}
