package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fluttering/flagctl/internal/db"
)

// View state keys.
const (
	KeySelectedProject = "selected_project"
	KeySidebarOpen     = "sidebar_open"
)

// SQLiteViewStateRepo implements ViewStateRepo using a SQLite database.
type SQLiteViewStateRepo struct {
	db db.DBTX
}

// NewSQLiteViewStateRepo creates a new SQLiteViewStateRepo.
func NewSQLiteViewStateRepo(conn db.DBTX) *SQLiteViewStateRepo {
	return &SQLiteViewStateRepo{db: conn}
}

func (r *SQLiteViewStateRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM view_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("view state %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading view state %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteViewStateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO view_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing view state %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteViewStateRepo) ListCollapsed(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT flag_id FROM collapsed_flags ORDER BY flag_id`)
	if err != nil {
		return nil, fmt.Errorf("listing collapsed flags: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning collapsed flag: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *SQLiteViewStateRepo) ReplaceCollapsed(ctx context.Context, flagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collapsed_flags`); err != nil {
		return fmt.Errorf("clearing collapsed flags: %w", err)
	}
	for _, id := range flagIDs {
		if _, err := r.db.ExecContext(ctx, `INSERT INTO collapsed_flags (flag_id) VALUES (?)`, id); err != nil {
			return fmt.Errorf("inserting collapsed flag %s: %w", id, err)
		}
	}
	return nil
}
