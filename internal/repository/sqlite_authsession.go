package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fluttering/flagctl/internal/db"
	"github.com/fluttering/flagctl/internal/domain"
)

// SQLiteAuthSessionRepo implements AuthSessionRepo using a SQLite database.
type SQLiteAuthSessionRepo struct {
	db db.DBTX
}

// NewSQLiteAuthSessionRepo creates a new SQLiteAuthSessionRepo.
func NewSQLiteAuthSessionRepo(conn db.DBTX) *SQLiteAuthSessionRepo {
	return &SQLiteAuthSessionRepo{db: conn}
}

func (r *SQLiteAuthSessionRepo) Create(ctx context.Context, s *domain.AuthSession) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_sessions (token, user_name, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		s.Token, s.User, formatTime(s.CreatedAt), formatTime(s.ExpiresAt))
	if err != nil {
		return fmt.Errorf("inserting auth session: %w", err)
	}
	return nil
}

// GetLatest returns the most recently created session, expired or not.
func (r *SQLiteAuthSessionRepo) GetLatest(ctx context.Context) (*domain.AuthSession, error) {
	var s domain.AuthSession
	var createdAt, expiresAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_name, created_at, expires_at FROM auth_sessions
		ORDER BY created_at DESC LIMIT 1`).Scan(&s.Token, &s.User, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("auth session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning auth session: %w", err)
	}
	if s.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if s.ExpiresAt, err = parseTime(expiresAt, "expires_at"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteAuthSessionRepo) Delete(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting auth session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting auth session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("auth session: %w", ErrNotFound)
	}
	return nil
}

// DeleteExpired removes sessions whose expiry is at or before now and
// returns how many were removed.
func (r *SQLiteAuthSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE expires_at <= ?`, formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("deleting expired auth sessions: %w", err)
	}
	return res.RowsAffected()
}
