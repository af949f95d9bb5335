package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fluttering/flagctl/internal/db"
)

// FailingUoW runs transactions against DB but makes one write fail: the
// Nth ExecContext whose statement contains Match (any statement when Match
// is empty). Nth counts from 1 and defaults to 1. Reads are never counted.
type FailingUoW struct {
	DB    *sql.DB
	Match string
	Nth   int
	Err   error

	// Execs records every statement attempted, including the failed one.
	Execs []string
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &failingTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow  *FailingUoW
	seen int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	f.uow.Execs = append(f.uow.Execs, query)
	if strings.Contains(query, f.uow.Match) {
		f.seen++
		if f.seen == max(f.uow.Nth, 1) {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
