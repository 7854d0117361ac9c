package common

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is a single store transaction. Rollback after Commit is a no-op.
type Tx interface {
	Exec(ctx context.Context, query string, args ...any) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SQLAdapter is the database/sql backed part shared by the mysql, sqlite and
// sqlserver adapters.
type SQLAdapter struct {
	DriverName string
	DB         *sql.DB
}

func (a *SQLAdapter) Open(ctx context.Context, dsn string) error {
	db, err := sql.Open(a.DriverName, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	a.DB = db
	return nil
}

func (a *SQLAdapter) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func (a *SQLAdapter) Ping(ctx context.Context) error {
	if a.DB == nil {
		return fmt.Errorf("not connected")
	}
	return a.DB.PingContext(ctx)
}

func (a *SQLAdapter) BeginTx(ctx context.Context) (Tx, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("not connected")
	}
	tx, err := a.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &SQLTx{tx: tx}, nil
}

// SQLTx wraps *sql.Tx to implement Tx.
type SQLTx struct {
	tx *sql.Tx
}

func (t *SQLTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *SQLTx) Commit(ctx context.Context) error { return t.tx.Commit() }

func (t *SQLTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return err
	}
	return nil
}
