package seeder

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Masterminds/squirrel"
	"github.com/Rana718/custseed/internal/database/common"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// BatchLoader persists batches; the run controller only talks to this.
type BatchLoader interface {
	LoadBatch(ctx context.Context, batch Batch) (int, error)
	Truncate(ctx context.Context) error
}

// Store is the part of a database adapter the loader needs.
type Store interface {
	BeginTx(ctx context.Context) (common.Tx, error)
	Dialect() common.Dialect
}

// Loader writes each batch as multi-row INSERTs inside one transaction.
type Loader struct {
	store   Store
	table   string
	literal bool
}

type statement struct {
	sql  string
	args []any
}

// NewLoader returns a loader for table. With literal set, values are inlined
// as escaped SQL literals; otherwise they are sent as bind parameters.
func NewLoader(store Store, table string, literal bool) (*Loader, error) {
	if !isValidIdentifier(table) {
		return nil, fmt.Errorf("invalid table name: %s", table)
	}
	return &Loader{store: store, table: table, literal: literal}, nil
}

// isValidIdentifier checks if a string is a valid SQL identifier
func isValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// LoadBatch commits batch in a single transaction and returns len(batch).
// On any failure the transaction is rolled back and no row of batch persists.
func (l *Loader) LoadBatch(ctx context.Context, batch Batch) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	statements, err := l.buildStatements(batch)
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	err = l.inTx(ctx, func(tx common.Tx) error {
		for _, st := range statements {
			if err := tx.Exec(ctx, st.sql, st.args...); err != nil {
				return fmt.Errorf("failed to insert batch: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

// Truncate empties the target table in its own transaction.
func (l *Loader) Truncate(ctx context.Context) error {
	query := fmt.Sprintf(l.store.Dialect().TruncateSQL, l.table)
	return l.inTx(ctx, func(tx common.Tx) error {
		if err := tx.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", l.table, err)
		}
		return nil
	})
}

// inTx runs fn inside a transaction. It commits when fn succeeds and rolls
// back on every other exit, panics included.
func (l *Loader) inTx(ctx context.Context, fn func(tx common.Tx) error) (err error) {
	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// The caller's context may already be cancelled; the rollback still has to go out.
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && err != nil {
			err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// buildStatements splits batch into as few INSERTs as the dialect allows.
func (l *Loader) buildStatements(batch Batch) ([]statement, error) {
	d := l.store.Dialect()

	per := d.RowsPerStatement(len(customerColumns), !l.literal)
	if per <= 0 || per > len(batch) {
		per = len(batch)
	}

	statements := make([]statement, 0, (len(batch)+per-1)/per)
	for start := 0; start < len(batch); start += per {
		end := min(start+per, len(batch))
		query, args, err := l.insertSQL(d, batch[start:end])
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement{sql: query, args: args})
	}
	return statements, nil
}

func (l *Loader) insertSQL(d common.Dialect, rows Batch) (string, []any, error) {
	format := d.Placeholder
	if l.literal {
		// Literal values may contain '?', which any other format would rewrite.
		format = squirrel.Question
	}

	ins := squirrel.Insert(l.table).Columns(customerColumns...).PlaceholderFormat(format)
	for _, r := range rows {
		if l.literal {
			ins = ins.Values(
				squirrel.Expr(d.QuoteString(r.Name)),
				squirrel.Expr(d.QuoteString(r.Email)),
				squirrel.Expr(d.QuoteTime(r.CreatedAt)),
			)
			continue
		}
		ins = ins.Values(r.Name, r.Email, r.CreatedAt)
	}
	return ins.ToSql()
}
