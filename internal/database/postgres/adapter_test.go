package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errBoom = errors.New("boom")

// fakePool implements pgPool.
type fakePool struct {
	beginTx  pgx.Tx
	beginErr error
	pingErr  error
	closed   bool

	queries []string
	row     fakeRow
}

// fakeRow scans a single fixed value.
type fakeRow struct {
	value any
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *bool:
		*d = r.value.(bool)
	case *int:
		*d = r.value.(int)
	}
	return nil
}

func (p *fakePool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p.queries = append(p.queries, sql)
	return p.row
}

func (p *fakePool) Begin(ctx context.Context) (pgx.Tx, error) {
	if p.beginErr != nil {
		return nil, p.beginErr
	}
	return p.beginTx, nil
}

func (p *fakePool) Ping(ctx context.Context) error { return p.pingErr }
func (p *fakePool) Close()                         { p.closed = true }

// fakePgTx implements pgx.Tx; only Exec, Commit and Rollback are instrumented.
type fakePgTx struct {
	execCalls []struct {
		q    string
		args []any
	}
	execErr     error
	commitErr   error
	rollbackErr error
	committed   bool
	rolledBack  bool
}

func (t *fakePgTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakePgTx) Exec(ctx context.Context, q string, args ...any) (pgconn.CommandTag, error) {
	t.execCalls = append(t.execCalls, struct {
		q    string
		args []any
	}{q, args})
	return pgconn.CommandTag{}, t.execErr
}

func (t *fakePgTx) Query(ctx context.Context, q string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakePgTx) QueryRow(ctx context.Context, q string, args ...any) pgx.Row { return nil }
func (t *fakePgTx) CopyFrom(ctx context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakePgTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakePgTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakePgTx) Conn() *pgx.Conn                                              { return nil }
func (t *fakePgTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakePgTx) Deallocate(ctx context.Context, name string) error { return nil }

func (t *fakePgTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakePgTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return t.rollbackErr
}

func TestBeginTxExecCommit(t *testing.T) {
	ctx := context.Background()
	ftx := &fakePgTx{}
	a := newAdapterFromPool(&fakePool{beginTx: ftx})

	tx, err := a.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	if err := tx.Exec(ctx, "INSERT INTO customers (name) VALUES ($1)", "Ann"); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if len(ftx.execCalls) != 1 || ftx.execCalls[0].q != "INSERT INTO customers (name) VALUES ($1)" {
		t.Fatalf("exec captured = %#v", ftx.execCalls)
	}
	if len(ftx.execCalls[0].args) != 1 || ftx.execCalls[0].args[0] != "Ann" {
		t.Errorf("Expected args to pass through, got %v", ftx.execCalls[0].args)
	}

	// Rollback after Commit reports ErrTxClosed from pgx; the wrapper hides it.
	if err := tx.Rollback(ctx); err != nil {
		t.Errorf("Expected Rollback after Commit to be a no-op, got %v", err)
	}
}

func TestBeginTxError(t *testing.T) {
	a := newAdapterFromPool(&fakePool{beginErr: errBoom})

	tx, err := a.BeginTx(context.Background())
	if !errors.Is(err, errBoom) || tx != nil {
		t.Fatalf("Expected errBoom and nil tx, got %v, %v", tx, err)
	}
}

func TestTxErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	ftx := &fakePgTx{execErr: errBoom, rollbackErr: errors.New("conn lost")}
	a := newAdapterFromPool(&fakePool{beginTx: ftx})

	tx, err := a.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx failed: %v", err)
	}
	if err := tx.Exec(ctx, "SELECT 1"); !errors.Is(err, errBoom) {
		t.Errorf("Expected exec error, got %v", err)
	}
	if err := tx.Rollback(ctx); err == nil || err.Error() != "conn lost" {
		t.Errorf("Expected rollback error, got %v", err)
	}
	if !ftx.rolledBack {
		t.Error("Expected rollback to reach pgx")
	}
}

func TestNotConnected(t *testing.T) {
	a := New()
	if _, err := a.BeginTx(context.Background()); err == nil {
		t.Error("Expected BeginTx to fail before Connect")
	}
	if err := a.Ping(context.Background()); err == nil {
		t.Error("Expected Ping to fail before Connect")
	}
	if err := a.Close(); err != nil {
		t.Errorf("Expected Close before Connect to be a no-op, got %v", err)
	}
}

func TestPingAndClose(t *testing.T) {
	pool := &fakePool{pingErr: errBoom}
	a := newAdapterFromPool(pool)

	if err := a.Ping(context.Background()); !errors.Is(err, errBoom) {
		t.Errorf("Expected ping error, got %v", err)
	}
	if err := a.Close(); err != nil || !pool.closed {
		t.Errorf("Expected pool to be closed, got err=%v closed=%v", err, pool.closed)
	}
}

func TestConnectRejectsBadURL(t *testing.T) {
	a := New()
	if err := a.Connect(context.Background(), "postgres://user@host:notaport/db"); err == nil {
		t.Fatal("Expected Connect to reject an invalid URL")
	}
}

func TestDialect(t *testing.T) {
	if New().Dialect().Name != "postgresql" {
		t.Errorf("Unexpected dialect %q", New().Dialect().Name)
	}
}

func TestCheckTableExists(t *testing.T) {
	pool := &fakePool{row: fakeRow{value: true}}
	a := newAdapterFromPool(pool)

	exists, err := a.CheckTableExists(context.Background(), "customers")
	if err != nil || !exists {
		t.Fatalf("Expected table to exist, got %v, %v", exists, err)
	}
	if len(pool.queries) != 1 || !strings.Contains(pool.queries[0], "information_schema.tables") {
		t.Errorf("Unexpected query: %v", pool.queries)
	}
}

func TestGetTableRowCount(t *testing.T) {
	pool := &fakePool{row: fakeRow{value: 42}}
	a := newAdapterFromPool(pool)

	n, err := a.GetTableRowCount(context.Background(), "customers")
	if err != nil || n != 42 {
		t.Fatalf("Expected 42, got %d, %v", n, err)
	}
	if pool.queries[0] != "SELECT COUNT(*) FROM customers" {
		t.Errorf("Unexpected query: %s", pool.queries[0])
	}

	pool.row = fakeRow{err: errBoom}
	if _, err := a.GetTableRowCount(context.Background(), "customers"); !errors.Is(err, errBoom) {
		t.Errorf("Expected wrapped scan error, got %v", err)
	}
}
