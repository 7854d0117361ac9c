package database

import (
	"context"

	"github.com/Rana718/custseed/internal/database/common"
)

// DatabaseAdapter is one store connection for the lifetime of a run.
type DatabaseAdapter interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// BeginTx starts a transaction; the caller must Commit or Rollback it.
	BeginTx(ctx context.Context) (common.Tx, error)
	Dialect() common.Dialect

	CheckTableExists(ctx context.Context, tableName string) (bool, error)
	GetTableRowCount(ctx context.Context, tableName string) (int, error)
}
