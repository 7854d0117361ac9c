package sqlite

import (
	"context"
	"strings"

	"github.com/Rana718/custseed/internal/database/common"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	common.SQLAdapter
}

func New() *Adapter {
	return &Adapter{SQLAdapter: common.SQLAdapter{DriverName: "sqlite3"}}
}

func (s *Adapter) Connect(ctx context.Context, url string) error {
	dbPath := strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dbPath, "?") {
		dbPath += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	if err := s.Open(ctx, dbPath); err != nil {
		return err
	}
	// One writer; a second connection would only contend for the file lock.
	s.DB.SetMaxOpenConns(1)
	return nil
}

func (s *Adapter) Dialect() common.Dialect { return common.SQLite }
