package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rana718/custseed/internal/database/common"
	_ "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	common.SQLAdapter
}

func New() *Adapter {
	return &Adapter{SQLAdapter: common.SQLAdapter{DriverName: "mysql"}}
}

func (m *Adapter) Connect(ctx context.Context, url string) error {
	if err := m.Open(ctx, normalizeDSN(url)); err != nil {
		return err
	}
	m.DB.SetMaxOpenConns(2)
	return nil
}

// normalizeDSN turns a mysql:// URL into the driver's user:pass@tcp(host)/db form.
func normalizeDSN(url string) string {
	if !strings.HasPrefix(url, "mysql://") {
		return url
	}
	dsn := strings.TrimPrefix(url, "mysql://")

	atIndex := strings.LastIndex(dsn, "@")
	if atIndex <= 0 {
		return dsn
	}
	credentials := dsn[:atIndex]
	remainder := dsn[atIndex+1:]

	slashIndex := strings.Index(remainder, "/")
	if slashIndex <= 0 {
		return dsn
	}
	hostPort := remainder[:slashIndex]
	dbAndParams := remainder[slashIndex+1:]

	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=REQUIRED", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "ssl-mode=DISABLED", "tls=false")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=require", "tls=skip-verify")
	dbAndParams = strings.ReplaceAll(dbAndParams, "sslmode=disable", "tls=false")

	return fmt.Sprintf("%s@tcp(%s)/%s", credentials, hostPort, dbAndParams)
}

func (m *Adapter) Dialect() common.Dialect { return common.MySQL }
