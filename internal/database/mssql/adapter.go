package mssql

import (
	"context"

	"github.com/Rana718/custseed/internal/database/common"
	_ "github.com/microsoft/go-mssqldb"
)

type Adapter struct {
	common.SQLAdapter
}

func New() *Adapter {
	return &Adapter{SQLAdapter: common.SQLAdapter{DriverName: "sqlserver"}}
}

func (a *Adapter) Connect(ctx context.Context, url string) error {
	if err := a.Open(ctx, url); err != nil {
		return err
	}
	a.DB.SetMaxOpenConns(2)
	return nil
}

func (a *Adapter) Dialect() common.Dialect { return common.SQLServer }
