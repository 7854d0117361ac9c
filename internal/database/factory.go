package database

import (
	"github.com/Rana718/custseed/internal/database/mssql"
	"github.com/Rana718/custseed/internal/database/mysql"
	"github.com/Rana718/custseed/internal/database/postgres"
	"github.com/Rana718/custseed/internal/database/sqlite"
)

func NewAdapter(provider string) DatabaseAdapter {
	switch provider {
	case "postgresql", "postgres":
		return postgres.New()
	case "mysql":
		return mysql.New()
	case "sqlite", "sqlite3":
		return sqlite.New()
	case "sqlserver", "mssql":
		return mssql.New()
	default:
		return postgres.New()
	}
}
