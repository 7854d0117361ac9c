package mssql

import (
	"context"
	"fmt"
)

func (a *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if a.DB == nil {
		return false, fmt.Errorf("not connected")
	}
	var count int
	err := a.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_NAME = @p1 AND TABLE_SCHEMA = SCHEMA_NAME()
	`, tableName).Scan(&count)
	return count > 0, err
}

func (a *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if a.DB == nil {
		return 0, fmt.Errorf("not connected")
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT_BIG(*) FROM [%s]", tableName)
	if err := a.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}
