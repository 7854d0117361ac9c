package mysql

import (
	"context"
	"fmt"
)

func (m *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if m.DB == nil {
		return false, fmt.Errorf("not connected")
	}
	var exists bool
	err := m.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) > 0 FROM information_schema.tables
		WHERE table_name = ? AND table_schema = DATABASE()
	`, tableName).Scan(&exists)
	return exists, err
}

func (m *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if m.DB == nil {
		return 0, fmt.Errorf("not connected")
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM `%s`", tableName)
	if err := m.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}
