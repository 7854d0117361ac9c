package sqlite

import (
	"context"
	"fmt"
)

func (s *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if s.DB == nil {
		return false, fmt.Errorf("not connected")
	}
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = ?",
		tableName).Scan(&exists)
	return exists, err
}

func (s *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("not connected")
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM \"%s\"", tableName)
	if err := s.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}
