package postgres

import (
	"context"
	"fmt"
)

func (p *Adapter) CheckTableExists(ctx context.Context, tableName string) (bool, error) {
	if p.pool == nil {
		return false, fmt.Errorf("not connected")
	}
	var exists bool
	err := p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = $1 AND table_schema = current_schema()
		)
	`, tableName).Scan(&exists)
	return exists, err
}

func (p *Adapter) GetTableRowCount(ctx context.Context, tableName string) (int, error) {
	if p.pool == nil {
		return 0, fmt.Errorf("not connected")
	}
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName)
	if err := p.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rows in table %s: %w", tableName, err)
	}
	return count, nil
}
