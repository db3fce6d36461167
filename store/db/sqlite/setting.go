package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) UpsertSetting(ctx context.Context, upsert *store.Setting) (*store.Setting, error) {
	stmt := `INSERT INTO setting (name, value)
		VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.Name, upsert.Value); err != nil {
		return nil, fmt.Errorf("failed to upsert setting: %w", err)
	}
	return upsert, nil
}

func (d *DB) GetSetting(ctx context.Context, name string) (*store.Setting, error) {
	setting := &store.Setting{}
	err := d.db.QueryRowContext(ctx,
		`SELECT name, value FROM setting WHERE name = ?`, name,
	).Scan(&setting.Name, &setting.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}
