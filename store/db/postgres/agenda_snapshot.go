package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) UpsertAgendaSnapshot(ctx context.Context, upsert *store.AgendaSnapshot) (*store.AgendaSnapshot, error) {
	// Single-row table; the whole agenda is replaced on every reorganize.
	stmt := `INSERT INTO agenda_snapshot (id, generated_ts, horizon_start, payload)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			generated_ts = EXCLUDED.generated_ts,
			horizon_start = EXCLUDED.horizon_start,
			payload = EXCLUDED.payload`
	if _, err := d.db.ExecContext(ctx, stmt, upsert.GeneratedTs, upsert.HorizonStart, upsert.Payload); err != nil {
		return nil, fmt.Errorf("failed to upsert agenda snapshot: %w", err)
	}
	upsert.ID = 1
	return upsert, nil
}

func (d *DB) GetAgendaSnapshot(ctx context.Context) (*store.AgendaSnapshot, error) {
	snapshot := &store.AgendaSnapshot{}
	err := d.db.QueryRowContext(ctx,
		`SELECT id, generated_ts, horizon_start, payload FROM agenda_snapshot WHERE id = 1`,
	).Scan(&snapshot.ID, &snapshot.GeneratedTs, &snapshot.HorizonStart, &snapshot.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get agenda snapshot: %w", err)
	}
	return snapshot, nil
}
