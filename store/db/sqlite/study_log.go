package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) CreateStudyLog(ctx context.Context, create *store.StudyLog) (*store.StudyLog, error) {
	stmt := `INSERT INTO study_log (unit_id, date, confidence, notes)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt,
		create.UnitID, create.Date, create.Confidence, create.Notes,
	).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create study log: %w", err)
	}

	return create, nil
}

func (d *DB) ListStudyLogs(ctx context.Context, find *store.FindStudyLog) ([]*store.StudyLog, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UnitID; v != nil {
		where, args = append(where, "unit_id = ?"), append(args, *v)
	}

	// Insertion order is the chronological order of recording.
	query := `
		SELECT id, created_ts, unit_id, date, confidence, notes
		FROM study_log
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id ASC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query study logs: %w", err)
	}
	defer rows.Close()

	list := make([]*store.StudyLog, 0)
	for rows.Next() {
		log := &store.StudyLog{}
		if err := rows.Scan(
			&log.ID,
			&log.CreatedTs,
			&log.UnitID,
			&log.Date,
			&log.Confidence,
			&log.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan study log: %w", err)
		}
		list = append(list, log)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
