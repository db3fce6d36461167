package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) CreateStudyUnit(ctx context.Context, create *store.StudyUnit) (*store.StudyUnit, error) {
	fields := []string{"uid", "topic_id", "name", "difficulty", "incidence", "confidence", "last_studied", "notes", "sort_order"}
	args := []any{create.UID, create.TopicID, create.Name, create.Difficulty, create.Incidence, create.Confidence, create.LastStudied, create.Notes, create.SortOrder}

	stmt := `INSERT INTO study_unit (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create study unit: %w", err)
	}

	return create, nil
}

func (d *DB) ListStudyUnits(ctx context.Context, find *store.FindStudyUnit) ([]*store.StudyUnit, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.TopicID; v != nil {
		where, args = append(where, "topic_id = ?"), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, topic_id, name, difficulty, incidence, confidence, last_studied, notes, sort_order
		FROM study_unit
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY sort_order ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query study units: %w", err)
	}
	defer rows.Close()

	list := make([]*store.StudyUnit, 0)
	for rows.Next() {
		unit := &store.StudyUnit{}
		if err := rows.Scan(
			&unit.ID,
			&unit.UID,
			&unit.CreatedTs,
			&unit.UpdatedTs,
			&unit.TopicID,
			&unit.Name,
			&unit.Difficulty,
			&unit.Incidence,
			&unit.Confidence,
			&unit.LastStudied,
			&unit.Notes,
			&unit.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan study unit: %w", err)
		}
		list = append(list, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateStudyUnit(ctx context.Context, update *store.UpdateStudyUnit) error {
	set, args := []string{"updated_ts = strftime('%s', 'now')"}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = ?"), append(args, *v)
	}
	if v := update.Difficulty; v != nil {
		set, args = append(set, "difficulty = ?"), append(args, *v)
	}
	if v := update.Incidence; v != nil {
		set, args = append(set, "incidence = ?"), append(args, *v)
	}
	if v := update.Confidence; v != nil {
		set, args = append(set, "confidence = ?"), append(args, *v)
	}
	if v := update.LastStudied; v != nil {
		set, args = append(set, "last_studied = ?"), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = ?"), append(args, *v)
	}
	if v := update.SortOrder; v != nil {
		set, args = append(set, "sort_order = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := `UPDATE study_unit SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update study unit: %w", err)
	}
	return nil
}

func (d *DB) DeleteStudyUnit(ctx context.Context, delete *store.DeleteStudyUnit) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM study_unit WHERE id = ?`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete study unit: %w", err)
	}
	return nil
}
