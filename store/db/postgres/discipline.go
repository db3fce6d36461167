package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) CreateDiscipline(ctx context.Context, create *store.Discipline) (*store.Discipline, error) {
	fields := []string{"uid", "name", "weight", "sort_order"}
	args := []any{create.UID, create.Name, create.Weight, create.SortOrder}

	stmt := `INSERT INTO discipline (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create discipline: %w", err)
	}

	return create, nil
}

func (d *DB) ListDisciplines(ctx context.Context, find *store.FindDiscipline) ([]*store.Discipline, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, name, weight, sort_order
		FROM discipline
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY sort_order ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query disciplines: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Discipline, 0)
	for rows.Next() {
		discipline := &store.Discipline{}
		if err := rows.Scan(
			&discipline.ID,
			&discipline.UID,
			&discipline.CreatedTs,
			&discipline.UpdatedTs,
			&discipline.Name,
			&discipline.Weight,
			&discipline.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discipline: %w", err)
		}
		list = append(list, discipline)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateDiscipline(ctx context.Context, update *store.UpdateDiscipline) error {
	set, args := []string{"updated_ts = EXTRACT(EPOCH FROM NOW())"}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Weight; v != nil {
		set, args = append(set, "weight = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.SortOrder; v != nil {
		set, args = append(set, "sort_order = "+placeholder(len(args)+1)), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := `UPDATE discipline SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update discipline: %w", err)
	}
	return nil
}

func (d *DB) DeleteDiscipline(ctx context.Context, delete *store.DeleteDiscipline) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM discipline WHERE id = $1`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete discipline: %w", err)
	}
	return nil
}
