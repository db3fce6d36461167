package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/studyforge/studyforge/store"
)

func (d *DB) CreateTopic(ctx context.Context, create *store.Topic) (*store.Topic, error) {
	fields := []string{"uid", "discipline_id", "name", "sort_order"}
	args := []any{create.UID, create.DisciplineID, create.Name, create.SortOrder}

	stmt := `INSERT INTO topic (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	return create, nil
}

func (d *DB) ListTopics(ctx context.Context, find *store.FindTopic) ([]*store.Topic, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DisciplineID; v != nil {
		where, args = append(where, "discipline_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, updated_ts, discipline_id, name, sort_order
		FROM topic
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY sort_order ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	list := make([]*store.Topic, 0)
	for rows.Next() {
		topic := &store.Topic{}
		if err := rows.Scan(
			&topic.ID,
			&topic.UID,
			&topic.CreatedTs,
			&topic.UpdatedTs,
			&topic.DisciplineID,
			&topic.Name,
			&topic.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		list = append(list, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) UpdateTopic(ctx context.Context, update *store.UpdateTopic) error {
	set, args := []string{"updated_ts = EXTRACT(EPOCH FROM NOW())"}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.SortOrder; v != nil {
		set, args = append(set, "sort_order = "+placeholder(len(args)+1)), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := `UPDATE topic SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to update topic: %w", err)
	}
	return nil
}

func (d *DB) DeleteTopic(ctx context.Context, delete *store.DeleteTopic) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM topic WHERE id = $1`, delete.ID); err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	return nil
}
