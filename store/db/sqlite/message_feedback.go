package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/store"
)

func (d *DB) UpsertMessageFeedback(ctx context.Context, upsert *store.UpsertMessageFeedback) (*store.MessageFeedback, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO message_feedback (teacher_id, message_uid, rating, created_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (teacher_id, message_uid) DO UPDATE SET
			rating = EXCLUDED.rating
		RETURNING id, teacher_id, message_uid, rating, created_ts`

	result := &store.MessageFeedback{}
	err := d.db.QueryRowContext(ctx, stmt, upsert.TeacherID, upsert.MessageUID, upsert.Rating, now).Scan(
		&result.ID,
		&result.TeacherID,
		&result.MessageUID,
		&result.Rating,
		&result.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert message_feedback")
	}

	return result, nil
}

func (d *DB) ListMessageFeedback(ctx context.Context, find *store.FindMessageFeedback) ([]*store.MessageFeedback, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.TeacherID != nil {
		where, args = append(where, "teacher_id = ?"), append(args, *find.TeacherID)
	}
	if find.MessageUID != nil {
		where, args = append(where, "message_uid = ?"), append(args, *find.MessageUID)
	}

	query := `SELECT id, teacher_id, message_uid, rating, created_ts FROM message_feedback
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id DESC`
	if find.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list message_feedback")
	}
	defer rows.Close()

	list := []*store.MessageFeedback{}
	for rows.Next() {
		feedback := &store.MessageFeedback{}
		if err := rows.Scan(
			&feedback.ID,
			&feedback.TeacherID,
			&feedback.MessageUID,
			&feedback.Rating,
			&feedback.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan message_feedback")
		}
		list = append(list, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return list, nil
}
