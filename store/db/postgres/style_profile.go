package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/store"
)

func (d *DB) UpsertStyleProfile(ctx context.Context, upsert *store.UpsertStyleProfile) (*store.StyleProfile, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO style_profile (teacher_id, payload, created_ts, updated_ts)
		VALUES (` + placeholder(1) + `, ` + placeholder(2) + `, ` + placeholder(3) + `, ` + placeholder(4) + `)
		ON CONFLICT (teacher_id) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_ts = EXCLUDED.updated_ts
		RETURNING teacher_id, payload, created_ts, updated_ts`

	result := &store.StyleProfile{}
	err := d.db.QueryRowContext(ctx, stmt, upsert.TeacherID, upsert.Payload, now, now).Scan(
		&result.TeacherID,
		&result.Payload,
		&result.CreatedTs,
		&result.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert style_profile")
	}

	return result, nil
}

func (d *DB) GetStyleProfile(ctx context.Context, find *store.FindStyleProfile) (*store.StyleProfile, error) {
	if find.TeacherID == nil {
		return nil, errors.New("teacher_id is required")
	}

	query := `SELECT teacher_id, payload, created_ts, updated_ts FROM style_profile WHERE teacher_id = ` + placeholder(1)

	result := &store.StyleProfile{}
	err := d.db.QueryRowContext(ctx, query, *find.TeacherID).Scan(
		&result.TeacherID,
		&result.Payload,
		&result.CreatedTs,
		&result.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found, return nil without error
		}
		return nil, errors.Wrap(err, "failed to get style_profile")
	}

	return result, nil
}

func (d *DB) DeleteStyleProfile(ctx context.Context, delete *store.DeleteStyleProfile) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM style_profile WHERE teacher_id = `+placeholder(1), delete.TeacherID); err != nil {
		return errors.Wrap(err, "failed to delete style_profile")
	}
	return nil
}
