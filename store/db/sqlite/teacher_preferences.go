package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/store"
)

func (d *DB) UpsertTeacherPreferences(ctx context.Context, upsert *store.UpsertTeacherPreferences) (*store.TeacherPreferences, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO teacher_preferences (teacher_id, preferences, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (teacher_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_ts = EXCLUDED.updated_ts
		RETURNING teacher_id, preferences, created_ts, updated_ts`

	result := &store.TeacherPreferences{}
	err := d.db.QueryRowContext(ctx, stmt, upsert.TeacherID, upsert.Preferences, now, now).Scan(
		&result.TeacherID,
		&result.Preferences,
		&result.CreatedTs,
		&result.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert teacher_preferences")
	}

	return result, nil
}

func (d *DB) GetTeacherPreferences(ctx context.Context, find *store.FindTeacherPreferences) (*store.TeacherPreferences, error) {
	if find.TeacherID == nil {
		return nil, errors.New("teacher_id is required")
	}

	query := `SELECT teacher_id, preferences, created_ts, updated_ts FROM teacher_preferences WHERE teacher_id = ?`

	result := &store.TeacherPreferences{}
	err := d.db.QueryRowContext(ctx, query, *find.TeacherID).Scan(
		&result.TeacherID,
		&result.Preferences,
		&result.CreatedTs,
		&result.UpdatedTs,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found, return nil without error
		}
		return nil, errors.Wrap(err, "failed to get teacher_preferences")
	}

	return result, nil
}

func (d *DB) DeleteTeacherPreferences(ctx context.Context, delete *store.DeleteTeacherPreferences) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM teacher_preferences WHERE teacher_id = ?`, delete.TeacherID); err != nil {
		return errors.Wrap(err, "failed to delete teacher_preferences")
	}
	return nil
}
