package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/store"
)

func (d *DB) CreateConversation(ctx context.Context, create *store.Conversation) (*store.Conversation, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO conversation (uid, teacher_id, title, created_ts, updated_ts)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, uid, teacher_id, title, created_ts, updated_ts`

	result := &store.Conversation{}
	err := d.db.QueryRowContext(ctx, stmt, create.UID, create.TeacherID, create.Title, now, now).Scan(
		&result.ID,
		&result.UID,
		&result.TeacherID,
		&result.Title,
		&result.CreatedTs,
		&result.UpdatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create conversation")
	}

	return result, nil
}

func (d *DB) ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = ?"), append(args, *find.UID)
	}
	if find.TeacherID != nil {
		where, args = append(where, "teacher_id = ?"), append(args, *find.TeacherID)
	}

	query := `SELECT id, uid, teacher_id, title, created_ts, updated_ts FROM conversation
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY updated_ts DESC`
	if find.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list conversations")
	}
	defer rows.Close()

	list := []*store.Conversation{}
	for rows.Next() {
		conversation := &store.Conversation{}
		if err := rows.Scan(
			&conversation.ID,
			&conversation.UID,
			&conversation.TeacherID,
			&conversation.Title,
			&conversation.CreatedTs,
			&conversation.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan conversation")
		}
		list = append(list, conversation)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return list, nil
}

func (d *DB) UpdateConversation(ctx context.Context, update *store.UpdateConversation) (*store.Conversation, error) {
	set, args := []string{}, []any{}
	if update.Title != nil {
		set, args = append(set, "title = ?"), append(args, *update.Title)
	}
	updatedTs := time.Now().Unix()
	if update.UpdatedTs != nil {
		updatedTs = *update.UpdatedTs
	}
	set, args = append(set, "updated_ts = ?"), append(args, updatedTs)
	args = append(args, update.ID)

	stmt := `UPDATE conversation SET ` + strings.Join(set, ", ") + ` WHERE id = ?
		RETURNING id, uid, teacher_id, title, created_ts, updated_ts`

	result := &store.Conversation{}
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
		&result.ID,
		&result.UID,
		&result.TeacherID,
		&result.Title,
		&result.CreatedTs,
		&result.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to update conversation")
	}

	return result, nil
}

func (d *DB) DeleteConversation(ctx context.Context, delete *store.DeleteConversation) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM message WHERE conversation_id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete conversation messages")
	}
	if _, err := d.db.ExecContext(ctx, `DELETE FROM conversation WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete conversation")
	}
	return nil
}

func (d *DB) CreateMessage(ctx context.Context, create *store.Message) (*store.Message, error) {
	now := time.Now().Unix()

	stmt := `INSERT INTO message (uid, conversation_id, role, content, created_ts)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, uid, conversation_id, role, content, created_ts`

	result := &store.Message{}
	err := d.db.QueryRowContext(ctx, stmt, create.UID, create.ConversationID, create.Role, create.Content, now).Scan(
		&result.ID,
		&result.UID,
		&result.ConversationID,
		&result.Role,
		&result.Content,
		&result.CreatedTs,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create message")
	}

	return result, nil
}

func (d *DB) ListMessages(ctx context.Context, find *store.FindMessage) ([]*store.Message, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.UID != nil {
		where, args = append(where, "uid = ?"), append(args, *find.UID)
	}
	if find.ConversationID != nil {
		where, args = append(where, "conversation_id = ?"), append(args, *find.ConversationID)
	}

	order := "ASC"
	if find.OrderByIDDesc {
		order = "DESC"
	}
	query := `SELECT id, uid, conversation_id, role, content, created_ts FROM message
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ` + order
	if find.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list messages")
	}
	defer rows.Close()

	list := []*store.Message{}
	for rows.Next() {
		message := &store.Message{}
		if err := rows.Scan(
			&message.ID,
			&message.UID,
			&message.ConversationID,
			&message.Role,
			&message.Content,
			&message.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan message")
		}
		list = append(list, message)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "rows error")
	}

	return list, nil
}

func (d *DB) DeleteMessage(ctx context.Context, delete *store.DeleteMessage) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM message WHERE id = ?`, delete.ID); err != nil {
		return errors.Wrap(err, "failed to delete message")
	}
	return nil
}
