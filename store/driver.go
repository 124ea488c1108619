package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// StyleProfile model related methods.
	GetStyleProfile(ctx context.Context, find *FindStyleProfile) (*StyleProfile, error)
	UpsertStyleProfile(ctx context.Context, upsert *UpsertStyleProfile) (*StyleProfile, error)
	DeleteStyleProfile(ctx context.Context, delete *DeleteStyleProfile) error

	// TeacherPreferences model related methods.
	GetTeacherPreferences(ctx context.Context, find *FindTeacherPreferences) (*TeacherPreferences, error)
	UpsertTeacherPreferences(ctx context.Context, upsert *UpsertTeacherPreferences) (*TeacherPreferences, error)
	DeleteTeacherPreferences(ctx context.Context, delete *DeleteTeacherPreferences) error

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error)
	DeleteConversation(ctx context.Context, delete *DeleteConversation) error

	// Message model related methods.
	CreateMessage(ctx context.Context, create *Message) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
	DeleteMessage(ctx context.Context, delete *DeleteMessage) error

	// MessageFeedback model related methods.
	UpsertMessageFeedback(ctx context.Context, upsert *UpsertMessageFeedback) (*MessageFeedback, error)
	ListMessageFeedback(ctx context.Context, find *FindMessageFeedback) ([]*MessageFeedback, error)
}
