package store

import (
	"context"

	"github.com/lehuyanh/trogiang/internal/profile"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	return s.driver.Close()
}

func (s *Store) GetStyleProfile(ctx context.Context, find *FindStyleProfile) (*StyleProfile, error) {
	return s.driver.GetStyleProfile(ctx, find)
}

func (s *Store) UpsertStyleProfile(ctx context.Context, upsert *UpsertStyleProfile) (*StyleProfile, error) {
	return s.driver.UpsertStyleProfile(ctx, upsert)
}

func (s *Store) DeleteStyleProfile(ctx context.Context, delete *DeleteStyleProfile) error {
	return s.driver.DeleteStyleProfile(ctx, delete)
}

func (s *Store) GetTeacherPreferences(ctx context.Context, find *FindTeacherPreferences) (*TeacherPreferences, error) {
	return s.driver.GetTeacherPreferences(ctx, find)
}

func (s *Store) UpsertTeacherPreferences(ctx context.Context, upsert *UpsertTeacherPreferences) (*TeacherPreferences, error) {
	return s.driver.UpsertTeacherPreferences(ctx, upsert)
}

func (s *Store) DeleteTeacherPreferences(ctx context.Context, delete *DeleteTeacherPreferences) error {
	return s.driver.DeleteTeacherPreferences(ctx, delete)
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

func (s *Store) UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error) {
	return s.driver.UpdateConversation(ctx, update)
}

func (s *Store) DeleteConversation(ctx context.Context, delete *DeleteConversation) error {
	return s.driver.DeleteConversation(ctx, delete)
}

func (s *Store) CreateMessage(ctx context.Context, create *Message) (*Message, error) {
	return s.driver.CreateMessage(ctx, create)
}

func (s *Store) ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error) {
	return s.driver.ListMessages(ctx, find)
}

func (s *Store) DeleteMessage(ctx context.Context, delete *DeleteMessage) error {
	return s.driver.DeleteMessage(ctx, delete)
}

func (s *Store) UpsertMessageFeedback(ctx context.Context, upsert *UpsertMessageFeedback) (*MessageFeedback, error) {
	return s.driver.UpsertMessageFeedback(ctx, upsert)
}

func (s *Store) ListMessageFeedback(ctx context.Context, find *FindMessageFeedback) ([]*MessageFeedback, error) {
	return s.driver.ListMessageFeedback(ctx, find)
}
