package store_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/store"
	"github.com/lehuyanh/trogiang/store/db"
)

func newTestingStore(ctx context.Context, t *testing.T) *store.Store {
	t.Helper()

	testProfile := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "trogiang_test.db"),
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	require.NoError(t, err)

	s := store.New(dbDriver, testProfile)
	require.NoError(t, s.Migrate(ctx))

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestStyleProfileStore(t *testing.T) {
	ctx := context.Background()
	s := newTestingStore(ctx, t)

	teacherID := int32(1)
	found, err := s.GetStyleProfile(ctx, &store.FindStyleProfile{TeacherID: &teacherID})
	require.NoError(t, err)
	require.Nil(t, found)

	created, err := s.UpsertStyleProfile(ctx, &store.UpsertStyleProfile{
		TeacherID: teacherID,
		Payload:   `{"confidence": 0.3}`,
	})
	require.NoError(t, err)
	require.Equal(t, teacherID, created.TeacherID)

	updated, err := s.UpsertStyleProfile(ctx, &store.UpsertStyleProfile{
		TeacherID: teacherID,
		Payload:   `{"confidence": 0.5}`,
	})
	require.NoError(t, err)
	require.Equal(t, `{"confidence": 0.5}`, updated.Payload)

	found, err = s.GetStyleProfile(ctx, &store.FindStyleProfile{TeacherID: &teacherID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, `{"confidence": 0.5}`, found.Payload)

	require.NoError(t, s.DeleteStyleProfile(ctx, &store.DeleteStyleProfile{TeacherID: teacherID}))
	found, err = s.GetStyleProfile(ctx, &store.FindStyleProfile{TeacherID: &teacherID})
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestTeacherPreferencesStore(t *testing.T) {
	ctx := context.Background()
	s := newTestingStore(ctx, t)

	teacherID := int32(7)
	created, err := s.UpsertTeacherPreferences(ctx, &store.UpsertTeacherPreferences{
		TeacherID:   teacherID,
		Preferences: `{"content_preferences": {}}`,
	})
	require.NoError(t, err)
	require.Equal(t, teacherID, created.TeacherID)

	found, err := s.GetTeacherPreferences(ctx, &store.FindTeacherPreferences{TeacherID: &teacherID})
	require.NoError(t, err)
	require.NotNil(t, found)
	require.Equal(t, `{"content_preferences": {}}`, found.Preferences)
}

func TestConversationStore(t *testing.T) {
	ctx := context.Background()
	s := newTestingStore(ctx, t)

	conversation, err := s.CreateConversation(ctx, &store.Conversation{
		UID:       "conv-1",
		TeacherID: 1,
		Title:     "Soạn đề thi",
	})
	require.NoError(t, err)
	require.NotZero(t, conversation.ID)

	for i := 0; i < 3; i++ {
		_, err := s.CreateMessage(ctx, &store.Message{
			UID:            fmt.Sprintf("msg-%d", i),
			ConversationID: conversation.ID,
			Role:           store.MessageRoleUser,
			Content:        fmt.Sprintf("nội dung %d", i),
		})
		require.NoError(t, err)
	}

	messages, err := s.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.Equal(t, "msg-0", messages[0].UID)

	// OrderByIDDesc with a limit selects the transcript tail.
	limit := 2
	tail, err := s.ListMessages(ctx, &store.FindMessage{
		ConversationID: &conversation.ID,
		Limit:          limit,
		OrderByIDDesc:  true,
	})
	require.NoError(t, err)
	require.Len(t, tail, 2)
	require.Equal(t, "msg-2", tail[0].UID)
	require.Equal(t, "msg-1", tail[1].UID)

	newTitle := "Đề thi toán"
	updated, err := s.UpdateConversation(ctx, &store.UpdateConversation{
		ID:    conversation.ID,
		Title: &newTitle,
	})
	require.NoError(t, err)
	require.Equal(t, newTitle, updated.Title)

	// Deleting the conversation removes its messages too.
	require.NoError(t, s.DeleteConversation(ctx, &store.DeleteConversation{ID: conversation.ID}))
	messages, err = s.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	require.Empty(t, messages)
}

func TestListMessagesWindowEndsAtNewest(t *testing.T) {
	ctx := context.Background()
	s := newTestingStore(ctx, t)

	conversation, err := s.CreateConversation(ctx, &store.Conversation{
		UID:       "conv-long",
		TeacherID: 1,
		Title:     "Hội thoại dài",
	})
	require.NoError(t, err)

	for i := 1; i <= 25; i++ {
		_, err := s.CreateMessage(ctx, &store.Message{
			UID:            fmt.Sprintf("msg-%d", i),
			ConversationID: conversation.ID,
			Role:           store.MessageRoleUser,
			Content:        fmt.Sprintf("tin nhắn %d", i),
		})
		require.NoError(t, err)
	}

	window, err := s.ListMessages(ctx, &store.FindMessage{
		ConversationID: &conversation.ID,
		Limit:          20,
		OrderByIDDesc:  true,
	})
	require.NoError(t, err)
	require.Len(t, window, 20)
	require.Equal(t, "tin nhắn 25", window[0].Content)
	require.Equal(t, "tin nhắn 6", window[19].Content)
}

func TestMessageFeedbackStore(t *testing.T) {
	ctx := context.Background()
	s := newTestingStore(ctx, t)

	teacherID := int32(1)
	created, err := s.UpsertMessageFeedback(ctx, &store.UpsertMessageFeedback{
		TeacherID:  teacherID,
		MessageUID: "msg-1",
		Rating:     store.FeedbackRatingLike,
	})
	require.NoError(t, err)
	require.Equal(t, store.FeedbackRatingLike, created.Rating)

	// Re-rating the same message replaces the previous rating.
	replaced, err := s.UpsertMessageFeedback(ctx, &store.UpsertMessageFeedback{
		TeacherID:  teacherID,
		MessageUID: "msg-1",
		Rating:     store.FeedbackRatingDislike,
	})
	require.NoError(t, err)
	require.Equal(t, store.FeedbackRatingDislike, replaced.Rating)

	list, err := s.ListMessageFeedback(ctx, &store.FindMessageFeedback{TeacherID: &teacherID})
	require.NoError(t, err)
	require.Len(t, list, 1)
}
