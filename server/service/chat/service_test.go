package chat

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/plugin/ai/persona"
	"github.com/lehuyanh/trogiang/server/ai"
	"github.com/lehuyanh/trogiang/store"
)

// fakeDriver is an in-memory store.Driver for service tests.
type fakeDriver struct {
	mu             sync.Mutex
	nextID         int32
	conversations  []*store.Conversation
	messages       []*store.Message
	styleProfiles  map[int32]*store.StyleProfile
	preferences    map[int32]*store.TeacherPreferences
	feedback       map[string]*store.MessageFeedback
	createMsgErr   error
	listConvErr    error
	upsertStyleErr error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		styleProfiles: map[int32]*store.StyleProfile{},
		preferences:   map[int32]*store.TeacherPreferences{},
		feedback:      map[string]*store.MessageFeedback{},
	}
}

func (d *fakeDriver) GetDB() *sql.DB { return nil }
func (d *fakeDriver) Close() error   { return nil }
func (d *fakeDriver) IsInitialized(context.Context) (bool, error) {
	return true, nil
}

func (d *fakeDriver) GetStyleProfile(_ context.Context, find *store.FindStyleProfile) (*store.StyleProfile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if find.TeacherID == nil {
		return nil, nil
	}
	return d.styleProfiles[*find.TeacherID], nil
}

func (d *fakeDriver) UpsertStyleProfile(_ context.Context, upsert *store.UpsertStyleProfile) (*store.StyleProfile, error) {
	if d.upsertStyleErr != nil {
		return nil, d.upsertStyleErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	row := &store.StyleProfile{TeacherID: upsert.TeacherID, Payload: upsert.Payload}
	d.styleProfiles[upsert.TeacherID] = row
	return row, nil
}

func (d *fakeDriver) DeleteStyleProfile(_ context.Context, delete *store.DeleteStyleProfile) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	deleteKey := delete.TeacherID
	d.styleProfiles[deleteKey] = nil
	return nil
}

func (d *fakeDriver) GetTeacherPreferences(_ context.Context, find *store.FindTeacherPreferences) (*store.TeacherPreferences, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if find.TeacherID == nil {
		return nil, nil
	}
	return d.preferences[*find.TeacherID], nil
}

func (d *fakeDriver) UpsertTeacherPreferences(_ context.Context, upsert *store.UpsertTeacherPreferences) (*store.TeacherPreferences, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := &store.TeacherPreferences{TeacherID: upsert.TeacherID, Preferences: upsert.Preferences}
	d.preferences[upsert.TeacherID] = row
	return row, nil
}

func (d *fakeDriver) DeleteTeacherPreferences(_ context.Context, delete *store.DeleteTeacherPreferences) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preferences[delete.TeacherID] = nil
	return nil
}

func (d *fakeDriver) CreateConversation(_ context.Context, create *store.Conversation) (*store.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	create.ID = d.nextID
	d.conversations = append(d.conversations, create)
	return create, nil
}

func (d *fakeDriver) ListConversations(_ context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	if d.listConvErr != nil {
		return nil, d.listConvErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []*store.Conversation
	for _, c := range d.conversations {
		if find.UID != nil && c.UID != *find.UID {
			continue
		}
		if find.TeacherID != nil && c.TeacherID != *find.TeacherID {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (d *fakeDriver) UpdateConversation(_ context.Context, update *store.UpdateConversation) (*store.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range d.conversations {
		if c.ID == update.ID {
			if update.Title != nil {
				c.Title = *update.Title
			}
			if update.UpdatedTs != nil {
				c.UpdatedTs = *update.UpdatedTs
			}
			return c, nil
		}
	}
	return nil, errors.New("conversation not found")
}

func (d *fakeDriver) DeleteConversation(_ context.Context, delete *store.DeleteConversation) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.conversations[:0]
	for _, c := range d.conversations {
		if c.ID != delete.ID {
			kept = append(kept, c)
		}
	}
	d.conversations = kept
	return nil
}

func (d *fakeDriver) CreateMessage(_ context.Context, create *store.Message) (*store.Message, error) {
	if d.createMsgErr != nil {
		return nil, d.createMsgErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	create.ID = d.nextID
	d.messages = append(d.messages, create)
	return create, nil
}

func (d *fakeDriver) ListMessages(_ context.Context, find *store.FindMessage) ([]*store.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []*store.Message
	for _, m := range d.messages {
		if find.ConversationID != nil && m.ConversationID != *find.ConversationID {
			continue
		}
		result = append(result, m)
	}
	if find.OrderByIDDesc {
		slices.Reverse(result)
	}
	if find.Limit > 0 && len(result) > find.Limit {
		result = result[:find.Limit]
	}
	return result, nil
}

func (d *fakeDriver) DeleteMessage(_ context.Context, delete *store.DeleteMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.messages[:0]
	for _, m := range d.messages {
		if m.ID != delete.ID {
			kept = append(kept, m)
		}
	}
	d.messages = kept
	return nil
}

func (d *fakeDriver) UpsertMessageFeedback(_ context.Context, upsert *store.UpsertMessageFeedback) (*store.MessageFeedback, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	row := &store.MessageFeedback{
		TeacherID:  upsert.TeacherID,
		MessageUID: upsert.MessageUID,
		Rating:     upsert.Rating,
	}
	d.feedback[upsert.MessageUID] = row
	return row, nil
}

func (d *fakeDriver) ListMessageFeedback(_ context.Context, find *store.FindMessageFeedback) ([]*store.MessageFeedback, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []*store.MessageFeedback
	for _, f := range d.feedback {
		if find.TeacherID != nil && f.TeacherID != *find.TeacherID {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

// fakeLLM returns a canned reply and records the messages it was sent.
type fakeLLM struct {
	reply string
	err   error
	sent  []ai.Message
}

func (f *fakeLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	f.sent = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(driver *fakeDriver, llm ai.ChatService) *Service {
	storeInstance := store.New(driver, &profile.Profile{Mode: "dev"})
	profiles := persona.NewService(storeInstance)
	learner := persona.NewLearner(profiles, nil)
	return NewService(storeInstance, llm, profiles, learner)
}

func TestSendCreatesConversationAndPersistsTurn(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	llm := &fakeLLM{reply: "Đây là đề thi mẫu."}
	service := newTestService(driver, llm)

	turn, err := service.Send(ctx, 1, "", "Soạn giúp tôi một đề thi toán lớp 9")
	require.NoError(t, err)
	require.NotEmpty(t, turn.ConversationUID)
	require.Equal(t, "Đây là đề thi mẫu.", turn.Reply)

	require.Len(t, driver.conversations, 1)
	require.Equal(t, "Soạn giúp tôi một đề thi toán lớp 9", driver.conversations[0].Title)

	require.Len(t, driver.messages, 2)
	require.Equal(t, store.MessageRoleUser, driver.messages[0].Role)
	require.Equal(t, store.MessageRoleAssistant, driver.messages[1].Role)

	// The completed exchange was learned.
	require.NotNil(t, driver.styleProfiles[int32(1)])
}

func TestSendReusesExistingConversation(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	llm := &fakeLLM{reply: "ok"}
	service := newTestService(driver, llm)

	first, err := service.Send(ctx, 1, "", "Câu hỏi đầu tiên")
	require.NoError(t, err)

	second, err := service.Send(ctx, 1, first.ConversationUID, "Câu hỏi tiếp theo")
	require.NoError(t, err)
	require.Equal(t, first.ConversationUID, second.ConversationUID)
	require.Len(t, driver.conversations, 1)
	require.Len(t, driver.messages, 4)

	// The second turn replays the first exchange before the new message.
	require.GreaterOrEqual(t, len(llm.sent), 4)
	require.Equal(t, "system", llm.sent[0].Role)
	require.Equal(t, "Câu hỏi đầu tiên", llm.sent[1].Content)
	require.Equal(t, "Câu hỏi tiếp theo", llm.sent[len(llm.sent)-1].Content)
}

func TestSendReplaysNewestHistoryWindow(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	llm := &fakeLLM{reply: "ok"}
	service := newTestService(driver, llm)

	first, err := service.Send(ctx, 1, "", "tin nhắn 1")
	require.NoError(t, err)

	// Grow the transcript well past the replay window.
	for i := 2; i <= 15; i++ {
		_, err := service.Send(ctx, 1, first.ConversationUID, fmt.Sprintf("tin nhắn %d", i))
		require.NoError(t, err)
	}

	_, err = service.Send(ctx, 1, first.ConversationUID, "tin nhắn mới nhất")
	require.NoError(t, err)

	// system + 20-message window + the new user message.
	require.Len(t, llm.sent, 22)
	require.Equal(t, "tin nhắn mới nhất", llm.sent[len(llm.sent)-1].Content)

	// The window ends at the newest persisted exchange, in chronological order.
	require.Equal(t, "ok", llm.sent[len(llm.sent)-2].Content)
	require.Equal(t, "tin nhắn 15", llm.sent[len(llm.sent)-3].Content)
	require.Equal(t, "tin nhắn 6", llm.sent[1].Content)
}

func TestSendUnknownConversationFails(t *testing.T) {
	driver := newFakeDriver()
	service := newTestService(driver, &fakeLLM{reply: "ok"})

	_, err := service.Send(context.Background(), 1, "missing-uid", "xin chào")
	require.Error(t, err)
	require.Empty(t, driver.messages)
}

func TestSendCompletionFailureLearnsNothing(t *testing.T) {
	driver := newFakeDriver()
	service := newTestService(driver, &fakeLLM{err: errors.New("upstream unavailable")})

	_, err := service.Send(context.Background(), 1, "", "giải thích chi tiết")
	require.Error(t, err)

	// No reply means no persisted messages and no profile update.
	require.Empty(t, driver.messages)
	require.Nil(t, driver.styleProfiles[int32(1)])
}

func TestSendLearnFailurePropagates(t *testing.T) {
	driver := newFakeDriver()
	driver.upsertStyleErr = errors.New("disk full")
	service := newTestService(driver, &fakeLLM{reply: "ok"})

	_, err := service.Send(context.Background(), 1, "", "xin chào")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to learn")
}

func TestSendAppendsPersonaAddendum(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	llm := &fakeLLM{reply: "ok"}
	service := newTestService(driver, llm)

	// Train the profile until the addendum threshold is crossed.
	for i := 0; i < 5; i++ {
		_, err := service.Send(ctx, 1, "", "giải thích chi tiết bằng bảng biểu")
		require.NoError(t, err)
	}

	_, err := service.Send(ctx, 1, "", "câu hỏi mới")
	require.NoError(t, err)
	require.Contains(t, llm.sent[0].Content, "SỞ THÍCH CÁ NHÂN CỦA GIÁO VIÊN")
}

func TestDeriveTitleTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("â", 80)
	title := deriveTitle(long)
	require.Equal(t, 51, len([]rune(title)))
	require.True(t, strings.HasSuffix(title, "…"))

	short := "Soạn đề thi"
	require.Equal(t, short, deriveTitle(short))
}
