// Package chat orchestrates one assistant turn: transcript assembly, prompt
// personalization, completion, persistence, and preference learning.
package chat

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/plugin/ai/persona"
	"github.com/lehuyanh/trogiang/server/ai"
	"github.com/lehuyanh/trogiang/store"
)

const (
	// historyWindow is how many transcript messages are replayed per turn.
	historyWindow = 20

	// basePrompt is the assistant's standing instruction set. The persona
	// addendum is appended to it when the profile is confident enough.
	basePrompt = `Bạn là trợ giảng AI cho giáo viên Việt Nam. Hãy hỗ trợ soạn đề thi,
giáo án, nhận xét học sinh và tài liệu giảng dạy theo chương trình giáo dục phổ thông.
Trả lời bằng tiếng Việt, trình bày rõ ràng bằng Markdown.`
)

// Service runs chat turns for teachers.
type Service struct {
	store    *store.Store
	llm      ai.ChatService
	profiles persona.ProfileService
	learner  *persona.Learner
}

// NewService creates a chat service.
func NewService(s *store.Store, llm ai.ChatService, profiles persona.ProfileService, learner *persona.Learner) *Service {
	return &Service{
		store:    s,
		llm:      llm,
		profiles: profiles,
		learner:  learner,
	}
}

// Turn is the result of one completed chat turn.
type Turn struct {
	ConversationUID string
	UserMessageUID  string
	ReplyUID        string
	Reply           string
}

// Send runs one chat turn: it resolves (or creates) the conversation, builds
// the personalized prompt, obtains the assistant reply, persists both messages,
// and feeds the completed exchange to the learner.
//
// Learning runs strictly after the reply is obtained; a failed completion
// leaves the profile untouched.
func (s *Service) Send(ctx context.Context, teacherID int32, conversationUID, userMessage string) (*Turn, error) {
	conversation, err := s.resolveConversation(ctx, teacherID, conversationUID, userMessage)
	if err != nil {
		return nil, err
	}

	// Newest messages first so the window covers the tail of the transcript,
	// then back to chronological order for replay.
	history, err := s.store.ListMessages(ctx, &store.FindMessage{
		ConversationID: &conversation.ID,
		Limit:          historyWindow,
		OrderByIDDesc:  true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load conversation history")
	}
	slices.Reverse(history)

	messages := s.buildPrompt(ctx, teacherID, history, userMessage)

	reply, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return nil, errors.Wrap(err, "chat completion failed")
	}

	userMsg, err := s.store.CreateMessage(ctx, &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversation.ID,
		Role:           store.MessageRoleUser,
		Content:        userMessage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist user message")
	}

	replyMsg, err := s.store.CreateMessage(ctx, &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversation.ID,
		Role:           store.MessageRoleAssistant,
		Content:        reply,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to persist assistant message")
	}

	now := time.Now().Unix()
	if _, err := s.store.UpdateConversation(ctx, &store.UpdateConversation{
		ID:        conversation.ID,
		UpdatedTs: &now,
	}); err != nil {
		slog.Warn("failed to touch conversation", "conversation", conversation.UID, "error", err)
	}

	// The exchange is complete; learn from it. A persistence failure here is
	// real data loss and must reach the caller.
	if _, err := s.learner.Learn(ctx, teacherID, userMessage, reply); err != nil {
		return nil, errors.Wrap(err, "failed to learn from interaction")
	}

	return &Turn{
		ConversationUID: conversation.UID,
		UserMessageUID:  userMsg.UID,
		ReplyUID:        replyMsg.UID,
		Reply:           reply,
	}, nil
}

// buildPrompt assembles the outbound message list: system prompt with persona
// addendum, replayed history, then the new user message.
func (s *Service) buildPrompt(ctx context.Context, teacherID int32, history []*store.Message, userMessage string) []ai.Message {
	system := basePrompt
	profile, err := s.profiles.GetProfile(ctx, teacherID)
	if err != nil {
		// Personalization silently degrades; the turn still runs.
		slog.Warn("failed to load style profile for prompt", "teacher_id", teacherID, "error", err)
	} else if addendum := persona.Synthesize(profile); addendum != "" {
		system += addendum
	}

	messages := []ai.Message{{Role: "system", Content: system}}
	for _, msg := range history {
		role := "user"
		if msg.Role == store.MessageRoleAssistant {
			role = "assistant"
		}
		messages = append(messages, ai.Message{Role: role, Content: msg.Content})
	}
	messages = append(messages, ai.Message{Role: "user", Content: userMessage})
	return messages
}

func (s *Service) resolveConversation(ctx context.Context, teacherID int32, conversationUID, userMessage string) (*store.Conversation, error) {
	if conversationUID != "" {
		list, err := s.store.ListConversations(ctx, &store.FindConversation{
			UID:       &conversationUID,
			TeacherID: &teacherID,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to find conversation")
		}
		if len(list) == 0 {
			return nil, errors.Errorf("conversation %s not found", conversationUID)
		}
		return list[0], nil
	}

	conversation, err := s.store.CreateConversation(ctx, &store.Conversation{
		UID:       uuid.NewString(),
		TeacherID: teacherID,
		Title:     deriveTitle(userMessage),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create conversation")
	}
	return conversation, nil
}

// deriveTitle derives a conversation title from the opening message.
func deriveTitle(message string) string {
	const maxTitleRunes = 50
	runes := []rune(message)
	if len(runes) <= maxTitleRunes {
		return message
	}
	return string(runes[:maxTitleRunes]) + "…"
}
