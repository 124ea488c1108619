package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lehuyanh/trogiang/store"
)

// SendChatMessageRequest is the request body for a chat turn.
type SendChatMessageRequest struct {
	ConversationUID string `json:"conversation_uid"`
	Message         string `json:"message"`
}

// SendChatMessageResponse is the response body for a chat turn.
type SendChatMessageResponse struct {
	ConversationUID string `json:"conversation_uid"`
	UserMessageUID  string `json:"user_message_uid"`
	ReplyUID        string `json:"reply_uid"`
	Reply           string `json:"reply"`
}

// SendChatMessage runs one assistant turn.
// POST /api/v1/chat
func (s *APIV1Service) SendChatMessage(c echo.Context) error {
	req := &SendChatMessageRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	turn, err := s.Chat.Send(c.Request().Context(), id, req.ConversationUID, req.Message)
	if err != nil {
		slog.Error("chat turn failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "chat turn failed"})
	}

	return c.JSON(http.StatusOK, SendChatMessageResponse{
		ConversationUID: turn.ConversationUID,
		UserMessageUID:  turn.UserMessageUID,
		ReplyUID:        turn.ReplyUID,
		Reply:           turn.Reply,
	})
}

// ConversationResponse is one conversation in a listing.
type ConversationResponse struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	CreatedTs int64  `json:"created_ts"`
	UpdatedTs int64  `json:"updated_ts"`
}

// ListConversations lists the teacher's conversations, most recent first.
// GET /api/v1/conversations
func (s *APIV1Service) ListConversations(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	list, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{TeacherID: &id})
	if err != nil {
		slog.Error("failed to list conversations", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list conversations"})
	}

	resp := make([]ConversationResponse, 0, len(list))
	for _, conversation := range list {
		resp = append(resp, ConversationResponse{
			UID:       conversation.UID,
			Title:     conversation.Title,
			CreatedTs: conversation.CreatedTs,
			UpdatedTs: conversation.UpdatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// MessageResponse is one message in a transcript.
type MessageResponse struct {
	UID       string `json:"uid"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedTs int64  `json:"created_ts"`
}

// ListConversationMessages returns the transcript of one conversation.
// GET /api/v1/conversations/:uid/messages
func (s *APIV1Service) ListConversationMessages(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	conversation, err := s.findConversation(c, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	messages, err := s.Store.ListMessages(c.Request().Context(), &store.FindMessage{ConversationID: &conversation.ID})
	if err != nil {
		slog.Error("failed to list messages", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list messages"})
	}

	resp := make([]MessageResponse, 0, len(messages))
	for _, msg := range messages {
		resp = append(resp, MessageResponse{
			UID:       msg.UID,
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedTs: msg.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// DeleteConversation deletes a conversation and its messages.
// DELETE /api/v1/conversations/:uid
func (s *APIV1Service) DeleteConversation(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	conversation, err := s.findConversation(c, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "conversation not found"})
	}

	if err := s.Store.DeleteConversation(c.Request().Context(), &store.DeleteConversation{ID: conversation.ID}); err != nil {
		slog.Error("failed to delete conversation", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete conversation"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *APIV1Service) findConversation(c echo.Context, id int32) (*store.Conversation, error) {
	uid := c.Param("uid")
	list, err := s.Store.ListConversations(c.Request().Context(), &store.FindConversation{
		UID:       &uid,
		TeacherID: &id,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, echo.ErrNotFound
	}
	return list[0], nil
}
