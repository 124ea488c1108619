// Package v1 exposes the JSON API consumed by the web client.
package v1

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/internal/profile"
	"github.com/lehuyanh/trogiang/plugin/ai/persona"
	"github.com/lehuyanh/trogiang/server/service/chat"
	"github.com/lehuyanh/trogiang/store"
)

// defaultTeacherID is used when no teacher is specified. Single-teacher
// installations never need anything else; multi-teacher deployments pass
// an explicit teacher_id.
const defaultTeacherID int32 = 1

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Chat     *chat.Service
	Profiles persona.ProfileService
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, chatService *chat.Service, profiles persona.ProfileService) *APIV1Service {
	return &APIV1Service{
		Profile:  profile,
		Store:    store,
		Chat:     chatService,
		Profiles: profiles,
	}
}

// RegisterRoutes registers all API routes on the given Echo group.
func (s *APIV1Service) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", s.SendChatMessage)
	g.GET("/conversations", s.ListConversations)
	g.GET("/conversations/:uid/messages", s.ListConversationMessages)
	g.DELETE("/conversations/:uid", s.DeleteConversation)

	g.GET("/preferences", s.GetPreferences)
	g.PATCH("/preferences", s.UpdatePreferences)
	g.POST("/preferences/reset", s.ResetPreferences)

	g.GET("/profile", s.GetStyleProfile)
	g.GET("/profile/insights", s.ListInsights)
	g.GET("/profile/score", s.GetPersonalizationScore)
	g.GET("/profile/export", s.ExportStyleProfile)
	g.POST("/profile/import", s.ImportStyleProfile)

	g.POST("/feedback", s.UpsertFeedback)
	g.GET("/feedback/stats", s.GetFeedbackStats)
}

// teacherID resolves the acting teacher from the request. An absent parameter
// means the single-teacher default; a malformed one is a client error, never a
// silent fallback onto another teacher's profile.
func teacherID(c echo.Context) (int32, error) {
	raw := c.QueryParam("teacher_id")
	if raw == "" {
		return defaultTeacherID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid teacher_id %q", raw)
	}
	return int32(id), nil
}
