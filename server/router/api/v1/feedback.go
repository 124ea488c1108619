package v1

import (
	"log/slog"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lehuyanh/trogiang/store"
)

// UpsertFeedbackRequest rates one assistant message.
type UpsertFeedbackRequest struct {
	MessageUID string `json:"message_uid"`
	Rating     string `json:"rating"`
}

// UpsertFeedback records or replaces the teacher's rating of a message.
// POST /api/v1/feedback
func (s *APIV1Service) UpsertFeedback(c echo.Context) error {
	req := &UpsertFeedbackRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.MessageUID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message_uid is required"})
	}
	rating := store.FeedbackRating(req.Rating)
	if rating != store.FeedbackRatingLike && rating != store.FeedbackRatingDislike {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "rating must be LIKE or DISLIKE"})
	}
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	feedback, err := s.Store.UpsertMessageFeedback(c.Request().Context(), &store.UpsertMessageFeedback{
		TeacherID:  id,
		MessageUID: req.MessageUID,
		Rating:     rating,
	})
	if err != nil {
		slog.Error("failed to upsert feedback", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save feedback"})
	}
	return c.JSON(http.StatusOK, feedback)
}

// FeedbackStatsResponse summarizes ratings for one teacher.
type FeedbackStatsResponse struct {
	Total            int     `json:"total"`
	Likes            int     `json:"likes"`
	Dislikes         int     `json:"dislikes"`
	SatisfactionRate float64 `json:"satisfaction_rate"`
}

// GetFeedbackStats returns rating counts and the like ratio.
// GET /api/v1/feedback/stats
func (s *APIV1Service) GetFeedbackStats(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	list, err := s.Store.ListMessageFeedback(c.Request().Context(), &store.FindMessageFeedback{TeacherID: &id})
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load feedback"})
	}

	stats := FeedbackStatsResponse{Total: len(list)}
	for _, feedback := range list {
		if feedback.Rating == store.FeedbackRatingLike {
			stats.Likes++
		} else {
			stats.Dislikes++
		}
	}
	if stats.Total > 0 {
		rate := float64(stats.Likes) / float64(stats.Total)
		stats.SatisfactionRate = math.Round(rate*100) / 100
	}
	return c.JSON(http.StatusOK, stats)
}
