package v1

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lehuyanh/trogiang/plugin/ai/persona"
)

// GetPreferences returns the teacher's current preference vector.
// GET /api/v1/preferences
func (s *APIV1Service) GetPreferences(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	prefs, err := s.Profiles.GetPreferences(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to get preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get preferences"})
	}
	return c.JSON(http.StatusOK, prefs)
}

// UpdatePreferences applies a manual partial update to the preference vector.
// PATCH /api/v1/preferences
func (s *APIV1Service) UpdatePreferences(c echo.Context) error {
	update := &persona.PreferencesUpdate{}
	if err := c.Bind(update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	ctx := c.Request().Context()
	prefs, err := s.Profiles.GetPreferences(ctx, id)
	if err != nil {
		slog.Error("failed to get preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get preferences"})
	}
	update.Apply(prefs)
	if err := s.Profiles.SavePreferences(ctx, id, prefs); err != nil {
		slog.Error("failed to save preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to save preferences"})
	}
	return c.JSON(http.StatusOK, prefs)
}

// ResetPreferences restores the default preference vector. Interaction
// counters and creation time are kept so confidence history is not erased.
// POST /api/v1/preferences/reset
func (s *APIV1Service) ResetPreferences(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	profile, err := s.Profiles.ResetProfile(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to reset preferences", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to reset preferences"})
	}
	return c.JSON(http.StatusOK, profile)
}

// GetStyleProfile returns the full learned profile.
// GET /api/v1/profile
func (s *APIV1Service) GetStyleProfile(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	profile, err := s.Profiles.GetProfile(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to get style profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get style profile"})
	}
	return c.JSON(http.StatusOK, profile)
}

// ListInsights returns the learned insight ledger.
// GET /api/v1/profile/insights
func (s *APIV1Service) ListInsights(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	profile, err := s.Profiles.GetProfile(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to get style profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get style profile"})
	}
	insights := profile.Insights
	if insights == nil {
		insights = []persona.Insight{}
	}
	return c.JSON(http.StatusOK, insights)
}

// PersonalizationScoreResponse reports how personalized the assistant is.
type PersonalizationScoreResponse struct {
	Score             int     `json:"score"`
	Confidence        float64 `json:"confidence"`
	TotalInteractions int     `json:"total_interactions"`
	InsightCount      int     `json:"insight_count"`
}

// GetPersonalizationScore returns the confidence as a 0-100 score.
// GET /api/v1/profile/score
func (s *APIV1Service) GetPersonalizationScore(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	profile, err := s.Profiles.GetProfile(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to get style profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get style profile"})
	}
	return c.JSON(http.StatusOK, PersonalizationScoreResponse{
		Score:             profile.PersonalizationScore(),
		Confidence:        profile.Confidence,
		TotalInteractions: profile.TotalInteractions,
		InsightCount:      len(profile.Insights),
	})
}

// ExportStyleProfile returns the profile as a downloadable JSON document.
// GET /api/v1/profile/export
func (s *APIV1Service) ExportStyleProfile(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	profile, err := s.Profiles.GetProfile(c.Request().Context(), id)
	if err != nil {
		slog.Error("failed to get style profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get style profile"})
	}
	data, err := persona.ExportProfile(profile)
	if err != nil {
		slog.Error("failed to export style profile", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to export style profile"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="style_profile.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ImportStyleProfile replaces the profile with an uploaded JSON document.
// The document is validated before anything is written, so a malformed
// upload leaves the stored profile untouched.
// POST /api/v1/profile/import
func (s *APIV1Service) ImportStyleProfile(c echo.Context) error {
	id, err := teacherID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "failed to read request body"})
	}
	profile, err := persona.ImportProfile(c.Request().Context(), s.Profiles, id, data)
	if err != nil {
		slog.Warn("rejected style profile import", "error", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, profile)
}
