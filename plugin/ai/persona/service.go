package persona

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/lehuyanh/trogiang/store"
)

// ProfileService loads and persists style profiles.
//
// Read failures degrade to defaults so a corrupt record never interrupts the
// chat flow; write failures propagate, because silently losing learned state
// defeats the feature's purpose.
type ProfileService interface {
	// GetProfile retrieves the teacher's style profile, falling back to a
	// fresh default profile when absent or unreadable.
	GetProfile(ctx context.Context, teacherID int32) (*StyleProfile, error)

	// SaveProfile persists the profile and keeps the standalone preferences
	// projection in sync. Refreshes LastUpdated.
	SaveProfile(ctx context.Context, teacherID int32, profile *StyleProfile) error

	// GetPreferences retrieves the standalone preferences projection,
	// falling back to defaults when absent or unreadable.
	GetPreferences(ctx context.Context, teacherID int32) (*TeacherPreferences, error)

	// SavePreferences overwrites the preferences both standalone and inside
	// the style profile (the manual edit path). Counters and insights are
	// left untouched.
	SavePreferences(ctx context.Context, teacherID int32, prefs *TeacherPreferences) error

	// ResetProfile restores default preferences, clears all insights, and
	// drops confidence back to the cold-start value.
	ResetProfile(ctx context.Context, teacherID int32) (*StyleProfile, error)
}

// Service is the store-backed ProfileService.
type Service struct {
	store *store.Store
	clock Clock
}

// NewService creates a store-backed profile service.
func NewService(s *store.Store) *Service {
	return &Service{store: s, clock: systemClock{}}
}

func (s *Service) GetProfile(ctx context.Context, teacherID int32) (*StyleProfile, error) {
	row, err := s.store.GetStyleProfile(ctx, &store.FindStyleProfile{TeacherID: &teacherID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get style profile")
	}
	if row == nil {
		return NewDefaultProfile(), nil
	}

	var profile StyleProfile
	if err := json.Unmarshal([]byte(row.Payload), &profile); err != nil {
		slog.Warn("failed to parse style profile payload, using defaults",
			"teacher_id", teacherID,
			"error", err,
		)
		return NewDefaultProfile(), nil
	}
	if profile.Insights == nil {
		profile.Insights = []Insight{}
	}

	return &profile, nil
}

func (s *Service) SaveProfile(ctx context.Context, teacherID int32, profile *StyleProfile) error {
	profile.LastUpdated = s.clock.Now()

	payload, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "failed to marshal style profile")
	}

	if _, err := s.store.UpsertStyleProfile(ctx, &store.UpsertStyleProfile{
		TeacherID: teacherID,
		Payload:   string(payload),
	}); err != nil {
		return errors.Wrap(err, "failed to upsert style profile")
	}

	// Keep the read-optimized projection in sync.
	prefsJSON, err := json.Marshal(profile.Preferences)
	if err != nil {
		return errors.Wrap(err, "failed to marshal preferences")
	}
	if _, err := s.store.UpsertTeacherPreferences(ctx, &store.UpsertTeacherPreferences{
		TeacherID:   teacherID,
		Preferences: string(prefsJSON),
	}); err != nil {
		return errors.Wrap(err, "failed to upsert teacher preferences")
	}

	return nil
}

func (s *Service) GetPreferences(ctx context.Context, teacherID int32) (*TeacherPreferences, error) {
	row, err := s.store.GetTeacherPreferences(ctx, &store.FindTeacherPreferences{TeacherID: &teacherID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get teacher preferences")
	}
	if row == nil {
		prefs := DefaultPreferences()
		return &prefs, nil
	}

	var prefs TeacherPreferences
	if err := json.Unmarshal([]byte(row.Preferences), &prefs); err != nil {
		slog.Warn("failed to parse teacher preferences, using defaults",
			"teacher_id", teacherID,
			"error", err,
		)
		defaults := DefaultPreferences()
		return &defaults, nil
	}

	return &prefs, nil
}

func (s *Service) SavePreferences(ctx context.Context, teacherID int32, prefs *TeacherPreferences) error {
	profile, err := s.GetProfile(ctx, teacherID)
	if err != nil {
		return err
	}
	profile.Preferences = *prefs
	return s.SaveProfile(ctx, teacherID, profile)
}

func (s *Service) ResetProfile(ctx context.Context, teacherID int32) (*StyleProfile, error) {
	profile, err := s.GetProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	profile.Preferences = DefaultPreferences()
	profile.Insights = []Insight{}
	profile.Confidence = InitialConfidence

	if err := s.SaveProfile(ctx, teacherID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

// Ensure Service implements ProfileService.
var _ ProfileService = (*Service)(nil)
