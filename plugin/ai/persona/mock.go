package persona

import (
	"context"
	"sync"
	"time"
)

// MockProfileService is an in-memory ProfileService for tests.
type MockProfileService struct {
	mu       sync.Mutex
	profiles map[int32]*StyleProfile

	// SaveErr, when set, is returned by SaveProfile to simulate write failures.
	SaveErr error
	// Clock, when set, supplies timestamps instead of time.Now.
	Clock Clock
}

// NewMockProfileService creates an empty in-memory profile service.
func NewMockProfileService() *MockProfileService {
	return &MockProfileService{
		profiles: make(map[int32]*StyleProfile),
	}
}

func (m *MockProfileService) now() time.Time {
	if m.Clock != nil {
		return m.Clock.Now()
	}
	return time.Now()
}

func (m *MockProfileService) GetProfile(_ context.Context, teacherID int32) (*StyleProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.profiles[teacherID]; ok {
		clone := *p
		clone.Insights = append([]Insight{}, p.Insights...)
		return &clone, nil
	}
	return NewDefaultProfile(), nil
}

func (m *MockProfileService) SaveProfile(_ context.Context, teacherID int32, profile *StyleProfile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	profile.LastUpdated = m.now()
	clone := *profile
	clone.Insights = append([]Insight{}, profile.Insights...)
	m.profiles[teacherID] = &clone
	return nil
}

func (m *MockProfileService) GetPreferences(ctx context.Context, teacherID int32) (*TeacherPreferences, error) {
	profile, err := m.GetProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	prefs := profile.Preferences
	return &prefs, nil
}

func (m *MockProfileService) SavePreferences(ctx context.Context, teacherID int32, prefs *TeacherPreferences) error {
	profile, err := m.GetProfile(ctx, teacherID)
	if err != nil {
		return err
	}
	profile.Preferences = *prefs
	return m.SaveProfile(ctx, teacherID, profile)
}

func (m *MockProfileService) ResetProfile(ctx context.Context, teacherID int32) (*StyleProfile, error) {
	profile, err := m.GetProfile(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	profile.Preferences = DefaultPreferences()
	profile.Insights = []Insight{}
	profile.Confidence = InitialConfidence
	if err := m.SaveProfile(ctx, teacherID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Ensure MockProfileService implements ProfileService.
var _ ProfileService = (*MockProfileService)(nil)
