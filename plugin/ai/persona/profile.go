package persona

import (
	"time"
)

// InsightSource tells whether an insight was learned automatically or entered manually.
type InsightSource string

const (
	SourceAuto   InsightSource = "auto"
	SourceManual InsightSource = "manual"
)

// Insight is a discrete, human-readable fact the assistant believes it has
// learned about the teacher, with its own confidence value.
type Insight struct {
	Key        string        `json:"key"`
	Label      string        `json:"label"`
	Confidence float64       `json:"confidence"`
	LearnedAt  time.Time     `json:"learned_at"`
	Source     InsightSource `json:"source"`
}

// StyleProfile is the complete persisted personalization record for one teacher.
type StyleProfile struct {
	Preferences       TeacherPreferences `json:"preferences"`
	Confidence        float64            `json:"confidence"`
	TotalInteractions int                `json:"total_interactions"`
	Insights          []Insight          `json:"insights"`
	CreatedAt         time.Time          `json:"created_at"`
	LastUpdated       time.Time          `json:"last_updated"`
}

// InitialConfidence is the cold-start confidence of a fresh profile.
const InitialConfidence = 0.3

// NewDefaultProfile returns a fresh profile with default preferences.
func NewDefaultProfile() *StyleProfile {
	now := time.Now()
	return &StyleProfile{
		Preferences:       DefaultPreferences(),
		Confidence:        InitialConfidence,
		TotalInteractions: 0,
		Insights:          []Insight{},
		CreatedAt:         now,
		LastUpdated:       now,
	}
}

// AddOrReinforceInsight registers a learned fact. The first occurrence of a key
// appends a new insight at confidence 0.5; repeats raise the existing insight's
// confidence by 0.05 up to 1.0. Key and label are immutable once created.
func (p *StyleProfile) AddOrReinforceInsight(key, label string) {
	for i := range p.Insights {
		if p.Insights[i].Key == key {
			p.Insights[i].Confidence = min(1.0, p.Insights[i].Confidence+0.05)
			return
		}
	}
	p.Insights = append(p.Insights, Insight{
		Key:        key,
		Label:      label,
		Confidence: 0.5,
		LearnedAt:  time.Now(),
		Source:     SourceAuto,
	})
}

// FindInsight returns the insight with the given key, or nil.
func (p *StyleProfile) FindInsight(key string) *Insight {
	for i := range p.Insights {
		if p.Insights[i].Key == key {
			return &p.Insights[i]
		}
	}
	return nil
}

// PersonalizationScore is the profile confidence as a 0-100 percentage,
// shown on the dashboard.
func (p *StyleProfile) PersonalizationScore() int {
	return int(p.Confidence*100 + 0.5)
}
