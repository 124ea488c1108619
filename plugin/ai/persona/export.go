package persona

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// ExportProfile serializes the full style profile to a self-contained JSON
// document, suitable for backup and later import.
func ExportProfile(profile *StyleProfile) ([]byte, error) {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to export style profile")
	}
	return data, nil
}

// importedProfile mirrors StyleProfile with pointers on the required fields so
// their absence is distinguishable from zero values.
type importedProfile struct {
	Preferences       *TeacherPreferences `json:"preferences"`
	Confidence        *float64            `json:"confidence"`
	TotalInteractions int                 `json:"total_interactions"`
	Insights          []Insight           `json:"insights"`
}

// ParseProfile validates and parses a previously exported document. It rejects
// any document lacking a preferences object or a numeric confidence field.
func ParseProfile(data []byte) (*StyleProfile, error) {
	var imported importedProfile
	if err := json.Unmarshal(data, &imported); err != nil {
		return nil, errors.Wrap(err, "invalid profile document")
	}
	if imported.Preferences == nil {
		return nil, errors.New("profile document missing preferences")
	}
	if imported.Confidence == nil {
		return nil, errors.New("profile document missing confidence")
	}

	var profile StyleProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, errors.Wrap(err, "invalid profile document")
	}
	if profile.Insights == nil {
		profile.Insights = []Insight{}
	}
	return &profile, nil
}

// ImportProfile validates an exported document and, only if valid, replaces
// the teacher's stored profile. No partial mutation occurs on rejection.
func ImportProfile(ctx context.Context, svc ProfileService, teacherID int32, data []byte) (*StyleProfile, error) {
	profile, err := ParseProfile(data)
	if err != nil {
		return nil, err
	}
	if err := svc.SaveProfile(ctx, teacherID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
