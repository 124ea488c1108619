package persona

import (
	"context"
	"testing"
)

func TestExportParseRoundTrip(t *testing.T) {
	profile := NewDefaultProfile()
	profile.Confidence = 0.72
	profile.TotalInteractions = 34
	profile.Preferences.Content.UseTables = true
	profile.AddOrReinforceInsight("use_tables", "Bạn thích sử dụng bảng biểu")

	data, err := ExportProfile(profile)
	if err != nil {
		t.Fatal(err)
	}

	parsed, err := ParseProfile(data)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Confidence != profile.Confidence {
		t.Errorf("Confidence = %v, want %v", parsed.Confidence, profile.Confidence)
	}
	if parsed.TotalInteractions != profile.TotalInteractions {
		t.Errorf("TotalInteractions = %d, want %d", parsed.TotalInteractions, profile.TotalInteractions)
	}
	if !parsed.Preferences.Content.UseTables {
		t.Error("UseTables lost in round trip")
	}
	if len(parsed.Insights) != 1 || parsed.Insights[0].Key != "use_tables" {
		t.Errorf("insights lost in round trip: %+v", parsed.Insights)
	}
}

func TestParseProfileRejectsIncompleteDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not a json document"},
		{"missing confidence", `{"preferences": {}, "total_interactions": 3}`},
		{"missing preferences", `{"confidence": 0.5}`},
		{"empty object", `{}`},
	}
	for _, tc := range tests {
		if _, err := ParseProfile([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected rejection", tc.name)
		}
	}
}

func TestImportProfileRejectionLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc := NewMockProfileService()

	existing := NewDefaultProfile()
	existing.TotalInteractions = 12
	if err := svc.SaveProfile(ctx, 1, existing); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportProfile(ctx, svc, 1, []byte(`{"preferences": {}}`)); err == nil {
		t.Fatal("expected import rejection")
	}

	profile, err := svc.GetProfile(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if profile.TotalInteractions != 12 {
		t.Errorf("stored profile mutated: TotalInteractions = %d", profile.TotalInteractions)
	}
}

func TestImportProfileReplacesStoredProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewMockProfileService()

	imported := NewDefaultProfile()
	imported.Confidence = 0.8
	imported.TotalInteractions = 99
	data, err := ExportProfile(imported)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ImportProfile(ctx, svc, 1, data); err != nil {
		t.Fatal(err)
	}

	profile, err := svc.GetProfile(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Confidence != 0.8 || profile.TotalInteractions != 99 {
		t.Errorf("imported profile not stored: %+v", profile)
	}
}
