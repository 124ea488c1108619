package persona

import (
	"math"
	"testing"
	"time"
)

func TestCalculateConfidenceColdStart(t *testing.T) {
	now := time.Now()
	profile := NewDefaultProfile()
	profile.LastUpdated = now

	// No interactions, no insights, perfectly fresh: only the recency term.
	if got := CalculateConfidence(profile, now); got != 0.3 {
		t.Errorf("cold-start confidence = %v, want 0.3", got)
	}
}

func TestCalculateConfidenceSaturates(t *testing.T) {
	now := time.Now()
	profile := NewDefaultProfile()
	profile.LastUpdated = now
	profile.TotalInteractions = 500
	for i := 0; i < 25; i++ {
		profile.Insights = append(profile.Insights, Insight{Key: string(rune('a' + i))})
	}

	if got := CalculateConfidence(profile, now); got != 1.0 {
		t.Errorf("saturated confidence = %v, want 1.0", got)
	}
}

func TestCalculateConfidenceRecencyDecay(t *testing.T) {
	now := time.Now()
	profile := NewDefaultProfile()
	profile.LastUpdated = now.Add(-30 * 24 * time.Hour)

	// 0.3 * e^-1 rounded to two decimals.
	want := math.Round(0.3*math.Exp(-1)*100) / 100
	if got := CalculateConfidence(profile, now); got != want {
		t.Errorf("decayed confidence = %v, want %v", got, want)
	}
}

func TestCalculateConfidencePartialFactors(t *testing.T) {
	now := time.Now()
	profile := NewDefaultProfile()
	profile.LastUpdated = now
	profile.TotalInteractions = 25
	profile.Insights = []Insight{{Key: "a"}, {Key: "b"}, {Key: "c"}, {Key: "d"}, {Key: "e"}}

	// 0.4*0.5 + 0.3*0.5 + 0.3*1 = 0.65
	if got := CalculateConfidence(profile, now); got != 0.65 {
		t.Errorf("confidence = %v, want 0.65", got)
	}
}

func TestCalculateConfidenceIsTwoDecimals(t *testing.T) {
	now := time.Now()
	profile := NewDefaultProfile()
	profile.LastUpdated = now.Add(-17 * 24 * time.Hour)
	profile.TotalInteractions = 7
	profile.Insights = []Insight{{Key: "a"}, {Key: "b"}}

	got := CalculateConfidence(profile, now)
	if got < 0 || got > 1 {
		t.Fatalf("confidence %v out of [0,1]", got)
	}
	if scaled := got * 100; scaled != math.Trunc(scaled) {
		t.Errorf("confidence %v not rounded to two decimals", got)
	}
}
