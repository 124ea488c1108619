package persona

import (
	"math"
	"time"
)

const (
	sampleSaturation  = 50 // interactions until the sample factor maxes out
	insightSaturation = 10 // distinct insights until the insight factor maxes out
	recencyDecayDays  = 30

	sampleWeight  = 0.4
	insightWeight = 0.3
	recencyWeight = 0.3
)

// CalculateConfidence derives the overall profile confidence from sample size,
// learned insights, and recency. The recency factor is computed against the
// profile's current LastUpdated, so during a learning event it reflects the
// staleness before that event, not after.
func CalculateConfidence(profile *StyleProfile, now time.Time) float64 {
	sampleFactor := clamp01(float64(profile.TotalInteractions) / sampleSaturation)
	insightFactor := clamp01(float64(len(profile.Insights)) / insightSaturation)

	days := now.Sub(profile.LastUpdated).Hours() / 24
	recencyFactor := clamp01(math.Exp(-days / recencyDecayDays))

	confidence := sampleWeight*sampleFactor + insightWeight*insightFactor + recencyWeight*recencyFactor
	return math.Round(confidence*100) / 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
