package persona

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Insight keys registered by the learner.
const (
	InsightDetailHigh = "detail_high"
	InsightDetailLow  = "detail_low"
	InsightUseTables  = "use_tables"
	InsightUseImages  = "use_images"
	InsightUseLatex   = "use_latex"
)

var insightLabels = map[string]string{
	InsightDetailHigh: "Bạn thường yêu cầu giải thích chi tiết",
	InsightDetailLow:  "Bạn thích nội dung ngắn gọn, súc tích",
	InsightUseTables:  "Bạn thích sử dụng bảng biểu",
	InsightUseImages:  "Bạn thích dùng hình ảnh minh họa",
	InsightUseLatex:   "Bạn hay dùng công thức toán LaTeX",
}

// Learner updates a teacher's style profile from completed chat turns.
type Learner struct {
	profiles ProfileService
	detector SignalDetector
	clock    Clock

	// locks serializes learning per teacher. Interleaved read-modify-write on
	// the same profile would silently drop updates.
	locks sync.Map // int32 -> *sync.Mutex
}

// NewLearner creates a new Learner. A nil detector falls back to the keyword detector.
func NewLearner(profiles ProfileService, detector SignalDetector) *Learner {
	if detector == nil {
		detector = NewKeywordDetector()
	}
	return &Learner{
		profiles: profiles,
		detector: detector,
		clock:    systemClock{},
	}
}

// WithClock overrides the learner clock. Intended for tests.
func (l *Learner) WithClock(c Clock) *Learner {
	l.clock = c
	return l
}

// learningRate is a step function of the interaction count: fast convergence
// while cold, stable refinement once the profile has seen enough turns.
func learningRate(totalInteractions int) float64 {
	switch {
	case totalInteractions < 5:
		return 0.3
	case totalInteractions < 20:
		return 0.2
	default:
		return 0.1
	}
}

// emaUpdate blends a new observation into the running estimate at weight alpha.
func emaUpdate(oldValue, newValue, alpha float64) float64 {
	return alpha*newValue + (1-alpha)*oldValue
}

// Learn processes one completed user-message/assistant-reply pair and persists
// the updated profile. It must only be called after a reply has actually been
// obtained; a failed generation is not a learnable exchange.
func (l *Learner) Learn(ctx context.Context, teacherID int32, userMessage, aiResponse string) (*StyleProfile, error) {
	mu := l.lockFor(teacherID)
	mu.Lock()
	defer mu.Unlock()

	profile, err := l.profiles.GetProfile(ctx, teacherID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load style profile")
	}

	features := l.detector.Analyze(userMessage)
	alpha := learningRate(profile.TotalInteractions)
	content := &profile.Preferences.Content

	// Detail level. Both pulls may fire from one message when keyword sets
	// overlap; the net effect is additive damping.
	if features.WantsDetail {
		content.DetailLevel = emaUpdate(content.DetailLevel, 5, alpha)
		profile.AddOrReinforceInsight(InsightDetailHigh, insightLabels[InsightDetailHigh])
	}
	if features.WantsBrevity {
		content.DetailLevel = emaUpdate(content.DetailLevel, 1, alpha)
		profile.AddOrReinforceInsight(InsightDetailLow, insightLabels[InsightDetailLow])
	}

	// Structural flags are monotonic: once observed, never unlearned.
	if features.HasTable {
		content.UseTables = true
		profile.AddOrReinforceInsight(InsightUseTables, insightLabels[InsightUseTables])
	}
	if features.HasImage {
		content.UseImages = true
		profile.AddOrReinforceInsight(InsightUseImages, insightLabels[InsightUseImages])
	}
	if features.HasLatex {
		content.UseLatex = true
		profile.AddOrReinforceInsight(InsightUseLatex, insightLabels[InsightUseLatex])
	}

	// Document length from the reply's actual size, only when the user asked
	// for it. Replies under 400 words are inconclusive.
	aiWordCount := len(strings.Fields(aiResponse))
	if aiWordCount >= 400 {
		if aiWordCount < 700 && features.WantsBrevity {
			content.DocumentLength = LengthShort
		} else if aiWordCount > 1000 && features.WantsDetail {
			content.DocumentLength = LengthVeryLong
		}
	}

	if features.Difficulty != "" {
		updateDifficulty(&content.DifficultyDistribution, features.Difficulty)
	}

	profile.TotalInteractions++

	// Confidence uses the pre-update LastUpdated; SaveProfile refreshes it.
	profile.Confidence = CalculateConfidence(profile, l.clock.Now())

	if err := l.profiles.SaveProfile(ctx, teacherID, profile); err != nil {
		slog.Error("failed to persist learned profile", "teacher_id", teacherID, "error", err)
		return nil, errors.Wrap(err, "failed to save style profile")
	}

	return profile, nil
}

// updateDifficulty drifts the distribution toward the requested tier: a fixed
// step of 2 points, capped at 60 for any single tier, then renormalized
// proportionally so the four values sum to exactly 100.
func updateDifficulty(dist *DifficultyDistribution, tier DifficultyTier) {
	bump := func(v float64) float64 {
		return min(60, v+2)
	}

	switch tier {
	case TierNhanBiet:
		dist.NhanBiet = bump(dist.NhanBiet)
	case TierThongHieu:
		dist.ThongHieu = bump(dist.ThongHieu)
	case TierVanDung:
		dist.VanDung = bump(dist.VanDung)
	case TierVanDungCao:
		dist.VanDungCao = bump(dist.VanDungCao)
	}

	if total := dist.Sum(); total > 100 {
		scale := 100 / total
		dist.NhanBiet *= scale
		dist.ThongHieu *= scale
		dist.VanDung *= scale
		dist.VanDungCao *= scale
	}
}

func (l *Learner) lockFor(teacherID int32) *sync.Mutex {
	mu, _ := l.locks.LoadOrStore(teacherID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
