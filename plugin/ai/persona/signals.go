package persona

import (
	"strings"
)

// FeatureSet is the structured signal set extracted from one user utterance.
// All fields default to zero values; extraction never fails.
type FeatureSet struct {
	Length    int
	WordCount int

	HasTable bool
	HasImage bool
	HasLatex bool
	HasList  bool

	IsExamRelated   bool
	IsLessonRelated bool

	WantsDetail  bool
	WantsBrevity bool

	// Difficulty is the single detected tier, or empty if none.
	Difficulty DifficultyTier

	// Topics are the matched topic tags, in detection order.
	Topics []string
}

// SignalDetector extracts learning signals from a user message. The keyword
// implementation is the default; a model-based classifier can be substituted
// without changing the learner.
type SignalDetector interface {
	Analyze(text string) FeatureSet
}

// KeywordDetector detects signals via case-insensitive matching against fixed
// Vietnamese educational keyword sets.
type KeywordDetector struct{}

// NewKeywordDetector creates the default keyword-based signal detector.
func NewKeywordDetector() *KeywordDetector {
	return &KeywordDetector{}
}

var (
	tableKeywords  = []string{"bảng", "table", "ma trận"}
	imageKeywords  = []string{"hình", "ảnh", "minh họa", "sơ đồ"}
	latexKeywords  = []string{"$", "toán", "phương trình", "biểu thức"}
	listKeywords   = []string{"danh sách", "liệt kê", "bullet"}
	examKeywords   = []string{"đề thi", "kiểm tra", "trắc nghiệm", "tự luận", "đề"}
	lessonKeywords = []string{"giáo án", "bài giảng", "tiết dạy", "kế hoạch"}
	detailKeywords = []string{"chi tiết", "cụ thể", "giải thích", "phân tích kỹ"}
	briefKeywords  = []string{"ngắn gọn", "tóm tắt", "vắn tắt", "nhanh"}

	// Checked in descending specificity so "vận dụng cao" is never
	// miscategorized as plain "vận dụng".
	difficultyPhrases = []struct {
		phrase string
		tier   DifficultyTier
	}{
		{"vận dụng cao", TierVanDungCao},
		{"vận dụng", TierVanDung},
		{"thông hiểu", TierThongHieu},
		{"nhận biết", TierNhanBiet},
	}

	topicGroups = []struct {
		tag      string
		keywords []string
	}{
		{"de_thi", []string{"đề thi", "kiểm tra", "trắc nghiệm"}},
		{"giao_an", []string{"giáo án", "bài giảng", "kế hoạch"}},
		{"danh_gia", []string{"nhận xét", "đánh giá", "học bạ"}},
		{"phuong_phap", []string{"phương pháp", "dạy học", "stem", "pbl"}},
		{"skkn", []string{"sáng kiến", "skkn", "kinh nghiệm"}},
		{"cong_nghe", []string{"công cụ", "phần mềm", "ai", "app"}},
	}
)

// Analyze parses a user message into a FeatureSet. It is a total function:
// empty or garbage input yields a zero-valued result.
func (*KeywordDetector) Analyze(text string) FeatureSet {
	lower := strings.ToLower(text)

	features := FeatureSet{
		Length:          len(text),
		WordCount:       len(strings.Fields(text)),
		HasTable:        containsAny(lower, tableKeywords),
		HasImage:        containsAny(lower, imageKeywords),
		HasLatex:        containsAny(lower, latexKeywords),
		HasList:         containsAny(lower, listKeywords),
		IsExamRelated:   containsAny(lower, examKeywords),
		IsLessonRelated: containsAny(lower, lessonKeywords),
		WantsDetail:     containsAny(lower, detailKeywords),
		WantsBrevity:    containsAny(lower, briefKeywords),
	}

	for _, d := range difficultyPhrases {
		if strings.Contains(lower, d.phrase) {
			features.Difficulty = d.tier
			break
		}
	}

	for _, g := range topicGroups {
		if containsAny(lower, g.keywords) {
			features.Topics = append(features.Topics, g.tag)
		}
	}

	return features
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
