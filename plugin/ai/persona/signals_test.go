package persona

import (
	"reflect"
	"testing"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	detector := NewKeywordDetector()
	features := detector.Analyze("")

	if features.Length != 0 || features.WordCount != 0 {
		t.Errorf("expected zero length and word count, got %d/%d", features.Length, features.WordCount)
	}
	if features.HasTable || features.HasImage || features.HasLatex || features.HasList {
		t.Error("expected no structural signals on empty input")
	}
	if features.WantsDetail || features.WantsBrevity {
		t.Error("expected no verbosity signals on empty input")
	}
	if features.Difficulty != "" {
		t.Errorf("expected no difficulty, got %q", features.Difficulty)
	}
	if len(features.Topics) != 0 {
		t.Errorf("expected no topics, got %v", features.Topics)
	}
}

func TestAnalyzeStructuralSignals(t *testing.T) {
	tests := []struct {
		text string
		want func(FeatureSet) bool
		desc string
	}{
		{"Tạo bảng so sánh hai phương án", func(f FeatureSet) bool { return f.HasTable }, "table from 'bảng'"},
		{"Cho tôi ma trận đề", func(f FeatureSet) bool { return f.HasTable }, "table from 'ma trận'"},
		{"Thêm hình minh họa vào bài", func(f FeatureSet) bool { return f.HasImage }, "image from 'minh họa'"},
		{"Vẽ sơ đồ tư duy", func(f FeatureSet) bool { return f.HasImage }, "image from 'sơ đồ'"},
		{"Viết phương trình bậc hai", func(f FeatureSet) bool { return f.HasLatex }, "latex from 'phương trình'"},
		{"Tính $x^2$", func(f FeatureSet) bool { return f.HasLatex }, "latex from '$'"},
		{"Liệt kê các ý chính", func(f FeatureSet) bool { return f.HasList }, "list from 'liệt kê'"},
	}

	detector := NewKeywordDetector()
	for _, tc := range tests {
		if got := detector.Analyze(tc.text); !tc.want(got) {
			t.Errorf("%s: not detected in %q", tc.desc, tc.text)
		}
	}
}

func TestAnalyzeVerbositySignals(t *testing.T) {
	detector := NewKeywordDetector()

	features := detector.Analyze("Hãy phân tích kỹ và cụ thể giúp tôi")
	if !features.WantsDetail {
		t.Error("expected WantsDetail")
	}

	features = detector.Analyze("Tóm tắt ngắn gọn giúp tôi")
	if !features.WantsBrevity {
		t.Error("expected WantsBrevity")
	}
}

func TestAnalyzeDifficultyMostSpecificFirst(t *testing.T) {
	tests := []struct {
		text string
		want DifficultyTier
	}{
		{"Thêm câu hỏi vận dụng cao", TierVanDungCao},
		{"Thêm câu hỏi vận dụng", TierVanDung},
		{"Câu thông hiểu thôi", TierThongHieu},
		{"Chỉ cần mức nhận biết", TierNhanBiet},
		{"Không nói gì về độ khó", ""},
	}

	detector := NewKeywordDetector()
	for _, tc := range tests {
		if got := detector.Analyze(tc.text); got.Difficulty != tc.want {
			t.Errorf("Analyze(%q).Difficulty = %q, want %q", tc.text, got.Difficulty, tc.want)
		}
	}
}

func TestAnalyzeTopicsDeterministicOrder(t *testing.T) {
	detector := NewKeywordDetector()

	// Mentions exam, lesson plan, and methodology keywords at once.
	text := "Soạn giáo án và đề thi theo phương pháp mới"
	want := []string{"de_thi", "giao_an", "phuong_phap"}

	for i := 0; i < 10; i++ {
		got := detector.Analyze(text).Topics
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Topics = %v, want %v", got, want)
		}
	}
}

func TestAnalyzeCaseInsensitive(t *testing.T) {
	detector := NewKeywordDetector()
	if !detector.Analyze("TẠO BẢNG ĐIỂM").HasTable {
		t.Error("expected table detection on upper-case input")
	}
}
