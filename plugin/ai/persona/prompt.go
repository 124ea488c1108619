package persona

import (
	"fmt"
	"math"
	"strings"
)

// MinPromptConfidence is the confidence below which no addendum is emitted.
// An undertrained profile must not inject noise into the prompt.
const MinPromptConfidence = 0.2

var lengthLabels = map[DocumentLength]string{
	LengthShort:    "200-400 từ",
	LengthMedium:   "400-700 từ",
	LengthLong:     "700-1000 từ",
	LengthVeryLong: "trên 1000 từ",
}

var addressLabels = map[AddressStyle]string{
	AddressBan:    "bạn",
	AddressThayCo: "thầy/cô",
	AddressAnhChi: "anh/chị",
}

// Synthesize renders the profile into a natural-language addendum for the
// system prompt. Returns the empty string when confidence is below
// MinPromptConfidence. Performs no I/O.
func Synthesize(profile *StyleProfile) string {
	if profile == nil || profile.Confidence < MinPromptConfidence {
		return ""
	}

	prefs := profile.Preferences
	parts := []string{}

	parts = append(parts, "\n## SỞ THÍCH CÁ NHÂN CỦA GIÁO VIÊN (Chatbot đã học)")

	parts = append(parts, fmt.Sprintf("- Độ dài tài liệu ưa thích: %s", lengthLabels[prefs.Content.DocumentLength]))
	parts = append(parts, fmt.Sprintf("- Mức độ chi tiết: %.1f/5", prefs.Content.DetailLevel))

	structures := []string{}
	if prefs.Content.UseTables {
		structures = append(structures, "bảng biểu")
	}
	if prefs.Content.UseImages {
		structures = append(structures, "hình ảnh")
	}
	if prefs.Content.UseLatex {
		structures = append(structures, "LaTeX")
	}
	if prefs.Content.UseLists {
		structures = append(structures, "danh sách")
	}
	if len(structures) > 0 {
		parts = append(parts, fmt.Sprintf("- Thích dùng: %s", strings.Join(structures, ", ")))
	}

	// Mid-range formality is left unstated.
	if prefs.Communication.FormalityScore > 0.6 {
		parts = append(parts, "- Phong cách: Thân thiện, gần gũi")
	} else if prefs.Communication.FormalityScore < 0.4 {
		parts = append(parts, "- Phong cách: Trang trọng, chuyên nghiệp")
	}

	parts = append(parts, fmt.Sprintf("- Xưng hô: Gọi giáo viên là %q", addressLabels[prefs.Communication.AddressStyle]))

	if prefs.Communication.UseEmoji {
		parts = append(parts, "- Có thể dùng emoji 😊")
	}

	dist := prefs.Content.DifficultyDistribution
	parts = append(parts, fmt.Sprintf("- Phân bố độ khó: NB %d%% / TH %d%% / VD %d%% / VDC %d%%",
		roundPercent(dist.NhanBiet),
		roundPercent(dist.ThongHieu),
		roundPercent(dist.VanDung),
		roundPercent(dist.VanDungCao)))

	if prefs.Pedagogy.RealWorldConnection {
		parts = append(parts, "- Thích kết nối với thực tế")
	}
	if prefs.Pedagogy.ExamFocused {
		parts = append(parts, "- Tập trung vào kỹ thuật làm bài thi")
	}

	return strings.Join(parts, "\n")
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
