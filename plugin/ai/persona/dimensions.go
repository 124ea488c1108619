// Package persona provides adaptive teacher-preference learning for the chat assistant.
// It observes chat turns, maintains a multi-dimensional style profile per teacher,
// and renders the learned preferences back into the system prompt.
package persona

// DocumentLength is the preferred length band for generated documents.
type DocumentLength string

const (
	// LengthShort is 200-400 words.
	LengthShort DocumentLength = "short"
	// LengthMedium is 400-700 words.
	LengthMedium DocumentLength = "medium"
	// LengthLong is 700-1000 words.
	LengthLong DocumentLength = "long"
	// LengthVeryLong is over 1000 words.
	LengthVeryLong DocumentLength = "very_long"
)

// DifficultyTier is one of the four question-difficulty levels used in
// Vietnamese curricula (nhận biết / thông hiểu / vận dụng / vận dụng cao).
type DifficultyTier string

const (
	TierNhanBiet   DifficultyTier = "nhan_biet"
	TierThongHieu  DifficultyTier = "thong_hieu"
	TierVanDung    DifficultyTier = "van_dung"
	TierVanDungCao DifficultyTier = "van_dung_cao"
)

// DifficultyDistribution holds the preferred percentage of questions per tier.
// The four values always sum to 100.
type DifficultyDistribution struct {
	NhanBiet   float64 `json:"nhan_biet"`
	ThongHieu  float64 `json:"thong_hieu"`
	VanDung    float64 `json:"van_dung"`
	VanDungCao float64 `json:"van_dung_cao"`
}

// Sum returns the total of the four tiers.
func (d DifficultyDistribution) Sum() float64 {
	return d.NhanBiet + d.ThongHieu + d.VanDung + d.VanDungCao
}

// ContentPreferences represents the estimated ideal shape of generated documents.
type ContentPreferences struct {
	DocumentLength DocumentLength `json:"document_length"`
	// DetailLevel is the smoothed target for explanation granularity, 1-5.
	DetailLevel float64 `json:"detail_level"`
	UseHeadings bool    `json:"use_headings"`
	UseLists    bool    `json:"use_lists"`
	UseTables   bool    `json:"use_tables"`
	UseMindMaps bool    `json:"use_mind_maps"`
	UseImages   bool    `json:"use_images"`
	UseLatex    bool    `json:"use_latex"`

	DifficultyDistribution DifficultyDistribution `json:"difficulty_distribution"`
}

// AddressStyle is how the assistant addresses the teacher.
type AddressStyle string

const (
	AddressBan    AddressStyle = "ban"
	AddressThayCo AddressStyle = "thay_co"
	AddressAnhChi AddressStyle = "anh_chi"
)

// ExplanationLength is the preferred verbosity of explanations.
type ExplanationLength string

const (
	ExplanationShort    ExplanationLength = "short"
	ExplanationBalanced ExplanationLength = "balanced"
	ExplanationDetailed ExplanationLength = "detailed"
)

// CommunicationStyle represents learned communication preferences.
type CommunicationStyle struct {
	// FormalityScore is 0-1, 0=formal, 1=casual.
	FormalityScore    float64           `json:"formality_score"`
	AddressStyle      AddressStyle      `json:"address_style"`
	ExplanationLength ExplanationLength `json:"explanation_length"`
	UseEmoji          bool              `json:"use_emoji"`
}

// AssessmentFrequency is how often the teacher prefers to assess students.
type AssessmentFrequency string

const (
	AssessPerLesson  AssessmentFrequency = "per_lesson"
	AssessPerChapter AssessmentFrequency = "per_chapter"
	AssessMidFinal   AssessmentFrequency = "mid_final"
)

// PedagogicalApproach represents the teacher's pedagogical leanings.
type PedagogicalApproach struct {
	StudentCentered     bool `json:"student_centered"`
	CriticalThinking    bool `json:"critical_thinking"`
	RealWorldConnection bool `json:"real_world_connection"`
	ExamFocused         bool `json:"exam_focused"`
	// PreferredExerciseTypes is a set of category tags, e.g. trac_nghiem, tu_luan.
	PreferredExerciseTypes []string            `json:"preferred_exercise_types"`
	AssessmentFrequency    AssessmentFrequency `json:"assessment_frequency"`
}

// FileFormat is the preferred export file format.
type FileFormat string

const (
	FormatDocx FileFormat = "docx"
	FormatPDF  FileFormat = "pdf"
	FormatMD   FileFormat = "md"
	FormatHTML FileFormat = "html"
)

// ImageQuality is the preferred quality for generated images.
type ImageQuality string

const (
	QualityLow    ImageQuality = "low"
	QualityMedium ImageQuality = "medium"
	QualityHigh   ImageQuality = "high"
)

// TechnicalPreferences are manually configured toggles. The learner never
// touches them; they are carried in the profile for export/import symmetry.
type TechnicalPreferences struct {
	PreferredFileFormat FileFormat   `json:"preferred_file_format"`
	ImageQuality        ImageQuality `json:"image_quality"`
	AutoSaveDocuments   bool         `json:"auto_save_documents"`
	AutoBackupChat      bool         `json:"auto_backup_chat"`
	RemindExams         bool         `json:"remind_exams"`
	SuggestMaterials    bool         `json:"suggest_materials"`
	WeeklyReport        bool         `json:"weekly_report"`
}

// TeacherPreferences aggregates all preference dimensions for one teacher.
type TeacherPreferences struct {
	Content       ContentPreferences   `json:"content_preferences"`
	Communication CommunicationStyle   `json:"communication_style"`
	Pedagogy      PedagogicalApproach  `json:"pedagogical_approach"`
	Technical     TechnicalPreferences `json:"technical_preferences"`
}

// DefaultContentPreferences returns sensible defaults for content preferences.
func DefaultContentPreferences() ContentPreferences {
	return ContentPreferences{
		DocumentLength: LengthMedium,
		DetailLevel:    3,
		UseHeadings:    true,
		UseLists:       true,
		UseTables:      false,
		UseMindMaps:    false,
		UseImages:      false,
		UseLatex:       false,
		DifficultyDistribution: DifficultyDistribution{
			NhanBiet:   30,
			ThongHieu:  40,
			VanDung:    20,
			VanDungCao: 10,
		},
	}
}

// DefaultCommunicationStyle returns sensible defaults for communication style.
func DefaultCommunicationStyle() CommunicationStyle {
	return CommunicationStyle{
		FormalityScore:    0.5,
		AddressStyle:      AddressBan,
		ExplanationLength: ExplanationBalanced,
		UseEmoji:          true,
	}
}

// DefaultPedagogicalApproach returns sensible defaults for the pedagogical approach.
func DefaultPedagogicalApproach() PedagogicalApproach {
	return PedagogicalApproach{
		StudentCentered:        true,
		CriticalThinking:       true,
		RealWorldConnection:    false,
		ExamFocused:            false,
		PreferredExerciseTypes: []string{"trac_nghiem", "tu_luan"},
		AssessmentFrequency:    AssessPerChapter,
	}
}

// DefaultTechnicalPreferences returns sensible defaults for technical preferences.
func DefaultTechnicalPreferences() TechnicalPreferences {
	return TechnicalPreferences{
		PreferredFileFormat: FormatDocx,
		ImageQuality:        QualityMedium,
		AutoSaveDocuments:   true,
		AutoBackupChat:      true,
		RemindExams:         true,
		SuggestMaterials:    true,
		WeeklyReport:        false,
	}
}

// DefaultPreferences returns a TeacherPreferences with all default values.
func DefaultPreferences() TeacherPreferences {
	return TeacherPreferences{
		Content:       DefaultContentPreferences(),
		Communication: DefaultCommunicationStyle(),
		Pedagogy:      DefaultPedagogicalApproach(),
		Technical:     DefaultTechnicalPreferences(),
	}
}
