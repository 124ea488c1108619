package persona

// Typed update structs for the manual preference-edit path. Nil fields leave
// the current value unchanged, so a settings form can submit only what the
// teacher actually touched.

// ContentUpdate patches content preferences.
type ContentUpdate struct {
	DocumentLength *DocumentLength `json:"document_length,omitempty"`
	DetailLevel    *float64        `json:"detail_level,omitempty"`
	UseHeadings    *bool           `json:"use_headings,omitempty"`
	UseLists       *bool           `json:"use_lists,omitempty"`
	UseTables      *bool           `json:"use_tables,omitempty"`
	UseMindMaps    *bool           `json:"use_mind_maps,omitempty"`
	UseImages      *bool           `json:"use_images,omitempty"`
	UseLatex       *bool           `json:"use_latex,omitempty"`

	DifficultyDistribution *DifficultyDistribution `json:"difficulty_distribution,omitempty"`
}

// CommunicationUpdate patches communication style.
type CommunicationUpdate struct {
	FormalityScore    *float64           `json:"formality_score,omitempty"`
	AddressStyle      *AddressStyle      `json:"address_style,omitempty"`
	ExplanationLength *ExplanationLength `json:"explanation_length,omitempty"`
	UseEmoji          *bool              `json:"use_emoji,omitempty"`
}

// PedagogyUpdate patches the pedagogical approach.
type PedagogyUpdate struct {
	StudentCentered        *bool                `json:"student_centered,omitempty"`
	CriticalThinking       *bool                `json:"critical_thinking,omitempty"`
	RealWorldConnection    *bool                `json:"real_world_connection,omitempty"`
	ExamFocused            *bool                `json:"exam_focused,omitempty"`
	PreferredExerciseTypes []string             `json:"preferred_exercise_types,omitempty"`
	AssessmentFrequency    *AssessmentFrequency `json:"assessment_frequency,omitempty"`
}

// TechnicalUpdate patches technical preferences.
type TechnicalUpdate struct {
	PreferredFileFormat *FileFormat   `json:"preferred_file_format,omitempty"`
	ImageQuality        *ImageQuality `json:"image_quality,omitempty"`
	AutoSaveDocuments   *bool         `json:"auto_save_documents,omitempty"`
	AutoBackupChat      *bool         `json:"auto_backup_chat,omitempty"`
	RemindExams         *bool         `json:"remind_exams,omitempty"`
	SuggestMaterials    *bool         `json:"suggest_materials,omitempty"`
	WeeklyReport        *bool         `json:"weekly_report,omitempty"`
}

// PreferencesUpdate bundles the per-category patches.
type PreferencesUpdate struct {
	Content       *ContentUpdate       `json:"content_preferences,omitempty"`
	Communication *CommunicationUpdate `json:"communication_style,omitempty"`
	Pedagogy      *PedagogyUpdate      `json:"pedagogical_approach,omitempty"`
	Technical     *TechnicalUpdate     `json:"technical_preferences,omitempty"`
}

// Apply writes the non-nil fields of the update onto prefs.
func (u *PreferencesUpdate) Apply(prefs *TeacherPreferences) {
	if u == nil {
		return
	}
	if u.Content != nil {
		u.Content.apply(&prefs.Content)
	}
	if u.Communication != nil {
		u.Communication.apply(&prefs.Communication)
	}
	if u.Pedagogy != nil {
		u.Pedagogy.apply(&prefs.Pedagogy)
	}
	if u.Technical != nil {
		u.Technical.apply(&prefs.Technical)
	}
}

func (u *ContentUpdate) apply(c *ContentPreferences) {
	if u.DocumentLength != nil {
		c.DocumentLength = *u.DocumentLength
	}
	if u.DetailLevel != nil {
		c.DetailLevel = clampRange(*u.DetailLevel, 1, 5)
	}
	if u.UseHeadings != nil {
		c.UseHeadings = *u.UseHeadings
	}
	if u.UseLists != nil {
		c.UseLists = *u.UseLists
	}
	if u.UseTables != nil {
		c.UseTables = *u.UseTables
	}
	if u.UseMindMaps != nil {
		c.UseMindMaps = *u.UseMindMaps
	}
	if u.UseImages != nil {
		c.UseImages = *u.UseImages
	}
	if u.UseLatex != nil {
		c.UseLatex = *u.UseLatex
	}
	if u.DifficultyDistribution != nil {
		dist := *u.DifficultyDistribution
		// Preserve the simplex invariant even for manual edits: no negative
		// tiers, and the four values sum to 100.
		dist.NhanBiet = max(0, dist.NhanBiet)
		dist.ThongHieu = max(0, dist.ThongHieu)
		dist.VanDung = max(0, dist.VanDung)
		dist.VanDungCao = max(0, dist.VanDungCao)
		if total := dist.Sum(); total > 0 && total != 100 {
			scale := 100 / total
			dist.NhanBiet *= scale
			dist.ThongHieu *= scale
			dist.VanDung *= scale
			dist.VanDungCao *= scale
		}
		c.DifficultyDistribution = dist
	}
}

func (u *CommunicationUpdate) apply(c *CommunicationStyle) {
	if u.FormalityScore != nil {
		c.FormalityScore = clampRange(*u.FormalityScore, 0, 1)
	}
	if u.AddressStyle != nil {
		c.AddressStyle = *u.AddressStyle
	}
	if u.ExplanationLength != nil {
		c.ExplanationLength = *u.ExplanationLength
	}
	if u.UseEmoji != nil {
		c.UseEmoji = *u.UseEmoji
	}
}

func (u *PedagogyUpdate) apply(p *PedagogicalApproach) {
	if u.StudentCentered != nil {
		p.StudentCentered = *u.StudentCentered
	}
	if u.CriticalThinking != nil {
		p.CriticalThinking = *u.CriticalThinking
	}
	if u.RealWorldConnection != nil {
		p.RealWorldConnection = *u.RealWorldConnection
	}
	if u.ExamFocused != nil {
		p.ExamFocused = *u.ExamFocused
	}
	if u.PreferredExerciseTypes != nil {
		p.PreferredExerciseTypes = dedupe(u.PreferredExerciseTypes)
	}
	if u.AssessmentFrequency != nil {
		p.AssessmentFrequency = *u.AssessmentFrequency
	}
}

func (u *TechnicalUpdate) apply(t *TechnicalPreferences) {
	if u.PreferredFileFormat != nil {
		t.PreferredFileFormat = *u.PreferredFileFormat
	}
	if u.ImageQuality != nil {
		t.ImageQuality = *u.ImageQuality
	}
	if u.AutoSaveDocuments != nil {
		t.AutoSaveDocuments = *u.AutoSaveDocuments
	}
	if u.AutoBackupChat != nil {
		t.AutoBackupChat = *u.AutoBackupChat
	}
	if u.RemindExams != nil {
		t.RemindExams = *u.RemindExams
	}
	if u.SuggestMaterials != nil {
		t.SuggestMaterials = *u.SuggestMaterials
	}
	if u.WeeklyReport != nil {
		t.WeeklyReport = *u.WeeklyReport
	}
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
