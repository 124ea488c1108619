package store

// TeacherPreferences is the read-optimized projection of the preferences
// inside the style profile. It is kept in sync on every profile save so the
// prompt and settings layers can read it without unpacking the full profile.
type TeacherPreferences struct {
	TeacherID   int32
	Preferences string // JSON string
	CreatedTs   int64
	UpdatedTs   int64
}

// FindTeacherPreferences specifies the conditions for finding teacher preferences.
type FindTeacherPreferences struct {
	TeacherID *int32
}

// UpsertTeacherPreferences specifies the data for upserting teacher preferences.
type UpsertTeacherPreferences struct {
	TeacherID   int32
	Preferences string // JSON string
}

// DeleteTeacherPreferences specifies the teacher preferences to delete.
type DeleteTeacherPreferences struct {
	TeacherID int32
}
