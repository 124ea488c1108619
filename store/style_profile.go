package store

// StyleProfile represents the persisted personalization record for one teacher.
// Payload is the full profile aggregate serialized as JSON.
type StyleProfile struct {
	TeacherID int32
	Payload   string // JSON string
	CreatedTs int64
	UpdatedTs int64
}

// FindStyleProfile specifies the conditions for finding a style profile.
type FindStyleProfile struct {
	TeacherID *int32
}

// UpsertStyleProfile specifies the data for upserting a style profile.
type UpsertStyleProfile struct {
	TeacherID int32
	Payload   string // JSON string
}

// DeleteStyleProfile specifies the style profile to delete.
type DeleteStyleProfile struct {
	TeacherID int32
}
