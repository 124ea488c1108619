package store

type FeedbackRating string

const (
	FeedbackRatingLike    FeedbackRating = "LIKE"
	FeedbackRatingDislike FeedbackRating = "DISLIKE"
)

// MessageFeedback records a like/dislike on one assistant message.
type MessageFeedback struct {
	ID         int32
	TeacherID  int32
	MessageUID string
	Rating     FeedbackRating
	CreatedTs  int64
}

type FindMessageFeedback struct {
	TeacherID  *int32
	MessageUID *string
	Limit      int
}

type UpsertMessageFeedback struct {
	TeacherID  int32
	MessageUID string
	Rating     FeedbackRating
}
