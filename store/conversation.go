package store

type Conversation struct {
	ID        int32
	UID       string
	TeacherID int32
	Title     string
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID        *int32
	UID       *string
	TeacherID *int32
	Limit     int
}

type UpdateConversation struct {
	ID        int32
	Title     *string
	UpdatedTs *int64
}

type DeleteConversation struct {
	ID int32
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "USER"
	MessageRoleAssistant MessageRole = "ASSISTANT"
	MessageRoleSystem    MessageRole = "SYSTEM"
)

type Message struct {
	ID             int32
	UID            string
	ConversationID int32
	Role           MessageRole
	Content        string
	CreatedTs      int64
}

type FindMessage struct {
	ID             *int32
	UID            *string
	ConversationID *int32
	Limit          int

	// OrderByIDDesc returns newest messages first. Combined with Limit it
	// selects the tail of a transcript instead of its head.
	OrderByIDDesc bool
}

type DeleteMessage struct {
	ID int32
}
