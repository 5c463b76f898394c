package domain

// Draft is a durable entry in a chat's editor draft history. The editor
// keeps its own in-memory undo stack per session; drafts recorded here
// survive page reloads. History per chat is capped by configuration.
type Draft struct {
	DraftID   string `json:"draftId"`
	ChatID    string `json:"chatId"` // weak reference
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// NewDraft creates a draft entry stamped with the current time.
func NewDraft(draftID, chatID, content string) *Draft {
	return &Draft{
		DraftID:   draftID,
		ChatID:    chatID,
		Content:   content,
		Timestamp: NowMillis(),
	}
}
