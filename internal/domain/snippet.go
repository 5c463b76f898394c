package domain

// Snippet is a reusable piece of prompt text the user saves for insertion
// via the command palette.
type Snippet struct {
	SnippetID string `json:"snippetId"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewSnippet creates a snippet.
func NewSnippet(snippetID, title, content string) *Snippet {
	now := NowMillis()
	return &Snippet{
		SnippetID: snippetID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt, monotonically.
func (s *Snippet) Touch() {
	now := NowMillis()
	if now <= s.UpdatedAt {
		now = s.UpdatedAt + 1
	}
	s.UpdatedAt = now
}
