package domain

// Folder is a user-created grouping for chats. Chats reference folders by
// id; the reference is weak (cascade-to-null on folder deletion, never
// cascade-delete).
type Folder struct {
	FolderID  string `json:"folderId"`
	Name      string `json:"name"`
	Color     string `json:"color"` // hex color, e.g. "#ff5733"
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
	// Order defines display sequence. Uniqueness is not enforced; callers
	// sort stably by value.
	Order int `json:"order"`
}

// NewFolder creates a folder with the given display order.
func NewFolder(folderID, name, color string, order int) *Folder {
	now := NowMillis()
	return &Folder{
		FolderID:  folderID,
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
		Order:     order,
	}
}

// Touch refreshes UpdatedAt, monotonically.
func (f *Folder) Touch() {
	now := NowMillis()
	if now <= f.UpdatedAt {
		now = f.UpdatedAt + 1
	}
	f.UpdatedAt = now
}
