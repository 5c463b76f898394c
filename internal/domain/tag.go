package domain

// Tag is a label attachable to any number of chats. Chats hold tag ids in
// an ordered sequence; on tag deletion the id is pruned from every chat
// (cascade-to-remove).
type Tag struct {
	TagID string `json:"tagId"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewTag creates a tag.
func NewTag(tagID, name, color string) *Tag {
	return &Tag{
		TagID: tagID,
		Name:  name,
		Color: color,
	}
}
