// Package domain defines the entities persisted by the workspace server:
// chats, folders, tags, snippets, drafts, and the cross-device settings
// blob. Field names and epoch-millisecond timestamps match the persisted
// shape of existing installations and must not change.
package domain

import (
	"slices"
	"time"
)

// NowMillis returns the current time as epoch milliseconds, the timestamp
// unit used across all persisted records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Chat is organizational metadata attached to a conversation on the host
// page. The host page owns chat existence; records here are created lazily
// the first time a feature pins, tags, or files a chat, and are never
// deleted by this system.
type Chat struct {
	ChatID    string   `json:"chatId"`
	Title     string   `json:"title"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	IsPinned  bool     `json:"isPinned"`
	FolderID  string   `json:"folderId,omitempty"` // weak reference, empty = unfiled
	Tags      []string `json:"tags"`               // ordered tag ids, no duplicates
}

// DefaultChatTitle is used for chats the host page has not named yet.
const DefaultChatTitle = "Untitled Chat"

// NewChat synthesizes a default record for a chat id discovered from page
// context. Callers persist it only once an actual mutation applies.
func NewChat(chatID string) *Chat {
	now := NowMillis()
	return &Chat{
		ChatID:    chatID,
		Title:     DefaultChatTitle,
		CreatedAt: now,
		UpdatedAt: now,
		IsPinned:  false,
		Tags:      []string{},
	}
}

// Touch refreshes UpdatedAt. Monotonic: never moves backwards even if the
// wall clock does within the same millisecond.
func (c *Chat) Touch() {
	now := NowMillis()
	if now <= c.UpdatedAt {
		now = c.UpdatedAt + 1
	}
	c.UpdatedAt = now
}

// HasTag reports whether the tag id is attached to this chat.
func (c *Chat) HasTag(tagID string) bool {
	return slices.Contains(c.Tags, tagID)
}

// AddTag appends the tag id if not already present. Returns false if it
// was already attached. Touches UpdatedAt on success.
func (c *Chat) AddTag(tagID string) bool {
	if c.HasTag(tagID) {
		return false
	}
	c.Tags = append(c.Tags, tagID)
	c.Touch()
	return true
}

// RemoveTag prunes the tag id, preserving the order of remaining tags.
// Returns false if the tag was not attached.
func (c *Chat) RemoveTag(tagID string) bool {
	for i, t := range c.Tags {
		if t == tagID {
			c.Tags = append(c.Tags[:i], c.Tags[i+1:]...)
			c.Touch()
			return true
		}
	}
	return false
}
