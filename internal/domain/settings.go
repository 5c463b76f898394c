package domain

import "slices"

// Settings is the cross-device user preferences singleton, replicated by
// the platform's sync storage under the "settings" key. Every read may be
// stale relative to another device; writes are last-writer-wins.
type Settings struct {
	Theme      ThemeSettings     `json:"theme"`
	Features   FeatureSettings   `json:"features"`
	Shortcuts  map[string]string `json:"shortcuts"`
	ScratchPad string            `json:"scratchPad,omitempty"`
	Version    string            `json:"version"`
}

// ThemeSettings controls appearance.
type ThemeSettings struct {
	Mode         string `json:"mode" validate:"omitempty,oneof=auto light dark"`
	HighContrast bool   `json:"highContrast"`
}

// FeatureSettings holds per-feature enable flags.
type FeatureSettings struct {
	TokenCounter       bool `json:"tokenCounter"`
	PromptCoach        bool `json:"promptCoach"`
	SyntaxHighlighting bool `json:"syntaxHighlighting"`
	SessionTimer       bool `json:"sessionTimer"`
}

// DefaultSettings returns the settings written on first install.
func DefaultSettings(version string) *Settings {
	return &Settings{
		Theme: ThemeSettings{Mode: "auto"},
		Features: FeatureSettings{
			TokenCounter:       true,
			PromptCoach:        true,
			SyntaxHighlighting: true,
			SessionTimer:       true,
		},
		Shortcuts: map[string]string{
			"commandPalette": "Ctrl+K",
			"newChat":        "Ctrl+N",
		},
		Version: version,
	}
}

// Metadata is the cross-device singleton replicated under the "metadata"
// key. PinnedChats is the authoritative pin list: a chat's local IsPinned
// flag must agree with membership here.
type Metadata struct {
	LastSyncTimestamp int64    `json:"lastSyncTimestamp"`
	FolderStructure   []string `json:"folderStructure"` // reserved
	PinnedChats       []string `json:"pinnedChats"`
	// DeviceID identifies the device that performed the last write. Useful
	// when debugging replication races; ignored by reconciliation.
	DeviceID string `json:"deviceId,omitempty"`
}

// DefaultMetadata returns the metadata written on first install.
func DefaultMetadata() *Metadata {
	return &Metadata{
		LastSyncTimestamp: NowMillis(),
		FolderStructure:   []string{},
		PinnedChats:       []string{},
	}
}

// IsPinned reports whether the chat id is in the pinned list.
func (m *Metadata) IsPinned(chatID string) bool {
	return slices.Contains(m.PinnedChats, chatID)
}

// Pin adds the chat id to the pinned list. Idempotent: adding an
// already-present id is a no-op. Returns true if the list changed.
func (m *Metadata) Pin(chatID string) bool {
	if m.IsPinned(chatID) {
		return false
	}
	m.PinnedChats = append(m.PinnedChats, chatID)
	return true
}

// Unpin removes the chat id from the pinned list. Idempotent. Returns
// true if the list changed.
func (m *Metadata) Unpin(chatID string) bool {
	for i, id := range m.PinnedChats {
		if id == chatID {
			m.PinnedChats = append(m.PinnedChats[:i], m.PinnedChats[i+1:]...)
			return true
		}
	}
	return false
}
