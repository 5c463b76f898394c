package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

func TestNewChatDefaults(t *testing.T) {
	c := domain.NewChat("abc123")

	assert.Equal(t, "abc123", c.ChatID)
	assert.Equal(t, domain.DefaultChatTitle, c.Title)
	assert.False(t, c.IsPinned)
	assert.Empty(t, c.FolderID)
	assert.Empty(t, c.Tags)
	assert.Equal(t, c.CreatedAt, c.UpdatedAt)
}

func TestChatAddTagIdempotent(t *testing.T) {
	c := domain.NewChat("c1")

	assert.True(t, c.AddTag("tag-a"))
	assert.False(t, c.AddTag("tag-a"))
	assert.Equal(t, []string{"tag-a"}, c.Tags)
}

func TestChatRemoveTagPreservesOrder(t *testing.T) {
	c := domain.NewChat("c1")
	c.AddTag("tag-a")
	c.AddTag("tag-b")
	c.AddTag("tag-c")

	assert.True(t, c.RemoveTag("tag-b"))
	assert.Equal(t, []string{"tag-a", "tag-c"}, c.Tags)

	assert.False(t, c.RemoveTag("tag-b"))
}

func TestChatTouchMonotonic(t *testing.T) {
	c := domain.NewChat("c1")
	before := c.UpdatedAt

	// Repeated touches within the same millisecond must still advance.
	c.Touch()
	c.Touch()
	assert.Greater(t, c.UpdatedAt, before)
}

func TestMetadataPinUnpinIdempotent(t *testing.T) {
	m := domain.DefaultMetadata()

	assert.True(t, m.Pin("abc"))
	assert.False(t, m.Pin("abc"))
	assert.True(t, m.IsPinned("abc"))

	assert.True(t, m.Unpin("abc"))
	assert.False(t, m.Unpin("abc"))
	assert.False(t, m.IsPinned("abc"))
}

func TestFolderPatchApply(t *testing.T) {
	f := domain.NewFolder("folder-1", "Work", "#ff5733", 0)
	before := f.UpdatedAt

	name := "Projects"
	order := 3
	p := domain.FolderPatch{Name: &name, Order: &order}

	assert.True(t, p.Apply(f))
	assert.Equal(t, "Projects", f.Name)
	assert.Equal(t, "#ff5733", f.Color)
	assert.Equal(t, 3, f.Order)
	assert.Greater(t, f.UpdatedAt, before)
}

func TestFolderPatchNoChange(t *testing.T) {
	f := domain.NewFolder("folder-1", "Work", "#ff5733", 0)
	before := f.UpdatedAt

	same := "Work"
	p := domain.FolderPatch{Name: &same}
	assert.False(t, p.Apply(f))
	assert.Equal(t, before, f.UpdatedAt)
}

func TestDefaultSettings(t *testing.T) {
	s := domain.DefaultSettings("1.2.0")

	assert.Equal(t, "auto", s.Theme.Mode)
	assert.True(t, s.Features.TokenCounter)
	assert.Equal(t, "Ctrl+K", s.Shortcuts["commandPalette"])
	assert.Equal(t, "1.2.0", s.Version)
}
