package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})
	return s
}

func TestOpenAndReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := store.Open(dir, nil)
	require.NoError(t, err)

	ctx := context.Background()
	chat := domain.NewChat("chat-1")
	_, err = s.Chats.Put(ctx, chat)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Schema version written on first open must be accepted on the second.
	s, err = store.Open(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Chats.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-1", got.ChatID)
}

func TestGetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Chats.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPutUpsertReplacesRecord(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	chat := domain.NewChat("chat-1")
	_, err := s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	chat.Title = "Renamed"
	_, err = s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	got, err := s.Chats.Get(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)

	all, err := s.Chats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPutRejectsEmptyID(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Chats.Put(context.Background(), &domain.Chat{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestDeleteIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	chat := domain.NewChat("chat-1")
	_, err := s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	require.NoError(t, s.Chats.Delete(ctx, "chat-1"))
	require.NoError(t, s.Chats.Delete(ctx, "chat-1"))

	_, err = s.Chats.Get(ctx, "chat-1")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListByFolderIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := domain.NewChat("chat-a")
	a.FolderID = "folder-1"
	b := domain.NewChat("chat-b")
	b.FolderID = "folder-1"
	c := domain.NewChat("chat-c")
	c.FolderID = "folder-2"
	unfiled := domain.NewChat("chat-d")

	for _, chat := range []*domain.Chat{b, a, c, unfiled} {
		_, err := s.Chats.Put(ctx, chat)
		require.NoError(t, err)
	}

	inFolder, err := s.Chats.ListByIndex(ctx, "folderId", "folder-1")
	require.NoError(t, err)
	require.Len(t, inFolder, 2)
	assert.Equal(t, "chat-a", inFolder[0].ChatID)
	assert.Equal(t, "chat-b", inFolder[1].ChatID)

	// The empty index value finds chats with no folder.
	none, err := s.Chats.ListByIndex(ctx, "folderId", "")
	require.NoError(t, err)
	require.Len(t, none, 1)
	assert.Equal(t, "chat-d", none[0].ChatID)
}

func TestIndexRewrittenOnUpdate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	chat := domain.NewChat("chat-1")
	chat.FolderID = "folder-1"
	_, err := s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	chat.FolderID = "folder-2"
	_, err = s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	old, err := s.Chats.ListByIndex(ctx, "folderId", "folder-1")
	require.NoError(t, err)
	assert.Empty(t, old)

	moved, err := s.Chats.ListByIndex(ctx, "folderId", "folder-2")
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, "chat-1", moved[0].ChatID)
}

func TestIndexRemovedOnDelete(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	chat := domain.NewChat("chat-1")
	chat.IsPinned = true
	_, err := s.Chats.Put(ctx, chat)
	require.NoError(t, err)

	require.NoError(t, s.Chats.Delete(ctx, "chat-1"))

	pinned, err := s.Chats.ListByIndex(ctx, "isPinned", "1")
	require.NoError(t, err)
	assert.Empty(t, pinned)
}

func TestListSkipsIndexEntries(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"chat-1", "chat-2", "chat-3"} {
		_, err := s.Chats.Put(ctx, domain.NewChat(id))
		require.NoError(t, err)
	}

	all, err := s.Chats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCollectionsAreIsolated(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.Chats.Put(ctx, domain.NewChat("x"))
	require.NoError(t, err)
	_, err = s.Folders.Put(ctx, domain.NewFolder("folder-x", "Work", "#ff5733", 0))
	require.NoError(t, err)

	folders, err := s.Folders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, folders, 1)

	chats, err := s.Chats.List(ctx)
	require.NoError(t, err)
	assert.Len(t, chats, 1)
}

func TestDraftChatIndex(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	d1 := domain.NewDraft("draft-1", "chat-1", "hello")
	d2 := domain.NewDraft("draft-2", "chat-1", "hello world")
	d3 := domain.NewDraft("draft-3", "chat-2", "other")

	for _, d := range []*domain.Draft{d1, d2, d3} {
		_, err := s.Drafts.Put(ctx, d)
		require.NoError(t, err)
	}

	drafts, err := s.Drafts.ListByIndex(ctx, "chatId", "chat-1")
	require.NoError(t, err)
	assert.Len(t, drafts, 2)
}

func TestCanceledContext(t *testing.T) {
	s := setupTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Chats.Get(ctx, "chat-1")
	assert.ErrorIs(t, err, context.Canceled)
}
