package workspace_test

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/store"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
	"github.com/workspaceapp/workspace-server/internal/validation"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

func newTestService(t *testing.T) *workspace.Service {
	t.Helper()
	return newTestServiceWithOptions(t, workspace.Options{Version: "1.0.0-test"})
}

func newTestServiceWithOptions(t *testing.T, opts workspace.Options) *workspace.Service {
	t.Helper()

	st, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sy := syncstore.New(filepath.Join(t.TempDir(), "settings.json"), nil)

	svc := workspace.New(st, sy, validation.New(), slog.New(slog.DiscardHandler), opts)
	require.NoError(t, svc.Initialize(context.Background()))
	return svc
}

func TestInitializeIdempotent(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Initialize(context.Background()))
	require.NoError(t, svc.Initialize(context.Background()))
}

func TestCreateFolderRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Work", Color: "#ff5733"})
	require.NoError(t, err)
	require.NotEmpty(t, created.FolderID)

	got, err := svc.GetFolder(ctx, created.FolderID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Color, got.Color)
	assert.Equal(t, created.Order, got.Order)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
}

func TestCreateFolderValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateFolder(context.Background(), workspace.CreateFolderInput{Name: "Work", Color: "red"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestFolderScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	work, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Work", Color: "#ff5733"})
	require.NoError(t, err)
	assert.Equal(t, 0, work.Order)

	personal, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Personal", Color: "#33ff57"})
	require.NoError(t, err)
	assert.Equal(t, 1, personal.Order)

	_, err = svc.AssignChatToFolder(ctx, "abc123", work.FolderID)
	require.NoError(t, err)

	chat, err := svc.GetChat(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, work.FolderID, chat.FolderID)

	require.NoError(t, svc.DeleteFolder(ctx, work.FolderID))

	chat, err = svc.GetChat(ctx, "abc123")
	require.NoError(t, err)
	assert.Empty(t, chat.FolderID)
}

func TestDeleteFolderCascadesToAllChats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Bulk", Color: "#112233"})
	require.NoError(t, err)

	chatIDs := []string{"c1", "c2", "c3", "c4", "c5"}
	for _, id := range chatIDs {
		_, err := svc.AssignChatToFolder(ctx, id, folder.FolderID)
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteFolder(ctx, folder.FolderID))

	folders, err := svc.ListFolders(ctx)
	require.NoError(t, err)
	assert.Empty(t, folders)

	for _, id := range chatIDs {
		chat, err := svc.GetChat(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, chat.FolderID, "chat %s still references the deleted folder", id)
	}
}

func TestAssignToMissingFolder(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AssignChatToFolder(context.Background(), "c1", "folder-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestTagScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	important, err := svc.CreateTag(ctx, workspace.CreateTagInput{Name: "Important", Color: "#ff3333"})
	require.NoError(t, err)

	_, err = svc.AddTagToChat(ctx, "c1", important.TagID)
	require.NoError(t, err)
	_, err = svc.AddTagToChat(ctx, "c2", important.TagID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTag(ctx, important.TagID))

	for _, id := range []string{"c1", "c2"} {
		chat, err := svc.GetChat(ctx, id)
		require.NoError(t, err)
		assert.False(t, chat.HasTag(important.TagID))
	}
}

func TestDeleteTagPreservesRemainingOrder(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var tagIDs []string
	for _, name := range []string{"alpha", "beta", "gamma"} {
		tag, err := svc.CreateTag(ctx, workspace.CreateTagInput{Name: name, Color: "#123456"})
		require.NoError(t, err)
		tagIDs = append(tagIDs, tag.TagID)
		_, err = svc.AddTagToChat(ctx, "c1", tag.TagID)
		require.NoError(t, err)
	}

	require.NoError(t, svc.DeleteTag(ctx, tagIDs[1]))

	chat, err := svc.GetChat(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{tagIDs[0], tagIDs[2]}, chat.Tags)
}

func TestAddTagIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tag, err := svc.CreateTag(ctx, workspace.CreateTagInput{Name: "Once", Color: "#abcdef"})
	require.NoError(t, err)

	_, err = svc.AddTagToChat(ctx, "c1", tag.TagID)
	require.NoError(t, err)
	chat, err := svc.AddTagToChat(ctx, "c1", tag.TagID)
	require.NoError(t, err)
	assert.Equal(t, []string{tag.TagID}, chat.Tags)
}

func TestGetChatSynthesizesDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	chat, err := svc.GetChat(ctx, "never-seen")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultChatTitle, chat.Title)
	assert.False(t, chat.IsPinned)
	assert.Empty(t, chat.FolderID)
	assert.Empty(t, chat.Tags)

	// Browsing never persists: the record must not show up in listings.
	all, err := svc.AllChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestTogglePinOnNonexistentChat(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pinned, err := svc.TogglePin(ctx, "fresh-chat")
	require.NoError(t, err)
	assert.True(t, pinned)

	chat, err := svc.GetChat(ctx, "fresh-chat")
	require.NoError(t, err)
	assert.True(t, chat.IsPinned)
	assert.Equal(t, domain.DefaultChatTitle, chat.Title)
	assert.Empty(t, chat.Tags)
}

func TestTogglePinTwiceRestoresState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	pinned, err := svc.TogglePin(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, pinned)

	pinnedChats, err := svc.PinnedChats(ctx)
	require.NoError(t, err)
	require.Len(t, pinnedChats, 1)

	pinned, err = svc.TogglePin(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, pinned)

	pinnedChats, err = svc.PinnedChats(ctx)
	require.NoError(t, err)
	assert.Empty(t, pinnedChats)
}

func TestTogglePinKeepsMetadataSymmetric(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.TogglePin(ctx, "c1")
	require.NoError(t, err)
	_, err = svc.TogglePin(ctx, "c2")
	require.NoError(t, err)
	_, err = svc.TogglePin(ctx, "c1")
	require.NoError(t, err)

	// Metadata membership must mirror local isPinned exactly.
	require.NoError(t, svc.ReconcilePins(ctx))

	pinnedChats, err := svc.PinnedChats(ctx)
	require.NoError(t, err)
	require.Len(t, pinnedChats, 1)
	assert.Equal(t, "c2", pinnedChats[0].ChatID)
}

func TestReconcilePinsMetadataWins(t *testing.T) {
	st, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sy := syncstore.New(filepath.Join(t.TempDir(), "settings.json"), nil)
	ctx := context.Background()

	// Seed drift before the service starts: chat pinned locally but not
	// replicated, and a replicated pin with no local record.
	local := domain.NewChat("local-only")
	local.IsPinned = true
	_, err = st.Chats.Put(ctx, local)
	require.NoError(t, err)

	m := domain.DefaultMetadata()
	m.PinnedChats = []string{"remote-only"}
	require.NoError(t, sy.Save(ctx, nil, m))

	svc := workspace.New(st, sy, validation.New(), slog.New(slog.DiscardHandler), workspace.Options{Version: "1.0.0-test"})
	require.NoError(t, svc.Initialize(ctx))

	chat, err := svc.GetChat(ctx, "local-only")
	require.NoError(t, err)
	assert.False(t, chat.IsPinned)

	chat, err = svc.GetChat(ctx, "remote-only")
	require.NoError(t, err)
	assert.True(t, chat.IsPinned)
}

func TestChatsInFolderExactness(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Work", Color: "#ff5733"})
	require.NoError(t, err)

	_, err = svc.AssignChatToFolder(ctx, "in-1", folder.FolderID)
	require.NoError(t, err)
	_, err = svc.AssignChatToFolder(ctx, "in-2", folder.FolderID)
	require.NoError(t, err)
	// Persisted but unfiled.
	_, err = svc.AssignChatToFolder(ctx, "out-1", "")
	require.NoError(t, err)

	members, err := svc.ChatsInFolder(ctx, folder.FolderID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "in-1", members[0].ChatID)
	assert.Equal(t, "in-2", members[1].ChatID)

	unfiled, err := svc.ChatsInFolder(ctx, "")
	require.NoError(t, err)
	require.Len(t, unfiled, 1)
	assert.Equal(t, "out-1", unfiled[0].ChatID)
}

func TestUpdateFolderPatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, workspace.CreateFolderInput{Name: "Work", Color: "#ff5733"})
	require.NoError(t, err)

	name := "Projects"
	updated, err := svc.UpdateFolder(ctx, folder.FolderID, domain.FolderPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Projects", updated.Name)
	assert.Equal(t, "#ff5733", updated.Color)

	got, err := svc.GetFolder(ctx, folder.FolderID)
	require.NoError(t, err)
	assert.Equal(t, "Projects", got.Name)
}

func TestSettingsDefaultsAndUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "auto", settings.Theme.Mode)

	settings.Theme.Mode = "dark"
	require.NoError(t, svc.UpdateSettings(ctx, settings))

	got, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme.Mode)
}

func TestScratchPadRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.UpdateScratchPad(ctx, "meeting notes"))

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "meeting notes", settings.ScratchPad)
}

func TestDraftHistoryOrderAndSkip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordDraft(ctx, "c1", "hello")
	require.NoError(t, err)
	_, err = svc.RecordDraft(ctx, "c1", "hello world")
	require.NoError(t, err)
	// Identical to the latest entry, must be skipped.
	_, err = svc.RecordDraft(ctx, "c1", "hello world")
	require.NoError(t, err)

	history, err := svc.DraftHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello world", history[0].Content)
	assert.Equal(t, "hello", history[1].Content)
}

func TestDraftHistoryCapped(t *testing.T) {
	svc := newTestServiceWithOptions(t, workspace.Options{Version: "1.0.0-test", DraftLimit: 3})
	ctx := context.Background()

	for _, content := range []string{"a", "b", "c", "d", "e"} {
		_, err := svc.RecordDraft(ctx, "c1", content)
		require.NoError(t, err)
	}

	history, err := svc.DraftHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "e", history[0].Content)
	assert.Equal(t, "c", history[2].Content)
}

func TestClearDrafts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.RecordDraft(ctx, "c1", "keep typing")
	require.NoError(t, err)
	require.NoError(t, svc.ClearDrafts(ctx, "c1"))

	history, err := svc.DraftHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSnippetCRUD(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSnippet(ctx, workspace.CreateSnippetInput{Title: "Greeting", Content: "Hello, could you"})
	require.NoError(t, err)

	title := "Opener"
	updated, err := svc.UpdateSnippet(ctx, created.SnippetID, domain.SnippetPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Opener", updated.Title)

	snippets, err := svc.ListSnippets(ctx)
	require.NoError(t, err)
	require.Len(t, snippets, 1)

	require.NoError(t, svc.DeleteSnippet(ctx, created.SnippetID))
	_, err = svc.GetSnippet(ctx, created.SnippetID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestHandleRemoteChangeRepinsLocally(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m := domain.DefaultMetadata()
	m.PinnedChats = []string{"remote-pin"}
	svc.HandleRemoteChange(&syncstore.Data{Metadata: m})

	chat, err := svc.GetChat(ctx, "remote-pin")
	require.NoError(t, err)
	assert.True(t, chat.IsPinned)
}
