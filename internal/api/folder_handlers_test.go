package api

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workspaceapp/workspace-server/internal/backup"
	"github.com/workspaceapp/workspace-server/internal/store"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
	"github.com/workspaceapp/workspace-server/internal/validation"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

func setupTestAPI(t *testing.T) humatest.TestAPI {
	t.Helper()

	st, err := store.Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	sy := syncstore.New(filepath.Join(t.TempDir(), "settings.json"), nil)

	svc := workspace.New(st, sy, validation.New(), slog.New(slog.DiscardHandler), workspace.Options{Version: "test"})
	require.NoError(t, svc.Initialize(context.Background()))

	backups := backup.NewService(st, t.TempDir(), "test", slog.New(slog.DiscardHandler))
	server := NewServer(svc, backups, slog.New(slog.DiscardHandler), "test")
	return humatest.Wrap(t, server.api)
}

func TestFolderLifecycleOverHTTP(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.Post("/api/v1/folders", map[string]any{
		"name":  "Work",
		"color": "#ff5733",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var created struct {
		FolderID string `json:"folderId"`
		Name     string `json:"name"`
		Order    int    `json:"order"`
	}
	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.FolderID)
	assert.Equal(t, 0, created.Order)

	resp = api.Put("/api/v1/chats/abc123/folder", map[string]any{
		"folderId": created.FolderID,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/chats/abc123")
	require.Equal(t, http.StatusOK, resp.Code)
	var chat struct {
		FolderID string `json:"folderId"`
	}
	decodeBody(t, resp, &chat)
	assert.Equal(t, created.FolderID, chat.FolderID)

	resp = api.Delete("/api/v1/folders/" + created.FolderID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = api.Get("/api/v1/chats/abc123")
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &chat)
	assert.Empty(t, chat.FolderID)
}

func TestCreateFolderRejectsBadColor(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.Post("/api/v1/folders", map[string]any{
		"name":  "Work",
		"color": "red",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetMissingFolderIs404(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.Get("/api/v1/folders/folder-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestTogglePinOverHTTP(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.Post("/api/v1/chats/c1/pin", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)

	var out struct {
		ChatID   string `json:"chatId"`
		IsPinned bool   `json:"isPinned"`
	}
	decodeBody(t, resp, &out)
	assert.True(t, out.IsPinned)

	resp = api.Post("/api/v1/chats/c1/pin", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	decodeBody(t, resp, &out)
	assert.False(t, out.IsPinned)
}

func TestHealthCheck(t *testing.T) {
	api := setupTestAPI(t)

	resp := api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
}
