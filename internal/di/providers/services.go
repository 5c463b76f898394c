package providers

import (
	"context"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/workspaceapp/workspace-server/internal/backup"
	"github.com/workspaceapp/workspace-server/internal/config"
	"github.com/workspaceapp/workspace-server/internal/logger"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
	"github.com/workspaceapp/workspace-server/internal/validation"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

// ProvideValidator provides the input validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideWorkspaceService provides the initialized reconciliation facade.
func ProvideWorkspaceService(i do.Injector) (*workspace.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	syncStore := do.MustInvoke[*syncstore.Store](i)
	validator := do.MustInvoke[*validation.Validator](i)

	svc := workspace.New(storeHandle.Store, syncStore, validator, log.Logger, workspace.Options{
		Version:    appVersion,
		DraftLimit: cfg.Drafts.HistoryLimit,
	})

	if err := svc.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return svc, nil
}

// ProvideBackupService provides the database snapshot service.
func ProvideBackupService(i do.Injector) (*backup.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	backupDir := filepath.Join(cfg.Data.BasePath, "backups")
	return backup.NewService(storeHandle.Store, backupDir, appVersion, log.Logger), nil
}

// SyncWatcherHandle wraps the settings watcher with Shutdownable.
type SyncWatcherHandle struct {
	*syncstore.Watcher
}

// Shutdown implements do.Shutdownable.
func (h *SyncWatcherHandle) Shutdown() error {
	return h.Stop()
}

// ProvideSyncWatcher provides the running settings file watcher, wired to
// re-reconcile pins when another device writes.
func ProvideSyncWatcher(i do.Injector) (*SyncWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	syncStore := do.MustInvoke[*syncstore.Store](i)
	svc := do.MustInvoke[*workspace.Service](i)

	watcher := syncstore.NewWatcher(syncStore, cfg.Sync.WatchDebounce, log.Logger, svc.HandleRemoteChange)
	if err := watcher.Start(); err != nil {
		return nil, err
	}

	return &SyncWatcherHandle{Watcher: watcher}, nil
}
