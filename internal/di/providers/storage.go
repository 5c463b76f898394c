package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/workspaceapp/workspace-server/internal/config"
	"github.com/workspaceapp/workspace-server/internal/logger"
	"github.com/workspaceapp/workspace-server/internal/store"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the local structured store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.Open(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	return &StoreHandle{Store: db}, nil
}

// ProvideSyncStore provides the cross-device settings store.
func ProvideSyncStore(i do.Injector) (*syncstore.Store, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return syncstore.New(cfg.Sync.Path, log.Logger), nil
}
