// Package di provides dependency injection configuration for the
// workspace server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/workspaceapp/workspace-server/internal/backup"
	"github.com/workspaceapp/workspace-server/internal/config"
	"github.com/workspaceapp/workspace-server/internal/di/providers"
	"github.com/workspaceapp/workspace-server/internal/logger"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
	"github.com/workspaceapp/workspace-server/internal/validation"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSyncStore)

	// Facade
	do.Provide(injector, providers.ProvideWorkspaceService)
	do.Provide(injector, providers.ProvideBackupService)

	// Workers
	do.Provide(injector, providers.ProvideSyncWatcher)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once they are live.
// This triggers lazy initialization through the container.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*syncstore.Store](injector)
	_ = do.MustInvoke[*workspace.Service](injector)
	_ = do.MustInvoke[*backup.Service](injector)
	_ = do.MustInvoke[*providers.SyncWatcherHandle](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
