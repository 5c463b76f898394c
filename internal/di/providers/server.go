package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/workspaceapp/workspace-server/internal/api"
	"github.com/workspaceapp/workspace-server/internal/backup"
	"github.com/workspaceapp/workspace-server/internal/config"
	"github.com/workspaceapp/workspace-server/internal/logger"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the running local API server. It binds to
// loopback only; the API is a local facade for the extension, never a
// network service.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	svc := do.MustInvoke[*workspace.Service](i)
	backups := do.MustInvoke[*backup.Service](i)

	apiServer := api.NewServer(svc, backups, log.Logger, appVersion)

	server := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%s", cfg.Server.Port),
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Local API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: server}, nil
}
