// Package api exposes the workspace service over a loopback HTTP API for
// the extension's feature controllers. It is a local facade surface, not
// a sync protocol; cross-device replication happens through the settings
// store underneath.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/workspaceapp/workspace-server/internal/backup"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

// Server holds dependencies for the HTTP handlers.
type Server struct {
	service *workspace.Service
	backups *backup.Service
	router  *chi.Mux
	api     huma.API
	logger  *slog.Logger
}

// NewServer creates the HTTP server with all routes configured.
func NewServer(service *workspace.Service, backups *backup.Service, logger *slog.Logger, version string) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	// The only expected caller is the extension; browsers attach an
	// extension origin to fetches from content scripts.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"chrome-extension://*", "moz-extension://*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	config := huma.DefaultConfig("Workspace API", version)
	humaAPI := humachi.New(router, config)
	RegisterErrorHandler()

	s := &Server{
		service: service,
		backups: backups,
		router:  router,
		api:     humaAPI,
		logger:  logger,
	}

	s.registerHealthRoutes()
	s.registerFolderRoutes()
	s.registerTagRoutes()
	s.registerChatRoutes()
	s.registerSnippetRoutes()
	s.registerDraftRoutes()
	s.registerSettingsRoutes()
	s.registerBackupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
