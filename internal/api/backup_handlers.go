package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/backup"
)

func (s *Server) registerBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBackups",
		Method:      http.MethodGet,
		Path:        "/api/v1/backups",
		Summary:     "List backups",
		Description: "Returns backup manifests, newest first",
		Tags:        []string{"Backups"},
	}, s.handleListBackups)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBackup",
		Method:      http.MethodPost,
		Path:        "/api/v1/backups",
		Summary:     "Create backup",
		Description: "Snapshots the local database into the backup directory",
		Tags:        []string{"Backups"},
	}, s.handleCreateBackup)
}

type BackupOutput struct {
	Body *backup.Manifest
}

type BackupListOutput struct {
	Body []*backup.Manifest
}

func (s *Server) handleListBackups(ctx context.Context, _ *struct{}) (*BackupListOutput, error) {
	manifests, err := s.backups.List(ctx)
	if err != nil {
		return nil, err
	}
	return &BackupListOutput{Body: manifests}, nil
}

func (s *Server) handleCreateBackup(ctx context.Context, _ *struct{}) (*BackupOutput, error) {
	manifest, err := s.backups.Create(ctx)
	if err != nil {
		return nil, err
	}
	return &BackupOutput{Body: manifest}, nil
}
