// Package backup creates and restores snapshots of the workspace
// database. A backup is the badger stream written next to a small JSON
// manifest describing when and by which version it was taken.
package backup

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/store"
)

const (
	snapshotExt = ".wsbackup"
	manifestExt = ".json"
)

// Manifest describes one backup file.
type Manifest struct {
	CreatedAt time.Time `json:"createdAt"`
	Version   string    `json:"version"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
}

// Service manages backup creation, listing, and restore.
type Service struct {
	store     *store.Store
	backupDir string
	version   string
	logger    *slog.Logger
}

// NewService creates a backup service writing into backupDir.
func NewService(s *store.Store, backupDir, version string, logger *slog.Logger) *Service {
	return &Service{
		store:     s,
		backupDir: backupDir,
		version:   version,
		logger:    logger,
	}
}

// Create writes a new snapshot and returns its manifest.
func (s *Service) Create(ctx context.Context) (*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, errors.StorageIO("create backup dir", err)
	}

	timestamp := time.Now().Format("2006-01-02-150405")
	path := filepath.Join(s.backupDir, "backup-"+timestamp+snapshotExt)

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.StorageIO("create backup file", err)
	}

	if _, err := s.store.Backup(f); err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, errors.StorageIO("close backup file", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.StorageIO("stat backup file", err)
	}

	manifest := &Manifest{
		CreatedAt: time.Now().UTC(),
		Version:   s.version,
		Size:      info.Size(),
		Path:      path,
	}
	if err := s.writeManifest(manifest); err != nil {
		return nil, err
	}

	s.logger.Info("backup created", "path", path, "size", manifest.Size)
	return manifest, nil
}

// List returns manifests of all backups in the directory, newest first.
func (s *Service) List(ctx context.Context) ([]*Manifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.StorageIO("read backup dir", err)
	}

	var manifests []*Manifest
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt+manifestExt) {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(s.backupDir, entry.Name()))
		if err != nil {
			s.logger.Warn("unreadable backup manifest", "name", entry.Name(), "error", err)
			continue
		}
		var m Manifest
		if err := json.Unmarshal(raw, &m); err != nil {
			s.logger.Warn("malformed backup manifest", "name", entry.Name(), "error", err)
			continue
		}
		manifests = append(manifests, &m)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].CreatedAt.After(manifests[j].CreatedAt)
	})
	return manifests, nil
}

// Restore replaces the database with the named snapshot. Destructive.
func (s *Service) Restore(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !strings.HasSuffix(path, snapshotExt) {
		return errors.Validation(fmt.Sprintf("not a backup file: %s", path))
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.StorageIO("open backup file", err)
	}
	defer f.Close()

	if err := s.store.Restore(f); err != nil {
		return err
	}

	s.logger.Info("backup restored", "path", path)
	return nil
}

func (s *Service) writeManifest(m *Manifest) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return errors.StorageIO("encode backup manifest", err)
	}
	if err := os.WriteFile(m.Path+manifestExt, raw, 0o644); err != nil {
		return errors.StorageIO("write backup manifest", err)
	}
	return nil
}
