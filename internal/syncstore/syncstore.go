// Package syncstore implements the cross-device settings store. The
// replicated two-key blob (settings + metadata) is kept as one JSON file
// inside a platform-synced directory; the platform replicates the file
// between devices with last-writer-wins semantics.
//
// The store is tolerant by contract: transport failures surface as
// SYNC_UNAVAILABLE errors and the caller keeps operating on local state.
package syncstore

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
)

// Data is the full replicated blob. Either key may be absent in a file
// written by an older build.
type Data struct {
	Settings *domain.Settings `json:"settings,omitempty"`
	Metadata *domain.Metadata `json:"metadata,omitempty"`
}

// Store reads and writes the replicated settings file.
type Store struct {
	path     string
	deviceID string
	logger   *slog.Logger
	mu       sync.Mutex
}

// New creates a Store for the settings file at path. The device id is
// generated per process and stamped into every metadata write so that a
// watcher can tell its own writes from another device's.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:     path,
		deviceID: uuid.NewString(),
		logger:   logger,
	}
}

// Path returns the settings file location.
func (s *Store) Path() string { return s.path }

// DeviceID returns this process's write-attribution id.
func (s *Store) DeviceID() string { return s.deviceID }

// Load reads the replicated blob. A missing file is not an error; it
// yields an empty Data and the caller substitutes defaults. I/O and
// decode failures surface as SYNC_UNAVAILABLE.
func (s *Store) Load(ctx context.Context) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Data{}, nil
	}
	if err != nil {
		return nil, errors.SyncUnavailable("read settings file", err)
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.SyncUnavailable("decode settings file", err)
	}
	return &data, nil
}

// Save writes settings and/or metadata using a read-merge-write policy:
// the current file is read first and only non-nil arguments replace their
// key, so a nil argument preserves the other key's latest replicated
// value as of the read. The merged blob is written atomically (temp file
// plus rename) to keep partial writes off the sync transport.
func (s *Store) Save(ctx context.Context, settings *domain.Settings, metadata *domain.Metadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if settings == nil && metadata == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if settings != nil {
		current.Settings = settings
	}
	if metadata != nil {
		metadata.DeviceID = s.deviceID
		current.Metadata = metadata
	}

	return s.write(current)
}

func (s *Store) write(data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return errors.SyncUnavailable("encode settings file", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.SyncUnavailable("create sync directory", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return errors.SyncUnavailable("create temp file", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.SyncUnavailable("write settings file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.SyncUnavailable("close settings file", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.SyncUnavailable("replace settings file", err)
	}

	if s.logger != nil {
		s.logger.Debug("settings file written", "path", s.path)
	}
	return nil
}
