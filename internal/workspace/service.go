// Package workspace is the reconciliation facade: the single access point
// feature code uses for organization state. It owns the in-memory folder
// and tag caches, serializes per-chat writes, and keeps the local chat
// records consistent with the replicated pin list.
package workspace

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/store"
	"github.com/workspaceapp/workspace-server/internal/syncstore"
	"github.com/workspaceapp/workspace-server/internal/validation"
)

// Service coordinates the local structured store and the cross-device
// settings store behind one API.
//
// Single-operation calls are atomic at the store layer. Multi-entity
// sequences (folder delete cascade, tag delete cascade, pin toggle) are
// NOT transactional; each documents its partial-failure behavior.
type Service struct {
	store    *store.Store
	sync     *syncstore.Store
	validate *validation.Validator
	logger   *slog.Logger

	version    string
	draftLimit int

	chatLocks *keyedMutex

	mu          sync.RWMutex
	folders     map[string]*domain.Folder
	tags        map[string]*domain.Tag
	initialized bool
}

// Options carries the tunables the service needs beyond its dependencies.
type Options struct {
	// Version is stamped into default settings on first install.
	Version string
	// DraftLimit caps per-chat draft history; older entries are pruned.
	DraftLimit int
}

// New creates the service. Call Initialize before first use.
func New(st *store.Store, sy *syncstore.Store, v *validation.Validator, logger *slog.Logger, opts Options) *Service {
	if opts.DraftLimit <= 0 {
		opts.DraftLimit = 50
	}
	return &Service{
		store:      st,
		sync:       sy,
		validate:   v,
		logger:     logger,
		version:    opts.Version,
		draftLimit: opts.DraftLimit,
		chatLocks:  newKeyedMutex(),
		folders:    make(map[string]*domain.Folder),
		tags:       make(map[string]*domain.Tag),
	}
}

// Initialize loads the folder and tag caches, seeds first-install defaults
// in the settings store, and repairs pin drift. Idempotent: repeated calls
// after a success are no-ops.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	// 1. Load folder cache.
	folders, err := s.store.Folders.List(ctx)
	if err != nil {
		return err
	}

	// 2. Load tag cache.
	tags, err := s.store.Tags.List(ctx)
	if err != nil {
		return err
	}

	// 3. Seed settings and metadata on first install. A sync failure here
	// is non-fatal: organization features run unsynced.
	data, err := s.sync.Load(ctx)
	if err != nil {
		s.logger.Warn("settings store unavailable, continuing unsynced", "error", err)
		data = &syncstore.Data{}
	} else if data.Settings == nil || data.Metadata == nil {
		var seedSettings *domain.Settings
		var seedMetadata *domain.Metadata
		if data.Settings == nil {
			seedSettings = domain.DefaultSettings(s.version)
		}
		if data.Metadata == nil {
			seedMetadata = domain.DefaultMetadata()
			data.Metadata = seedMetadata
		}
		if err := s.sync.Save(ctx, seedSettings, seedMetadata); err != nil {
			s.logger.Warn("seeding default settings failed", "error", err)
		}
	}

	s.mu.Lock()
	for _, f := range folders {
		s.folders[f.FolderID] = f
	}
	for _, t := range tags {
		s.tags[t.TagID] = t
	}
	s.initialized = true
	s.mu.Unlock()

	// 4. Repair pin drift against the replicated list.
	if data.Metadata != nil {
		if err := s.reconcilePins(ctx, data.Metadata); err != nil {
			s.logger.Warn("pin reconciliation on startup failed", "error", err)
		}
	}

	s.logger.Info("workspace initialized",
		"folders", len(folders),
		"tags", len(tags),
	)
	return nil
}

// HandleRemoteChange is the settings watcher callback: another device
// replicated a write, so local pin state is re-reconciled against the
// incoming metadata.
func (s *Service) HandleRemoteChange(data *syncstore.Data) {
	if data == nil || data.Metadata == nil {
		return
	}
	ctx := context.Background()
	if err := s.reconcilePins(ctx, data.Metadata); err != nil {
		s.logger.Warn("pin reconciliation after remote change failed", "error", err)
	}
}

// folderExists consults the cache only; the cache is authoritative for
// folder membership after Initialize.
func (s *Service) folderExists(folderID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.folders[folderID]
	return ok
}

func (s *Service) tagExists(tagID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tags[tagID]
	return ok
}

// sortFoldersByOrder sorts by display order, id as tiebreak so the result
// is stable when orders collide.
func sortFoldersByOrder(folders []*domain.Folder) {
	sort.SliceStable(folders, func(i, j int) bool {
		if folders[i].Order != folders[j].Order {
			return folders[i].Order < folders[j].Order
		}
		return folders[i].FolderID < folders[j].FolderID
	})
}

// requireInitialized guards operations that depend on the caches.
func (s *Service) requireInitialized() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return errors.Internal("workspace service not initialized")
	}
	return nil
}
