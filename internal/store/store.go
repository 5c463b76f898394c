// Package store implements the local structured store: a badger-backed,
// schema-versioned database holding the chat, folder, tag, snippet, and
// draft collections with their secondary indexes.
//
// Every exported operation is atomic on its own; a sequence of operations
// is not transactional. Referential cleanup across collections lives in
// the workspace service, not here.
package store

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
)

// SchemaVersion is bumped when the persisted layout changes. Stored under
// a dedicated key on open; currently there is exactly one version and no
// migration machinery.
const SchemaVersion = 1

const schemaVersionKey = "schema:version"

// Store wraps a badger database instance and exposes one typed entity per
// collection.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Chats    *Entity[domain.Chat]
	Folders  *Entity[domain.Folder]
	Tags     *Entity[domain.Tag]
	Snippets *Entity[domain.Snippet]
	Drafts   *Entity[domain.Draft]
}

// Open opens (creating if absent) the database at path and initializes the
// collections. Fails with a STORAGE_UNAVAILABLE error if the engine cannot
// be opened (quota, disabled, corrupted). Idempotence is the owner's
// responsibility: hold one Store per process and share it.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable badger's internal logging
	opts.SyncWrites = true       // Sync writes to disk to survive crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.StorageUnavailable(fmt.Errorf("open badger db: %w", err))
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	if err := s.ensureSchemaVersion(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.initCollections()

	if logger != nil {
		logger.Info("database opened", "path", path, "schema_version", SchemaVersion)
	}

	return s, nil
}

// Backup streams a full snapshot of the database to w and returns the
// version stamp of the last entry written. The snapshot is consistent;
// writes landing during the stream are excluded.
func (s *Store) Backup(w io.Writer) (uint64, error) {
	since, err := s.db.Backup(w, 0)
	if err != nil {
		return 0, errors.StorageIO("backup database", err)
	}
	return since, nil
}

// Restore replaces the entire database with the snapshot read from r.
// Destructive: current contents are dropped first.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.DropAll(); err != nil {
		return errors.StorageIO("drop database", err)
	}
	if err := s.db.Load(r, 16); err != nil {
		return errors.StorageIO("load backup", err)
	}
	return nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database")
	}
	return s.db.Close()
}

// ensureSchemaVersion writes the schema version on first open and rejects
// databases written by a newer schema.
func (s *Store) ensureSchemaVersion() error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(schemaVersionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return txn.Set([]byte(schemaVersionKey), fmt.Appendf(nil, "%d", SchemaVersion))
		}
		if err != nil {
			return errors.StorageIO("read schema version", err)
		}

		var stored int
		if err := item.Value(func(val []byte) error {
			_, serr := fmt.Sscanf(string(val), "%d", &stored)
			return serr
		}); err != nil {
			return errors.StorageIO("parse schema version", err)
		}

		if stored > SchemaVersion {
			return errors.StorageUnavailable(fmt.Errorf("database schema version %d is newer than supported %d", stored, SchemaVersion))
		}
		return nil
	})
}

// initCollections wires the five collections and their secondary indexes.
// The index set mirrors the original extension's IndexedDB schema:
// chats{folderId, isPinned, updatedAt}, folders{order},
// snippets{updatedAt}, draftHistory{chatId, timestamp}.
func (s *Store) initCollections() {
	s.Chats = NewEntity(s, "chat:", func(c *domain.Chat) string { return c.ChatID }).
		WithIndex("folderId", func(c *domain.Chat) string { return c.FolderID }).
		WithIndex("isPinned", func(c *domain.Chat) string { return boolIndexValue(c.IsPinned) }).
		WithIndex("updatedAt", func(c *domain.Chat) string { return sortableMillis(c.UpdatedAt) })

	s.Folders = NewEntity(s, "folder:", func(f *domain.Folder) string { return f.FolderID }).
		WithIndex("order", func(f *domain.Folder) string { return sortableOrder(f.Order) })

	s.Tags = NewEntity(s, "tag:", func(t *domain.Tag) string { return t.TagID })

	s.Snippets = NewEntity(s, "snippet:", func(sn *domain.Snippet) string { return sn.SnippetID }).
		WithIndex("updatedAt", func(sn *domain.Snippet) string { return sortableMillis(sn.UpdatedAt) })

	s.Drafts = NewEntity(s, "draft:", func(d *domain.Draft) string { return d.DraftID }).
		WithIndex("chatId", func(d *domain.Draft) string { return d.ChatID }).
		WithIndex("timestamp", func(d *domain.Draft) string { return sortableMillis(d.Timestamp) })
}
