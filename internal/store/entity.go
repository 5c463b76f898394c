package store

import (
	"context"
	"encoding/json/v2"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/workspaceapp/workspace-server/internal/errors"
)

// Entity provides generic collection operations for one record type.
//
// Records live under {prefix}{id}. Secondary indexes are key entries of
// the form {prefix}idx:{index}:{value}:{id} -> id, so one index value can
// point at any number of records (equality lookup via prefix scan).
// Index values must not contain ':'; ids and the sortable encodings used
// here never do.
type Entity[T any] struct {
	store   *Store
	prefix  string
	idFn    func(*T) string
	indexes []index[T]
}

// index defines a secondary index on an entity.
type index[T any] struct {
	name   string
	keyGen func(*T) string
}

// NewEntity creates an Entity for one collection. idFn extracts the
// primary key from a record.
func NewEntity[T any](s *Store, prefix string, idFn func(*T) string) *Entity[T] {
	return &Entity[T]{
		store:  s,
		prefix: prefix,
		idFn:   idFn,
	}
}

// WithIndex adds a secondary index maintained on every write.
func (e *Entity[T]) WithIndex(name string, keyGen func(*T) string) *Entity[T] {
	e.indexes = append(e.indexes, index[T]{name: name, keyGen: keyGen})
	return e
}

func (e *Entity[T]) recordKey(id string) []byte {
	return []byte(e.prefix + id)
}

// indexKey builds {prefix}idx:{name}:{value}:{id}.
func (e *Entity[T]) indexKey(name, value, id string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value + ":" + id)
}

// indexScanPrefix builds the prefix matching every id under one index value.
func (e *Entity[T]) indexScanPrefix(name, value string) []byte {
	return []byte(e.prefix + "idx:" + name + ":" + value + ":")
}

// Put inserts or fully replaces the record keyed by its primary key and
// rewrites its index entries, all in one transaction. Partial merges
// happen above this layer. Returns the primary key.
func (e *Entity[T]) Put(ctx context.Context, record *T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := e.idFn(record)
	if id == "" {
		return "", errors.Validation("record has empty primary key")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return "", errors.StorageIO("marshal record", err)
	}

	err = e.store.db.Update(func(txn *badger.Txn) error {
		// Drop index entries of the previous version, if any.
		var old T
		item, err := txn.Get(e.recordKey(id))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &old)
			}); err != nil {
				return err
			}
			for _, idx := range e.indexes {
				if err := txn.Delete(e.indexKey(idx.name, idx.keyGen(&old), id)); err != nil {
					return err
				}
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := txn.Set(e.recordKey(id), data); err != nil {
			return err
		}

		for _, idx := range e.indexes {
			if err := txn.Set(e.indexKey(idx.name, idx.keyGen(record), id), []byte(id)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", errors.StorageIO("put record", err)
	}

	return id, nil
}

// Get retrieves a record by primary key. Returns a NOT_FOUND error for
// absence; absence never panics or corrupts.
func (e *Entity[T]) Get(ctx context.Context, id string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var record T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return errors.NotFoundf("%s%s not found", e.prefix, id)
		}
		if err != nil {
			return errors.StorageIO("get record", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		})
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes the record and its index entries if present. Idempotent:
// deleting an absent key is not an error.
func (e *Entity[T]) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := e.store.db.Update(func(txn *badger.Txn) error {
		var record T
		item, err := txn.Get(e.recordKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &record)
		}); err != nil {
			return err
		}

		for _, idx := range e.indexes {
			if err := txn.Delete(e.indexKey(idx.name, idx.keyGen(&record), id)); err != nil {
				return err
			}
		}

		return txn.Delete(e.recordKey(id))
	})
	if err != nil {
		return errors.StorageIO("delete record", err)
	}
	return nil
}

// List returns every record in the collection. Order is unspecified;
// callers sort.
func (e *Entity[T]) List(ctx context.Context) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(e.prefix)
	idxMarker := e.prefix + "idx:"
	var records []*T

	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchSize = 100

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, idxMarker) {
				continue
			}

			var record T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &record)
			}); err != nil {
				return err
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, errors.StorageIO("list records", err)
	}

	return records, nil
}

// ListByIndex returns every record whose index value equals value, in
// ascending primary-key order. The empty string is a valid value (e.g.
// unfiled chats under the folderId index).
func (e *Entity[T]) ListByIndex(ctx context.Context, indexName, value string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scanPrefix := e.indexScanPrefix(indexName, value)
	var ids []string

	err := e.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = scanPrefix
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(scanPrefix); it.ValidForPrefix(scanPrefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, string(scanPrefix)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.StorageIO("scan index", err)
	}

	sort.Strings(ids)

	records := make([]*T, 0, len(ids))
	for _, id := range ids {
		record, err := e.Get(ctx, id)
		if errors.Is(err, errors.ErrNotFound) {
			// Index entry raced a delete; skip.
			continue
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}
