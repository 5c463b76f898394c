// Package main provides a read-only inspection tool for the workspace
// database.
//
// Usage:
//
//	DATA_PATH=~/Workspace/data go run ./cmd/dbinspect
package main

import (
	"encoding/json/v2"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Workspace/data")
	}
	dbPath := dataPath + "/db"

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Workspace Database Inspection ===")
	fmt.Println()

	chatCount := 0
	pinnedCount := 0
	filedCount := 0
	taggedCount := 0

	err = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte("chat:")
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek([]byte("chat:")); it.ValidForPrefix([]byte("chat:")); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, "chat:idx:") {
				continue
			}

			err := it.Item().Value(func(val []byte) error {
				var chat domain.Chat
				if err := json.Unmarshal(val, &chat); err != nil {
					return err
				}
				chatCount++
				if chat.IsPinned {
					pinnedCount++
				}
				if chat.FolderID != "" {
					filedCount++
				}
				if len(chat.Tags) > 0 {
					taggedCount++
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to scan chats: %v", err)
	}

	fmt.Printf("Chats: %d (pinned %d, in folders %d, tagged %d)\n",
		chatCount, pinnedCount, filedCount, taggedCount)

	printCollection[domain.Folder](db, "folder:", "Folders", func(f *domain.Folder) string {
		return fmt.Sprintf("%-28s order=%d color=%s", f.Name, f.Order, f.Color)
	})
	printCollection[domain.Tag](db, "tag:", "Tags", func(t *domain.Tag) string {
		return fmt.Sprintf("%-28s color=%s", t.Name, t.Color)
	})
	printCollection[domain.Snippet](db, "snippet:", "Snippets", func(s *domain.Snippet) string {
		return s.Title
	})

	draftCount := 0
	_ = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte("draft:")
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Seek([]byte("draft:")); it.ValidForPrefix([]byte("draft:")); it.Next() {
			if !strings.HasPrefix(string(it.Item().Key()), "draft:idx:") {
				draftCount++
			}
		}
		return nil
	})
	fmt.Printf("\nDraft entries: %d\n", draftCount)
}

func printCollection[T any](db *badger.DB, prefix, label string, describe func(*T) string) {
	fmt.Printf("\n%s:\n", label)

	idxMarker := prefix + "idx:"
	err := db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte(prefix)
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			key := string(it.Item().Key())
			if strings.HasPrefix(key, idxMarker) {
				continue
			}
			err := it.Item().Value(func(val []byte) error {
				var record T
				if err := json.Unmarshal(val, &record); err != nil {
					return err
				}
				fmt.Printf("  %s\n", describe(&record))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Failed to scan %s: %v", strings.ToLower(label), err)
	}
}
