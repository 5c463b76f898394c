package syncstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the settings file and invokes a callback when another
// device's write lands. Events are debounced because sync transports tend
// to deliver a burst of writes for one logical change, and writes stamped
// with our own device id are suppressed.
type Watcher struct {
	store    *Store
	logger   *slog.Logger
	debounce time.Duration
	onChange func(*Data)

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher over the store's file. onChange runs on the
// watcher goroutine; keep it quick or hand off.
func NewWatcher(store *Store, debounce time.Duration, logger *slog.Logger, onChange func(*Data)) *Watcher {
	return &Watcher{
		store:    store,
		logger:   logger,
		debounce: debounce,
		onChange: onChange,
		done:     make(chan struct{}),
	}
}

// Start begins watching. The parent directory is watched rather than the
// file itself because atomic replace (rename) retargets the file's inode
// on every write.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.loop()

	if w.logger != nil {
		w.logger.Info("watching settings file", "path", w.store.Path(), "debounce", w.debounce)
	}
	return nil
}

// Stop halts the watcher and waits for the loop to exit. Safe to call
// once after a successful Start.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("settings watcher error", "error", err)
			}

		case <-fire:
			timer = nil
			fire = nil
			w.notify()
		}
	}
}

func (w *Watcher) notify() {
	data, err := w.store.Load(context.Background())
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("reload after settings change failed", "error", err)
		}
		return
	}

	// A write stamped with our own device id just echoed back.
	if data.Metadata != nil && data.Metadata.DeviceID == w.store.DeviceID() {
		return
	}

	if w.logger != nil {
		w.logger.Debug("settings changed by another device")
	}
	if w.onChange != nil {
		w.onChange(data)
	}
}
