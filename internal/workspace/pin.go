package workspace

import (
	"context"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
)

// TogglePin flips the chat's pin state in two phases: the local chat
// record first, then the replicated pin list (read-merge-write with one
// retry). The local write is not rolled back when the second phase fails;
// the returned error reports the sync failure and ReconcilePins repairs
// the drift later, with the replicated list winning.
func (s *Service) TogglePin(ctx context.Context, chatID string) (bool, error) {
	if err := s.requireInitialized(); err != nil {
		return false, err
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	// Phase 1: local record.
	chat, err := s.loadOrSynthesize(ctx, chatID)
	if err != nil {
		return false, err
	}
	chat.IsPinned = !chat.IsPinned
	chat.Touch()
	if _, err := s.store.Chats.Put(ctx, chat); err != nil {
		return false, err
	}

	// Phase 2: replicated pin list, retried once.
	err = s.writePinnedList(ctx, chatID, chat.IsPinned)
	if err != nil {
		s.logger.Warn("pin list write failed, retrying", "chat_id", chatID, "error", err)
		err = s.writePinnedList(ctx, chatID, chat.IsPinned)
	}
	if err != nil {
		s.logger.Error("pin list write failed after retry, local state ahead of sync",
			"chat_id", chatID, "pinned", chat.IsPinned, "error", err)
		return chat.IsPinned, err
	}

	s.logger.Info("pin toggled", "chat_id", chatID, "pinned", chat.IsPinned)
	return chat.IsPinned, nil
}

// writePinnedList merges one membership change into the replicated
// metadata. The add and remove are idempotent, so replaying after a retry
// cannot duplicate entries.
func (s *Service) writePinnedList(ctx context.Context, chatID string, pinned bool) error {
	data, err := s.sync.Load(ctx)
	if err != nil {
		return err
	}

	metadata := data.Metadata
	if metadata == nil {
		metadata = domain.DefaultMetadata()
	}

	changed := false
	if pinned {
		changed = metadata.Pin(chatID)
	} else {
		changed = metadata.Unpin(chatID)
	}
	if !changed && data.Metadata != nil {
		return nil
	}

	metadata.LastSyncTimestamp = domain.NowMillis()
	return s.sync.Save(ctx, nil, metadata)
}

// ReconcilePins repairs drift between local chat records and the
// replicated pin list in both directions. The replicated list is the
// authority: chats pinned locally but absent from the list are unpinned,
// and listed chats are pinned locally (created with defaults when the
// record never existed).
func (s *Service) ReconcilePins(ctx context.Context) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}

	data, err := s.sync.Load(ctx)
	if err != nil {
		return err
	}
	if data.Metadata == nil {
		return nil
	}
	return s.reconcilePins(ctx, data.Metadata)
}

func (s *Service) reconcilePins(ctx context.Context, metadata *domain.Metadata) error {
	locallyPinned, err := s.store.Chats.ListByIndex(ctx, "isPinned", "1")
	if err != nil {
		return err
	}

	repaired := 0

	for _, chat := range locallyPinned {
		if metadata.IsPinned(chat.ChatID) {
			continue
		}
		unlock := s.chatLocks.Lock(chat.ChatID)
		current, err := s.store.Chats.Get(ctx, chat.ChatID)
		if err != nil {
			unlock()
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return err
		}
		if current.IsPinned {
			current.IsPinned = false
			current.Touch()
			if _, err := s.store.Chats.Put(ctx, current); err != nil {
				unlock()
				return err
			}
			repaired++
		}
		unlock()
	}

	for _, chatID := range metadata.PinnedChats {
		unlock := s.chatLocks.Lock(chatID)
		chat, err := s.loadOrSynthesize(ctx, chatID)
		if err != nil {
			unlock()
			return err
		}
		if !chat.IsPinned {
			chat.IsPinned = true
			chat.Touch()
			if _, err := s.store.Chats.Put(ctx, chat); err != nil {
				unlock()
				return err
			}
			repaired++
		}
		unlock()
	}

	if repaired > 0 {
		s.logger.Info("pin drift repaired", "chats", repaired)
	}
	return nil
}
