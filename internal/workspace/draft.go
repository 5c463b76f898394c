package workspace

import (
	"context"
	"sort"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/id"
)

// RecordDraft appends a snapshot of the chat's editor content to its
// durable draft history. Recording is skipped when the content matches
// the latest entry, and history beyond the configured cap is pruned
// oldest-first. Returns the entry now at the head of the history.
func (s *Service) RecordDraft(ctx context.Context, chatID, content string) (*domain.Draft, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if chatID == "" {
		return nil, errors.Validation("chat id is required")
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	history, err := s.draftHistory(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if len(history) > 0 && history[0].Content == content {
		return history[0], nil
	}

	draftID, err := id.Generate("draft")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate draft id")
	}

	draft := domain.NewDraft(draftID, chatID, content)
	// Keep history strictly ordered even when snapshots land in the same
	// millisecond.
	if len(history) > 0 && draft.Timestamp <= history[0].Timestamp {
		draft.Timestamp = history[0].Timestamp + 1
	}
	if _, err := s.store.Drafts.Put(ctx, draft); err != nil {
		return nil, err
	}

	// Prune beyond the cap, oldest first.
	if excess := len(history) + 1 - s.draftLimit; excess > 0 {
		for _, old := range history[len(history)-excess:] {
			if err := s.store.Drafts.Delete(ctx, old.DraftID); err != nil {
				return nil, err
			}
		}
	}

	return draft, nil
}

// DraftHistory returns the chat's draft history, newest first.
func (s *Service) DraftHistory(ctx context.Context, chatID string) ([]*domain.Draft, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}

	return s.draftHistory(ctx, chatID)
}

func (s *Service) draftHistory(ctx context.Context, chatID string) ([]*domain.Draft, error) {
	drafts, err := s.store.Drafts.ListByIndex(ctx, "chatId", chatID)
	if err != nil {
		return nil, err
	}
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].Timestamp != drafts[j].Timestamp {
			return drafts[i].Timestamp > drafts[j].Timestamp
		}
		return drafts[i].DraftID > drafts[j].DraftID
	})
	return drafts, nil
}

// ClearDrafts removes the chat's entire draft history.
func (s *Service) ClearDrafts(ctx context.Context, chatID string) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	drafts, err := s.store.Drafts.ListByIndex(ctx, "chatId", chatID)
	if err != nil {
		return err
	}
	for _, d := range drafts {
		if err := s.store.Drafts.Delete(ctx, d.DraftID); err != nil {
			return err
		}
	}

	s.logger.Info("draft history cleared", "chat_id", chatID, "entries", len(drafts))
	return nil
}
