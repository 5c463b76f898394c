package workspace

import (
	"context"
	"sort"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
)

// loadOrSynthesize returns the stored chat, or a default record when the
// id has never been written. The synthesized record is NOT persisted;
// chats only hit disk once a mutation applies, so browsing never creates
// rows.
func (s *Service) loadOrSynthesize(ctx context.Context, chatID string) (*domain.Chat, error) {
	if chatID == "" {
		return nil, errors.Validation("chat id is required")
	}
	chat, err := s.store.Chats.Get(ctx, chatID)
	if errors.Is(err, errors.ErrNotFound) {
		return domain.NewChat(chatID), nil
	}
	if err != nil {
		return nil, err
	}
	return s.normalizeChat(chat), nil
}

// normalizeChat maps a dangling folder reference (folder since deleted,
// cascade interrupted) to "no folder". The stored record is repaired on
// its next write, not here.
func (s *Service) normalizeChat(chat *domain.Chat) *domain.Chat {
	if chat.FolderID != "" && !s.folderExists(chat.FolderID) {
		chat.FolderID = ""
	}
	return chat
}

// GetChat returns the chat's organization record, synthesizing defaults
// for chats this system has never touched.
func (s *Service) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	return s.loadOrSynthesize(ctx, chatID)
}

// AllChats returns every persisted chat record, most recently updated
// first.
func (s *Service) AllChats(ctx context.Context) ([]*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	chats, err := s.store.Chats.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range chats {
		s.normalizeChat(c)
	}
	sort.Slice(chats, func(i, j int) bool {
		if chats[i].UpdatedAt != chats[j].UpdatedAt {
			return chats[i].UpdatedAt > chats[j].UpdatedAt
		}
		return chats[i].ChatID < chats[j].ChatID
	})
	return chats, nil
}

// ChatsInFolder returns exactly the chats assigned to the folder. The
// empty folder id means unfiled chats.
func (s *Service) ChatsInFolder(ctx context.Context, folderID string) ([]*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if folderID != "" && !s.folderExists(folderID) {
		return nil, errors.NotFoundf("folder %s not found", folderID)
	}
	chats, err := s.store.Chats.ListByIndex(ctx, "folderId", folderID)
	if err != nil {
		return nil, err
	}
	for _, c := range chats {
		s.normalizeChat(c)
	}
	return chats, nil
}

// ChatsWithTag returns the chats carrying the tag.
func (s *Service) ChatsWithTag(ctx context.Context, tagID string) ([]*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if !s.tagExists(tagID) {
		return nil, errors.NotFoundf("tag %s not found", tagID)
	}
	all, err := s.store.Chats.List(ctx)
	if err != nil {
		return nil, err
	}
	var chats []*domain.Chat
	for _, c := range all {
		if c.HasTag(tagID) {
			chats = append(chats, s.normalizeChat(c))
		}
	}
	sort.Slice(chats, func(i, j int) bool { return chats[i].ChatID < chats[j].ChatID })
	return chats, nil
}

// PinnedChats returns locally pinned chats via the isPinned index.
func (s *Service) PinnedChats(ctx context.Context) ([]*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	chats, err := s.store.Chats.ListByIndex(ctx, "isPinned", "1")
	if err != nil {
		return nil, err
	}
	for _, c := range chats {
		s.normalizeChat(c)
	}
	return chats, nil
}

// UpdateChat applies a partial update to the chat record, creating it
// with defaults first if it never existed.
func (s *Service) UpdateChat(ctx context.Context, chatID string, patch domain.ChatPatch) (*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	chat, err := s.loadOrSynthesize(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if !patch.Apply(chat) {
		return chat, nil
	}

	if _, err := s.store.Chats.Put(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// AssignChatToFolder moves the chat into the folder. An empty folder id
// unfiles the chat. The target folder must exist at assignment time.
func (s *Service) AssignChatToFolder(ctx context.Context, chatID, folderID string) (*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if folderID != "" && !s.folderExists(folderID) {
		return nil, errors.NotFoundf("folder %s not found", folderID)
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	chat, err := s.loadOrSynthesize(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if chat.FolderID != folderID {
		chat.FolderID = folderID
		chat.Touch()
	}
	if _, err := s.store.Chats.Put(ctx, chat); err != nil {
		return nil, err
	}

	s.logger.Info("chat assigned to folder", "chat_id", chatID, "folder_id", folderID)
	return chat, nil
}

// AddTagToChat appends the tag to the chat's ordered tag list. Idempotent.
func (s *Service) AddTagToChat(ctx context.Context, chatID, tagID string) (*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if !s.tagExists(tagID) {
		return nil, errors.NotFoundf("tag %s not found", tagID)
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	chat, err := s.loadOrSynthesize(ctx, chatID)
	if err != nil {
		return nil, err
	}

	chat.AddTag(tagID)
	if _, err := s.store.Chats.Put(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// RemoveTagFromChat removes the tag, preserving the order of the rest.
// Idempotent; removing a tag the chat does not carry changes nothing.
func (s *Service) RemoveTagFromChat(ctx context.Context, chatID, tagID string) (*domain.Chat, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}

	unlock := s.chatLocks.Lock(chatID)
	defer unlock()

	chat, err := s.loadOrSynthesize(ctx, chatID)
	if err != nil {
		return nil, err
	}

	if chat.RemoveTag(tagID) {
		if _, err := s.store.Chats.Put(ctx, chat); err != nil {
			return nil, err
		}
	}
	return chat, nil
}
