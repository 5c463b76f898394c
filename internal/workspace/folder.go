package workspace

import (
	"context"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/id"
)

// CreateFolderInput is the validated shape for folder creation.
type CreateFolderInput struct {
	Name  string `json:"name" validate:"required,min=1,max=120"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// CreateFolder persists a new folder at the end of the display sequence
// and adds it to the cache.
func (s *Service) CreateFolder(ctx context.Context, input CreateFolderInput) (*domain.Folder, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}

	folderID, err := id.Generate("folder")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate folder id")
	}

	s.mu.Lock()
	order := len(s.folders)
	s.mu.Unlock()

	folder := domain.NewFolder(folderID, input.Name, input.Color, order)
	if _, err := s.store.Folders.Put(ctx, folder); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.folders[folder.FolderID] = folder
	s.mu.Unlock()

	s.logger.Info("folder created", "folder_id", folder.FolderID, "name", folder.Name)
	return folder, nil
}

// GetFolder returns a folder from the cache.
func (s *Service) GetFolder(ctx context.Context, folderID string) (*domain.Folder, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	folder, ok := s.folders[folderID]
	if !ok {
		return nil, errors.NotFoundf("folder %s not found", folderID)
	}
	return folder, nil
}

// ListFolders returns all folders in display order.
func (s *Service) ListFolders(ctx context.Context) ([]*domain.Folder, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	folders := make([]*domain.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		folders = append(folders, f)
	}
	s.mu.RUnlock()

	sortFoldersByOrder(folders)
	return folders, nil
}

// UpdateFolder applies a partial update: the stored record is read, the
// patch merged, the updatedAt stamp advanced only when something changed,
// then the record written back and the cache refreshed.
func (s *Service) UpdateFolder(ctx context.Context, folderID string, patch domain.FolderPatch) (*domain.Folder, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	folder, err := s.store.Folders.Get(ctx, folderID)
	if err != nil {
		return nil, err
	}

	if !patch.Apply(folder) {
		return folder, nil
	}

	if _, err := s.store.Folders.Put(ctx, folder); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.folders[folder.FolderID] = folder
	s.mu.Unlock()

	s.logger.Info("folder updated", "folder_id", folderID)
	return folder, nil
}

// DeleteFolder removes the folder, then nulls the folder reference on
// every chat that pointed at it (cascade-to-null; chats survive).
//
// The cascade is one write per chat, not a transaction. If it is
// interrupted, the remaining chats keep a dangling reference, which every
// reader already treats as "no folder", so the state self-heals on the
// next write to each chat. Deleting an absent folder is a no-op.
func (s *Service) DeleteFolder(ctx context.Context, folderID string) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}

	// 1. Find member chats via the index before dropping the record.
	chats, err := s.store.Chats.ListByIndex(ctx, "folderId", folderID)
	if err != nil {
		return err
	}

	// 2. Remove the folder itself.
	if err := s.store.Folders.Delete(ctx, folderID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.folders, folderID)
	s.mu.Unlock()

	// 3. Null out membership chat by chat.
	for _, chat := range chats {
		unlock := s.chatLocks.Lock(chat.ChatID)
		current, err := s.store.Chats.Get(ctx, chat.ChatID)
		if err != nil {
			unlock()
			if errors.Is(err, errors.ErrNotFound) {
				continue
			}
			return err
		}
		if current.FolderID == folderID {
			current.FolderID = ""
			current.Touch()
			if _, err := s.store.Chats.Put(ctx, current); err != nil {
				unlock()
				return err
			}
		}
		unlock()
	}

	s.logger.Info("folder deleted", "folder_id", folderID, "chats_unfiled", len(chats))
	return nil
}
