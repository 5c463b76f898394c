package workspace

import (
	"context"
	"sort"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/id"
)

// CreateTagInput is the validated shape for tag creation.
type CreateTagInput struct {
	Name  string `json:"name" validate:"required,min=1,max=60"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// CreateTag persists a new tag and adds it to the cache.
func (s *Service) CreateTag(ctx context.Context, input CreateTagInput) (*domain.Tag, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate tag id")
	}

	tag := domain.NewTag(tagID, input.Name, input.Color)
	if _, err := s.store.Tags.Put(ctx, tag); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tags[tag.TagID] = tag
	s.mu.Unlock()

	s.logger.Info("tag created", "tag_id", tag.TagID, "name", tag.Name)
	return tag, nil
}

// GetTag returns a tag from the cache.
func (s *Service) GetTag(ctx context.Context, tagID string) (*domain.Tag, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	tag, ok := s.tags[tagID]
	if !ok {
		return nil, errors.NotFoundf("tag %s not found", tagID)
	}
	return tag, nil
}

// ListTags returns all tags sorted by name.
func (s *Service) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	tags := make([]*domain.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		tags = append(tags, t)
	}
	s.mu.RUnlock()

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Name != tags[j].Name {
			return tags[i].Name < tags[j].Name
		}
		return tags[i].TagID < tags[j].TagID
	})
	return tags, nil
}

// UpdateTag applies a partial update and refreshes the cache.
func (s *Service) UpdateTag(ctx context.Context, tagID string, patch domain.TagPatch) (*domain.Tag, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	tag, err := s.store.Tags.Get(ctx, tagID)
	if err != nil {
		return nil, err
	}

	if !patch.Apply(tag) {
		return tag, nil
	}

	if _, err := s.store.Tags.Put(ctx, tag); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tags[tag.TagID] = tag
	s.mu.Unlock()

	s.logger.Info("tag updated", "tag_id", tagID)
	return tag, nil
}

// DeleteTag removes the tag, then prunes its id from every chat's tag
// list, preserving the order of the remaining tags (cascade-to-remove).
//
// There is no tag membership index (tags live inside the chat record), so
// the cascade scans all chats. Same non-transactional caveat as the
// folder cascade; a leftover id on an unscanned chat is skipped by
// readers because they resolve tags through the cache.
func (s *Service) DeleteTag(ctx context.Context, tagID string) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}

	if err := s.store.Tags.Delete(ctx, tagID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.tags, tagID)
	s.mu.Unlock()

	chats, err := s.store.Chats.List(ctx)
	if err != nil {
		return err
	}

	pruned := 0
	for _, chat := range chats {
		if !chat.HasTag(tagID) {
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
		if current.RemoveTag(tagID) {
			if _, err := s.store.Chats.Put(ctx, current); err != nil {
				unlock()
				return err
			}
			pruned++
		}
		unlock()
	}

	s.logger.Info("tag deleted", "tag_id", tagID, "chats_pruned", pruned)
	return nil
}
