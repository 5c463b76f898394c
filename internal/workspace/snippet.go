package workspace

import (
	"context"
	"sort"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/errors"
	"github.com/workspaceapp/workspace-server/internal/id"
)

// CreateSnippetInput is the validated shape for snippet creation.
type CreateSnippetInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required"`
}

// CreateSnippet stores a reusable prompt snippet.
func (s *Service) CreateSnippet(ctx context.Context, input CreateSnippetInput) (*domain.Snippet, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}

	snippetID, err := id.Generate("snippet")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate snippet id")
	}

	snippet := domain.NewSnippet(snippetID, input.Title, input.Content)
	if _, err := s.store.Snippets.Put(ctx, snippet); err != nil {
		return nil, err
	}

	s.logger.Info("snippet created", "snippet_id", snippet.SnippetID)
	return snippet, nil
}

// GetSnippet returns a snippet by id.
func (s *Service) GetSnippet(ctx context.Context, snippetID string) (*domain.Snippet, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	return s.store.Snippets.Get(ctx, snippetID)
}

// ListSnippets returns all snippets, most recently updated first.
func (s *Service) ListSnippets(ctx context.Context) ([]*domain.Snippet, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	snippets, err := s.store.Snippets.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(snippets, func(i, j int) bool {
		if snippets[i].UpdatedAt != snippets[j].UpdatedAt {
			return snippets[i].UpdatedAt > snippets[j].UpdatedAt
		}
		return snippets[i].SnippetID < snippets[j].SnippetID
	})
	return snippets, nil
}

// UpdateSnippet applies a partial update.
func (s *Service) UpdateSnippet(ctx context.Context, snippetID string, patch domain.SnippetPatch) (*domain.Snippet, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(patch); err != nil {
		return nil, err
	}

	snippet, err := s.store.Snippets.Get(ctx, snippetID)
	if err != nil {
		return nil, err
	}

	if !patch.Apply(snippet) {
		return snippet, nil
	}

	if _, err := s.store.Snippets.Put(ctx, snippet); err != nil {
		return nil, err
	}
	return snippet, nil
}

// DeleteSnippet removes a snippet. Idempotent.
func (s *Service) DeleteSnippet(ctx context.Context, snippetID string) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}
	if err := s.store.Snippets.Delete(ctx, snippetID); err != nil {
		return err
	}
	s.logger.Info("snippet deleted", "snippet_id", snippetID)
	return nil
}
