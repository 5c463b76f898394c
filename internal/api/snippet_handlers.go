package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

func (s *Server) registerSnippetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSnippets",
		Method:      http.MethodGet,
		Path:        "/api/v1/snippets",
		Summary:     "List snippets",
		Tags:        []string{"Snippets"},
	}, s.handleListSnippets)

	huma.Register(s.api, huma.Operation{
		OperationID: "createSnippet",
		Method:      http.MethodPost,
		Path:        "/api/v1/snippets",
		Summary:     "Create snippet",
		Tags:        []string{"Snippets"},
	}, s.handleCreateSnippet)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSnippet",
		Method:      http.MethodGet,
		Path:        "/api/v1/snippets/{id}",
		Summary:     "Get snippet",
		Tags:        []string{"Snippets"},
	}, s.handleGetSnippet)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSnippet",
		Method:      http.MethodPatch,
		Path:        "/api/v1/snippets/{id}",
		Summary:     "Update snippet",
		Tags:        []string{"Snippets"},
	}, s.handleUpdateSnippet)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSnippet",
		Method:      http.MethodDelete,
		Path:        "/api/v1/snippets/{id}",
		Summary:     "Delete snippet",
		Tags:        []string{"Snippets"},
	}, s.handleDeleteSnippet)
}

type CreateSnippetInput struct {
	Body workspace.CreateSnippetInput
}

type SnippetOutput struct {
	Body *domain.Snippet
}

type SnippetListOutput struct {
	Body []*domain.Snippet
}

type SnippetIDInput struct {
	ID string `path:"id" doc:"Snippet ID"`
}

type UpdateSnippetInput struct {
	ID   string `path:"id" doc:"Snippet ID"`
	Body domain.SnippetPatch
}

func (s *Server) handleListSnippets(ctx context.Context, _ *struct{}) (*SnippetListOutput, error) {
	snippets, err := s.service.ListSnippets(ctx)
	if err != nil {
		return nil, err
	}
	return &SnippetListOutput{Body: snippets}, nil
}

func (s *Server) handleCreateSnippet(ctx context.Context, input *CreateSnippetInput) (*SnippetOutput, error) {
	snippet, err := s.service.CreateSnippet(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &SnippetOutput{Body: snippet}, nil
}

func (s *Server) handleGetSnippet(ctx context.Context, input *SnippetIDInput) (*SnippetOutput, error) {
	snippet, err := s.service.GetSnippet(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &SnippetOutput{Body: snippet}, nil
}

func (s *Server) handleUpdateSnippet(ctx context.Context, input *UpdateSnippetInput) (*SnippetOutput, error) {
	snippet, err := s.service.UpdateSnippet(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &SnippetOutput{Body: snippet}, nil
}

func (s *Server) handleDeleteSnippet(ctx context.Context, input *SnippetIDInput) (*struct{}, error) {
	if err := s.service.DeleteSnippet(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
