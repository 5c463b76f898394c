package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags",
		Summary:     "List tags",
		Tags:        []string{"Tags"},
	}, s.handleListTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "createTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/tags",
		Summary:     "Create tag",
		Tags:        []string{"Tags"},
	}, s.handleCreateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Update tag",
		Tags:        []string{"Tags"},
	}, s.handleUpdateTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes the tag and removes it from every chat",
		Tags:        []string{"Tags"},
	}, s.handleDeleteTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTagChats",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/{id}/chats",
		Summary:     "List chats with tag",
		Tags:        []string{"Tags"},
	}, s.handleListTagChats)
}

type CreateTagInput struct {
	Body workspace.CreateTagInput
}

type TagOutput struct {
	Body *domain.Tag
}

type TagListOutput struct {
	Body []*domain.Tag
}

type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body domain.TagPatch
}

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*TagListOutput, error) {
	tags, err := s.service.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	return &TagListOutput{Body: tags}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag, err := s.service.CreateTag(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	tag, err := s.service.UpdateTag(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*struct{}, error) {
	if err := s.service.DeleteTag(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleListTagChats(ctx context.Context, input *TagIDInput) (*ChatListOutput, error) {
	chats, err := s.service.ChatsWithTag(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ChatListOutput{Body: chats}, nil
}
