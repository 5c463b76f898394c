package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
	"github.com/workspaceapp/workspace-server/internal/workspace"
)

func (s *Server) registerFolderRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFolders",
		Method:      http.MethodGet,
		Path:        "/api/v1/folders",
		Summary:     "List folders",
		Description: "Returns all folders in display order",
		Tags:        []string{"Folders"},
	}, s.handleListFolders)

	huma.Register(s.api, huma.Operation{
		OperationID: "createFolder",
		Method:      http.MethodPost,
		Path:        "/api/v1/folders",
		Summary:     "Create folder",
		Tags:        []string{"Folders"},
	}, s.handleCreateFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFolder",
		Method:      http.MethodGet,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Get folder",
		Tags:        []string{"Folders"},
	}, s.handleGetFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateFolder",
		Method:      http.MethodPatch,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Update folder",
		Tags:        []string{"Folders"},
	}, s.handleUpdateFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteFolder",
		Method:      http.MethodDelete,
		Path:        "/api/v1/folders/{id}",
		Summary:     "Delete folder",
		Description: "Deletes the folder; member chats become unfiled",
		Tags:        []string{"Folders"},
	}, s.handleDeleteFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFolderChats",
		Method:      http.MethodGet,
		Path:        "/api/v1/folders/{id}/chats",
		Summary:     "List folder chats",
		Tags:        []string{"Folders"},
	}, s.handleListFolderChats)
}

type CreateFolderInput struct {
	Body workspace.CreateFolderInput
}

type FolderOutput struct {
	Body *domain.Folder
}

type FolderListOutput struct {
	Body []*domain.Folder
}

type GetFolderInput struct {
	ID string `path:"id" doc:"Folder ID"`
}

type UpdateFolderInput struct {
	ID   string `path:"id" doc:"Folder ID"`
	Body domain.FolderPatch
}

type DeleteFolderInput struct {
	ID string `path:"id" doc:"Folder ID"`
}

func (s *Server) handleListFolders(ctx context.Context, _ *struct{}) (*FolderListOutput, error) {
	folders, err := s.service.ListFolders(ctx)
	if err != nil {
		return nil, err
	}
	return &FolderListOutput{Body: folders}, nil
}

func (s *Server) handleCreateFolder(ctx context.Context, input *CreateFolderInput) (*FolderOutput, error) {
	folder, err := s.service.CreateFolder(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: folder}, nil
}

func (s *Server) handleGetFolder(ctx context.Context, input *GetFolderInput) (*FolderOutput, error) {
	folder, err := s.service.GetFolder(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: folder}, nil
}

func (s *Server) handleUpdateFolder(ctx context.Context, input *UpdateFolderInput) (*FolderOutput, error) {
	folder, err := s.service.UpdateFolder(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &FolderOutput{Body: folder}, nil
}

func (s *Server) handleDeleteFolder(ctx context.Context, input *DeleteFolderInput) (*struct{}, error) {
	if err := s.service.DeleteFolder(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleListFolderChats(ctx context.Context, input *GetFolderInput) (*ChatListOutput, error) {
	chats, err := s.service.ChatsInFolder(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ChatListOutput{Body: chats}, nil
}
