package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

func (s *Server) registerChatRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listChats",
		Method:      http.MethodGet,
		Path:        "/api/v1/chats",
		Summary:     "List chats",
		Description: "Returns all organized chats, most recently updated first",
		Tags:        []string{"Chats"},
	}, s.handleListChats)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPinnedChats",
		Method:      http.MethodGet,
		Path:        "/api/v1/chats/pinned",
		Summary:     "List pinned chats",
		Tags:        []string{"Chats"},
	}, s.handleListPinnedChats)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChat",
		Method:      http.MethodGet,
		Path:        "/api/v1/chats/{id}",
		Summary:     "Get chat",
		Description: "Returns the chat's organization record, synthesized with defaults if never organized",
		Tags:        []string{"Chats"},
	}, s.handleGetChat)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateChat",
		Method:      http.MethodPatch,
		Path:        "/api/v1/chats/{id}",
		Summary:     "Update chat",
		Tags:        []string{"Chats"},
	}, s.handleUpdateChat)

	huma.Register(s.api, huma.Operation{
		OperationID: "assignChatFolder",
		Method:      http.MethodPut,
		Path:        "/api/v1/chats/{id}/folder",
		Summary:     "Assign chat to folder",
		Description: "Moves the chat into a folder; an empty folder id unfiles it",
		Tags:        []string{"Chats"},
	}, s.handleAssignChatFolder)

	huma.Register(s.api, huma.Operation{
		OperationID: "addChatTag",
		Method:      http.MethodPut,
		Path:        "/api/v1/chats/{id}/tags/{tagId}",
		Summary:     "Add tag to chat",
		Tags:        []string{"Chats"},
	}, s.handleAddChatTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeChatTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/chats/{id}/tags/{tagId}",
		Summary:     "Remove tag from chat",
		Tags:        []string{"Chats"},
	}, s.handleRemoveChatTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleChatPin",
		Method:      http.MethodPost,
		Path:        "/api/v1/chats/{id}/pin",
		Summary:     "Toggle chat pin",
		Description: "Flips the pin state locally and in the replicated pin list",
		Tags:        []string{"Chats"},
	}, s.handleToggleChatPin)
}

type ChatIDInput struct {
	ID string `path:"id" doc:"Chat ID"`
}

type ChatOutput struct {
	Body *domain.Chat
}

type ChatListOutput struct {
	Body []*domain.Chat
}

type UpdateChatInput struct {
	ID   string `path:"id" doc:"Chat ID"`
	Body domain.ChatPatch
}

type AssignChatFolderInput struct {
	ID   string `path:"id" doc:"Chat ID"`
	Body struct {
		FolderID string `json:"folderId" doc:"Target folder ID; empty unfiles the chat"`
	}
}

type ChatTagInput struct {
	ID    string `path:"id" doc:"Chat ID"`
	TagID string `path:"tagId" doc:"Tag ID"`
}

type TogglePinOutput struct {
	Body struct {
		ChatID   string `json:"chatId"`
		IsPinned bool   `json:"isPinned"`
	}
}

func (s *Server) handleListChats(ctx context.Context, _ *struct{}) (*ChatListOutput, error) {
	chats, err := s.service.AllChats(ctx)
	if err != nil {
		return nil, err
	}
	return &ChatListOutput{Body: chats}, nil
}

func (s *Server) handleListPinnedChats(ctx context.Context, _ *struct{}) (*ChatListOutput, error) {
	chats, err := s.service.PinnedChats(ctx)
	if err != nil {
		return nil, err
	}
	return &ChatListOutput{Body: chats}, nil
}

func (s *Server) handleGetChat(ctx context.Context, input *ChatIDInput) (*ChatOutput, error) {
	chat, err := s.service.GetChat(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ChatOutput{Body: chat}, nil
}

func (s *Server) handleUpdateChat(ctx context.Context, input *UpdateChatInput) (*ChatOutput, error) {
	chat, err := s.service.UpdateChat(ctx, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ChatOutput{Body: chat}, nil
}

func (s *Server) handleAssignChatFolder(ctx context.Context, input *AssignChatFolderInput) (*ChatOutput, error) {
	chat, err := s.service.AssignChatToFolder(ctx, input.ID, input.Body.FolderID)
	if err != nil {
		return nil, err
	}
	return &ChatOutput{Body: chat}, nil
}

func (s *Server) handleAddChatTag(ctx context.Context, input *ChatTagInput) (*ChatOutput, error) {
	chat, err := s.service.AddTagToChat(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, err
	}
	return &ChatOutput{Body: chat}, nil
}

func (s *Server) handleRemoveChatTag(ctx context.Context, input *ChatTagInput) (*ChatOutput, error) {
	chat, err := s.service.RemoveTagFromChat(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, err
	}
	return &ChatOutput{Body: chat}, nil
}

func (s *Server) handleToggleChatPin(ctx context.Context, input *ChatIDInput) (*TogglePinOutput, error) {
	pinned, err := s.service.TogglePin(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	out := &TogglePinOutput{}
	out.Body.ChatID = input.ID
	out.Body.IsPinned = pinned
	return out, nil
}
