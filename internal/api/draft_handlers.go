package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

func (s *Server) registerDraftRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDrafts",
		Method:      http.MethodGet,
		Path:        "/api/v1/chats/{id}/drafts",
		Summary:     "List draft history",
		Description: "Returns the chat's draft history, newest first",
		Tags:        []string{"Drafts"},
	}, s.handleListDrafts)

	huma.Register(s.api, huma.Operation{
		OperationID: "recordDraft",
		Method:      http.MethodPost,
		Path:        "/api/v1/chats/{id}/drafts",
		Summary:     "Record draft",
		Description: "Snapshots the editor content; identical consecutive snapshots are skipped",
		Tags:        []string{"Drafts"},
	}, s.handleRecordDraft)

	huma.Register(s.api, huma.Operation{
		OperationID: "clearDrafts",
		Method:      http.MethodDelete,
		Path:        "/api/v1/chats/{id}/drafts",
		Summary:     "Clear draft history",
		Tags:        []string{"Drafts"},
	}, s.handleClearDrafts)
}

type RecordDraftInput struct {
	ID   string `path:"id" doc:"Chat ID"`
	Body struct {
		Content string `json:"content" doc:"Editor content to snapshot"`
	}
}

type DraftOutput struct {
	Body *domain.Draft
}

type DraftListOutput struct {
	Body []*domain.Draft
}

func (s *Server) handleListDrafts(ctx context.Context, input *ChatIDInput) (*DraftListOutput, error) {
	drafts, err := s.service.DraftHistory(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DraftListOutput{Body: drafts}, nil
}

func (s *Server) handleRecordDraft(ctx context.Context, input *RecordDraftInput) (*DraftOutput, error) {
	draft, err := s.service.RecordDraft(ctx, input.ID, input.Body.Content)
	if err != nil {
		return nil, err
	}
	return &DraftOutput{Body: draft}, nil
}

func (s *Server) handleClearDrafts(ctx context.Context, input *ChatIDInput) (*struct{}, error) {
	if err := s.service.ClearDrafts(ctx, input.ID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
