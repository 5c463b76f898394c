package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

func (s *Server) registerSettingsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getSettings",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings",
		Summary:     "Get settings",
		Description: "Returns the replicated user settings, defaults if never written",
		Tags:        []string{"Settings"},
	}, s.handleGetSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSettings",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings",
		Summary:     "Update settings",
		Description: "Replaces the settings key; last writer wins across devices",
		Tags:        []string{"Settings"},
	}, s.handleUpdateSettings)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateScratchPad",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/scratchpad",
		Summary:     "Update scratch pad",
		Tags:        []string{"Settings"},
	}, s.handleUpdateScratchPad)
}

type SettingsOutput struct {
	Body *domain.Settings
}

type UpdateSettingsInput struct {
	Body domain.Settings
}

type UpdateScratchPadInput struct {
	Body struct {
		Text string `json:"text" doc:"Scratch pad content"`
	}
}

func (s *Server) handleGetSettings(ctx context.Context, _ *struct{}) (*SettingsOutput, error) {
	settings, err := s.service.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: settings}, nil
}

func (s *Server) handleUpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*SettingsOutput, error) {
	if err := s.service.UpdateSettings(ctx, &input.Body); err != nil {
		return nil, err
	}
	settings, err := s.service.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: settings}, nil
}

func (s *Server) handleUpdateScratchPad(ctx context.Context, input *UpdateScratchPadInput) (*SettingsOutput, error) {
	if err := s.service.UpdateScratchPad(ctx, input.Body.Text); err != nil {
		return nil, err
	}
	settings, err := s.service.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsOutput{Body: settings}, nil
}
