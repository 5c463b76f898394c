package workspace

import (
	"context"

	"github.com/workspaceapp/workspace-server/internal/domain"
)

// GetSettings returns the replicated user settings, falling back to
// defaults when the store has never been written or is unreachable.
func (s *Service) GetSettings(ctx context.Context) (*domain.Settings, error) {
	if err := s.requireInitialized(); err != nil {
		return nil, err
	}

	data, err := s.sync.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data.Settings == nil {
		return domain.DefaultSettings(s.version), nil
	}
	return data.Settings, nil
}

// UpdateSettings replaces the settings key wholesale (last-writer-wins
// across devices) and refreshes the metadata sync timestamp.
func (s *Service) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}
	if err := s.validate.Validate(settings); err != nil {
		return err
	}

	data, err := s.sync.Load(ctx)
	if err != nil {
		return err
	}
	metadata := data.Metadata
	if metadata == nil {
		metadata = domain.DefaultMetadata()
	}
	metadata.LastSyncTimestamp = domain.NowMillis()

	if err := s.sync.Save(ctx, settings, metadata); err != nil {
		return err
	}

	s.logger.Info("settings updated")
	return nil
}

// UpdateScratchPad stores the free-form scratch pad text inside settings.
func (s *Service) UpdateScratchPad(ctx context.Context, text string) error {
	if err := s.requireInitialized(); err != nil {
		return err
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return err
	}
	if settings.ScratchPad == text {
		return nil
	}
	settings.ScratchPad = text
	return s.UpdateSettings(ctx, settings)
}
