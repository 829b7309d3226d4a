package admin

import (
	"context"
	"fmt"
	"time"

	"localbooker/models"
)

// GetSettings returns the platform settings document, creating the default
// one on first access.
func (a *DefaultAdminService) GetSettings(ctx context.Context) (*models.Settings, error) {
	s, err := a.Settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return s, nil
}

// UpdateSettings replaces the settings document. The id is fixed; whatever
// the caller sends is overridden with the well-known settings id.
func (a *DefaultAdminService) UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	settings.ID = models.SettingsID
	settings.UpdatedAt = time.Now()
	if err := a.Settings.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}
