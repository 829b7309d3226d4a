package settingsRepo

import (
	"context"

	"localbooker/models"
)

// Repository stores the single platform settings document, addressed by the
// well-known models.SettingsID.
type Repository interface {
	// Get returns the settings document, creating the default one if missing.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}
