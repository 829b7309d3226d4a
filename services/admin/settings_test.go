package admin

import (
	"context"
	"testing"
	"time"

	"localbooker/models"
)

// memSettings mirrors the Mongo repository's semantics: Get seeds the default
// document when missing, Update upserts the well-known document.
type memSettings struct {
	stored *models.Settings
}

func (m *memSettings) Get(ctx context.Context) (*models.Settings, error) {
	if m.stored == nil {
		s := models.DefaultSettings()
		s.UpdatedAt = time.Now()
		m.stored = &s
	}
	cp := *m.stored
	return &cp, nil
}

func (m *memSettings) Update(ctx context.Context, settings *models.Settings) error {
	cp := *settings
	m.stored = &cp
	return nil
}

func TestUpdateSettingsBeforeFirstGet(t *testing.T) {
	// The very first write must create the document; nothing guarantees a
	// Get ran before it.
	a := &DefaultAdminService{Settings: &memSettings{}}
	ctx := context.Background()

	in := &models.Settings{ID: "whatever-the-client-sent", BusinessName: "Tidy Homes", Currency: "EUR"}
	saved, err := a.UpdateSettings(ctx, in)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saved.ID != models.SettingsID {
		t.Fatalf("settings id must be forced to %q, got %q", models.SettingsID, saved.ID)
	}

	got, err := a.GetSettings(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.BusinessName != "Tidy Homes" || got.Currency != "EUR" {
		t.Fatalf("first write was lost: %+v", got)
	}
}

func TestGetSettingsSeedsDefaults(t *testing.T) {
	a := &DefaultAdminService{Settings: &memSettings{}}

	got, err := a.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != models.SettingsID {
		t.Fatalf("expected well-known id, got %q", got.ID)
	}
	if got.Currency != "USD" || !got.Notifications.Email {
		t.Fatalf("defaults not seeded: %+v", got)
	}
}
