package models

import "time"

// SettingsID is the well-known id of the single platform settings document.
// Settings are always addressed by this id, never by an unfiltered query.
const SettingsID = "platform-settings"

// NotificationPrefs toggles the channels used for operator alerts.
type NotificationPrefs struct {
	Email bool `bson:"email" json:"email"`
	SMS   bool `bson:"sms" json:"sms"`
	Push  bool `bson:"push" json:"push"`
}

// BookingSettings holds scheduling defaults shown in the admin UI.
type BookingSettings struct {
	SlotDurationMin int    `bson:"slot_duration_min" json:"slotDurationMin"`
	WorkingHours    string `bson:"working_hours" json:"workingHours"`
}

// PaymentSettings holds the checkout configuration.
type PaymentSettings struct {
	Currency string `bson:"currency" json:"currency"`
}

// Settings is the single platform configuration record.
type Settings struct {
	ID            string            `bson:"id" json:"id"`
	BusinessName  string            `bson:"business_name" json:"businessName"`
	BusinessPhone string            `bson:"business_phone" json:"businessPhone"`
	ContactEmail  string            `bson:"contact_email" json:"contactEmail"`
	Logo          string            `bson:"logo" json:"logo"`
	Notifications NotificationPrefs `bson:"notifications" json:"notifications"`
	Currency      string            `bson:"currency" json:"currency"`
	Timezone      string            `bson:"timezone" json:"timezone"`
	Booking       BookingSettings   `bson:"booking" json:"booking"`
	Payments      PaymentSettings   `bson:"payments" json:"payments"`
	UpdatedAt     time.Time         `bson:"updated_at" json:"updatedAt"`
}

// DefaultSettings returns the settings document created on first access.
func DefaultSettings() Settings {
	return Settings{
		ID:       SettingsID,
		Currency: "USD",
		Timezone: "UTC",
		Notifications: NotificationPrefs{
			Email: true,
		},
		Booking: BookingSettings{
			SlotDurationMin: 30,
			WorkingHours:    "9AM - 5PM",
		},
		Payments: PaymentSettings{
			Currency: "USD",
		},
	}
}
