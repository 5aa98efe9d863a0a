package models

import "time"

// Branding keys stored in app_settings.
const SettingLogoURL = "logo_url"

type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
