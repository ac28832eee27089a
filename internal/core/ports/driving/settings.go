package driving

import "github.com/custodia-labs/dtindex/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.Settings, error)

	// Set validates and stores one setting by its dotted key.
	Set(key, value string) error

	// Unset removes a stored setting so its default applies again.
	Unset(key string) error

	// Keys lists the settable keys.
	Keys() []string

	// ConfigPath returns where settings are stored.
	ConfigPath() string
}
