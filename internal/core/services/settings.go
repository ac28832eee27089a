package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/core/ports/driven"
	"github.com/custodia-labs/dtindex/internal/core/ports/driving"
	"github.com/custodia-labs/dtindex/internal/encodings"
	"github.com/custodia-labs/dtindex/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyDatasetPath     = "dataset.path"
	KeyDatasetSheet    = "dataset.sheet"
	KeyLoaderEncodings = "loader.encodings"
	KeyCacheTTL        = "cache.ttl"
)

var settingKeys = []string{KeyDatasetPath, KeyDatasetSheet, KeyLoaderEncodings, KeyCacheTTL}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	registry    *encodings.Registry
}

// NewSettingsService creates a new settings service.
// Encoding names are validated against registry.
func NewSettingsService(configStore driven.ConfigStore, registry *encodings.Registry) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		registry:    registry,
	}
}

// Get retrieves current application settings. Stored values that no
// longer validate fall back to their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	if path := strings.TrimSpace(s.configStore.GetString(KeyDatasetPath)); path != "" {
		settings.Dataset.Path = path
	}
	settings.Dataset.Sheet = strings.TrimSpace(s.configStore.GetString(KeyDatasetSheet))

	if names := s.configStore.GetStringSlice(KeyLoaderEncodings); len(names) > 0 {
		if _, err := s.registry.Resolve(names); err == nil {
			settings.Loader.Encodings = names
		} else {
			logger.Warn("ignoring %s: %v", KeyLoaderEncodings, err)
		}
	}

	if raw := s.configStore.GetString(KeyCacheTTL); raw != "" {
		if ttl, err := parseTTL(raw); err == nil {
			settings.Cache.TTL = ttl
		} else {
			logger.Warn("ignoring %s: %v", KeyCacheTTL, err)
		}
	}

	return settings, nil
}

// Set validates value for key and stores it.
// loader.encodings takes a comma separated list.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case KeyDatasetPath:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		return s.store(key, value)

	case KeyDatasetSheet:
		return s.store(key, value)

	case KeyLoaderEncodings:
		names := splitList(value)
		if _, err := s.registry.Resolve(names); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return s.store(key, names)

	case KeyCacheTTL:
		if _, err := parseTTL(value); err != nil {
			return err
		}
		return s.store(key, value)

	default:
		return fmt.Errorf("%w: unknown setting %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
	}
}

// Unset removes a stored setting.
func (s *SettingsService) Unset(key string) error {
	if !isSettingKey(key) {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Delete(key); err != nil {
		return fmt.Errorf("unset %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) store(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func isSettingKey(key string) bool {
	for _, k := range settingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// parseTTL accepts Go durations; zero disables expiry.
func parseTTL(s string) (time.Duration, error) {
	ttl, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid duration %q", domain.ErrInvalidInput, s)
	}
	if ttl < 0 {
		return 0, fmt.Errorf("%w: negative duration %q", domain.ErrInvalidInput, s)
	}
	return ttl, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
