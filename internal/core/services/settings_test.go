package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/dtindex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/dtindex/internal/core/domain"
	"github.com/custodia-labs/dtindex/internal/encodings"
)

func newTestSettings(t *testing.T) (*SettingsService, *file.ConfigStore) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return NewSettingsService(store, encodings.NewRegistry()), store
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	svc, _ := newTestSettings(t)

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), settings)
}

func TestSettingsService_SetAndGet(t *testing.T) {
	svc, _ := newTestSettings(t)

	require.NoError(t, svc.Set(KeyDatasetPath, " data/汇总.xlsx "))
	require.NoError(t, svc.Set(KeyDatasetSheet, "Sheet2"))
	require.NoError(t, svc.Set(KeyLoaderEncodings, "gbk, utf-8"))
	require.NoError(t, svc.Set(KeyCacheTTL, "15m"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "data/汇总.xlsx", settings.Dataset.Path)
	assert.Equal(t, "Sheet2", settings.Dataset.Sheet)
	assert.Equal(t, []string{"gbk", "utf-8"}, settings.Loader.Encodings)
	assert.Equal(t, 15*time.Minute, settings.Cache.TTL)
}

func TestSettingsService_SetPersists(t *testing.T) {
	svc, store := newTestSettings(t)
	require.NoError(t, svc.Set(KeyLoaderEncodings, "gb18030,latin-1"))

	reopened, err := file.NewConfigStore(filepath.Dir(store.Path()))
	require.NoError(t, err)

	settings, err := NewSettingsService(reopened, encodings.NewRegistry()).Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"gb18030", "latin-1"}, settings.Loader.Encodings)
}

func TestSettingsService_SetRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "name"},
		{"empty path", KeyDatasetPath, "  "},
		{"unknown encoding", KeyLoaderEncodings, "utf-8,big5"},
		{"no encodings", KeyLoaderEncodings, " , "},
		{"bad duration", KeyCacheTTL, "an hour"},
		{"negative duration", KeyCacheTTL, "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestSettings(t)

			err := svc.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			_, ok := store.Get(tt.key)
			assert.False(t, ok)
		})
	}
}

func TestSettingsService_Get_InvalidStoredValuesFallBack(t *testing.T) {
	svc, store := newTestSettings(t)
	require.NoError(t, store.Set(KeyLoaderEncodings, []string{"ebcdic"}))
	require.NoError(t, store.Set(KeyCacheTTL, "soon"))

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultEncodings, settings.Loader.Encodings)
	assert.Equal(t, domain.DefaultCacheTTL, settings.Cache.TTL)
}

func TestSettingsService_ZeroTTLAllowed(t *testing.T) {
	svc, _ := newTestSettings(t)

	require.NoError(t, svc.Set(KeyCacheTTL, "0s"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), settings.Cache.TTL)
}

func TestSettingsService_Unset(t *testing.T) {
	svc, _ := newTestSettings(t)
	require.NoError(t, svc.Set(KeyDatasetPath, "other.csv"))

	require.NoError(t, svc.Unset(KeyDatasetPath))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDatasetPath, settings.Dataset.Path)
	assert.ErrorIs(t, svc.Unset("nope"), domain.ErrInvalidInput)
}

func TestSettingsService_KeysAndPath(t *testing.T) {
	svc, store := newTestSettings(t)

	keys := svc.Keys()
	keys[0] = "mutated"

	assert.Equal(t, []string{KeyDatasetPath, KeyDatasetSheet, KeyLoaderEncodings, KeyCacheTTL}, svc.Keys())
	assert.Equal(t, store.Path(), svc.ConfigPath())
}
