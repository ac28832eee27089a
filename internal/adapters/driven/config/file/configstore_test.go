package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_HomeEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dtindex")
	t.Setenv(HomeEnv, dir)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	assert.DirExists(t, dir)
}

func TestDefaultDir_FallsBackToHome(t *testing.T) {
	t.Setenv(HomeEnv, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	dir, err := DefaultDir()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".dtindex"), dir)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.path", "index.csv"))

	val, ok := store.Get("dataset.path")
	assert.True(t, ok)
	assert.Equal(t, "index.csv", val)
	assert.Equal(t, "index.csv", store.GetString("dataset.path"))
}

func TestConfigStore_SetEmptyKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("", "x"))
}

func TestConfigStore_GetString_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("cache.ttl", 42))

	assert.Equal(t, "", store.GetString("cache.ttl"))
	assert.Equal(t, "", store.GetString("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("loader.encodings", []string{"utf-8-sig", "gbk"}))

	assert.Equal(t, []string{"utf-8-sig", "gbk"}, store.GetStringSlice("loader.encodings"))
	assert.Nil(t, store.GetStringSlice("missing"))

	require.NoError(t, store.Set("dataset.path", "index.csv"))
	assert.Nil(t, store.GetStringSlice("dataset.path"))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("dataset.path", "data.csv"))
	require.NoError(t, store.Set("loader.encodings", []string{"gbk"}))

	raw, err := os.ReadFile(filepath.Join(tmpDir, "config.toml"))
	require.NoError(t, err)
	content := string(raw)
	assert.Contains(t, content, "[dataset]")
	assert.Contains(t, content, "[loader]")
	assert.NotContains(t, content, "dataset.path")
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.path", "data.csv"))
	require.NoError(t, store.Set("loader.encodings", []string{"utf-8-sig", "gbk"}))
	require.NoError(t, store.Set("cache.ttl", "30m"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "data.csv", reopened.GetString("dataset.path"))
	assert.Equal(t, []string{"utf-8-sig", "gbk"}, reopened.GetStringSlice("loader.encodings"))
	assert.Equal(t, "30m", reopened.GetString("cache.ttl"))
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `[dataset]
path = "汇总.xlsx"
sheet = "Sheet2"

[loader]
encodings = ["gbk", "latin-1"]
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "汇总.xlsx", store.GetString("dataset.path"))
	assert.Equal(t, "Sheet2", store.GetString("dataset.sheet"))
	assert.Equal(t, []string{"gbk", "latin-1"}, store.GetStringSlice("loader.encodings"))
}

func TestConfigStore_Delete(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.path", "data.csv"))

	require.NoError(t, store.Delete("dataset.path"))
	require.NoError(t, store.Delete("dataset.path"))

	_, ok := store.Get("dataset.path")
	assert.False(t, ok)

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok = reopened.Get("dataset.path")
	assert.False(t, ok)
}

func TestConfigStore_KeyConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset", "flat"))

	assert.Error(t, store.Set("dataset.path", "data.csv"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("dataset.path", "data.csv"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("dataset.path")
	assert.False(t, ok)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[dataset\npath ="), 0600))

	_, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	_, err := NewConfigStore(filepath.Join(blocker, "sub"))

	assert.Error(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("dataset.path", "data.csv")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("dataset.path")
		}()
	}
	wg.Wait()

	assert.Equal(t, "data.csv", store.GetString("dataset.path"))
}
