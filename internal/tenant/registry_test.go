package tenant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.json")
	content := []byte(`{
  "apps": [
    {"app_id": "taskhub", "app_name": "TaskHub", "features": {"projects": true}},
    {"app_id": "blogsmith", "app_name": "BlogSmith", "features": {"ai_generation": true, "monetization": false}}
  ]
}`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	registry, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Len(t, registry.All(), 2)
	assert.True(t, registry.Exists("taskhub"))
	assert.False(t, registry.Exists("unknown"))

	cfg := registry.Get("blogsmith")
	require.NotNil(t, cfg)
	assert.Equal(t, "BlogSmith", cfg.AppName)

	assert.True(t, registry.HasFeature("blogsmith", "ai_generation"))
	assert.False(t, registry.HasFeature("blogsmith", "monetization"))
	assert.False(t, registry.HasFeature("unknown", "anything"))
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile("/does/not/exist.json")
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
