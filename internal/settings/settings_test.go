package settings

import (
	"path/filepath"
	"testing"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, importer.PolicySkip, cfg.Policy())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NotEmpty(t, cfg.RegistryPath)
}

func TestLoadBytes(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		data := []byte(`
registry_path = "/tmp/servers.json"
default_policy = "rename"
log_level = "debug"
log_format = "json"
`)
		cfg, err := LoadBytes(data)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/servers.json", cfg.RegistryPath)
		assert.Equal(t, importer.PolicyRename, cfg.Policy())
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := LoadBytes([]byte(`default_policy = "replace"`))
		require.NoError(t, err)
		assert.Equal(t, importer.PolicyReplace, cfg.Policy())
		assert.Equal(t, "text", cfg.LogFormat)
		assert.NotEmpty(t, cfg.RegistryPath)
	})

	t.Run("bad TOML", func(t *testing.T) {
		_, err := LoadBytes([]byte(`default_policy = [`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrParseToml)
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := LoadBytes([]byte(`default_policy = "merge"`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("unknown log level", func(t *testing.T) {
		_, err := LoadBytes([]byte(`log_level = "verbose"`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidLevel)
	})

	t.Run("unknown log format", func(t *testing.T) {
		_, err := LoadBytes([]byte(`log_format = "yaml"`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("empty registry path", func(t *testing.T) {
		_, err := LoadBytes([]byte(`registry_path = ""`))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyRegistry)
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}
