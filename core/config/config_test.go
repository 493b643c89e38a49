package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "en", cfg.Server.DefaultLanguage)
	assert.Equal(t, "gamedata", cfg.Storage.Bucket)
	assert.Equal(t, "dir", cfg.Data.Source)
	assert.Equal(t, "releases/", cfg.Data.Prefix)
	assert.Equal(t, "data/lang", cfg.I18n.Dir)
	assert.Equal(t, ", ", cfg.Tables.Separator)
	assert.Equal(t, 32, cfg.Compare.CacheSize)
	assert.Equal(t, "storage", cfg.Market.CacheBackend)
	assert.Equal(t, "Sheet1", cfg.Market.SheetName)
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "DATA_SOURCE=remote\nDATA_REMOTE_URL=https://cdn.example.com/releases\nMARKET_CACHE_BACKEND=database\nI18N_LANGUAGES=en,es\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644))
	t.Cleanup(func() {
		for _, k := range []string{"DATA_SOURCE", "DATA_REMOTE_URL", "MARKET_CACHE_BACKEND", "I18N_LANGUAGES"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "remote", cfg.Data.Source)
	assert.Equal(t, "https://cdn.example.com/releases", cfg.Data.RemoteURL)
	assert.Equal(t, "database", cfg.Market.CacheBackend)
	assert.Equal(t, []string{"en", "es"}, cfg.I18n.Codes())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TABLES_CONFIG_DIR", "/etc/wiki/tables")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/etc/wiki/tables", cfg.Tables.ConfigDir)
}

func TestLoadConfigInvalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"data source":   {"DATA_SOURCE", "ftp"},
		"i18n source":   {"I18N_SOURCE", "carrier-pigeon"},
		"market":        {"MARKET_CACHE_BACKEND", "redis"},
		"port":          {"SERVER_PORT", "http"},
		"remote no url": {"DATA_SOURCE", "remote"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := LoadConfig(t.TempDir())
			assert.Error(t, err)
		})
	}
}
