package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("API_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "visitor_id", cfg.Identity.CookieName)
	assert.Equal(t, 16, cfg.Identity.TokenLength)
	assert.False(t, cfg.Fingerprint.Enabled)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowOrigins)
}

func TestLoadRejectsWildcardOrigin(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ALLOW_ORIGINS", "*")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9000"
  env: development
api:
  base_url: http://backend:4000/api
  timeout: 3s
fingerprint:
  enabled: true
  provider_url: http://fp.local
  ip_lookup_url: http://ip.local
database:
  driver: sqlite
  dsn: "file::memory:"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "9100")
	t.Setenv("ALLOW_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://backend:4000/api", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowOrigins)
	assert.True(t, cfg.Fingerprint.Enabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "file::memory:", cfg.Database.DSN)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Identity.TokenLength = 6
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Fingerprint.Enabled = true
	cfg.Fingerprint.ProviderURL = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.AllowOrigins = []string{"*"}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.AllowOrigins = nil
	assert.Error(t, cfg.Validate())

	assert.NoError(t, Default().Validate())
}
