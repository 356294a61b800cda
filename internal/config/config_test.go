package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ionenergy/ionctl/internal/cache"
	"github.com/ionenergy/ionctl/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "http://localhost:1880/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "ar", cfg.Locale)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  base_url: https://file.example.com/api
  timeout: 5s
locale: en
cache:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ION_API_BASE_URL", "https://env.example.com/api")
	t.Setenv("ION_CACHE_TTL_SECONDS", "42")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.API.BaseURL, "env overrides file")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout, "file overrides default")
	assert.Equal(t, "en", cfg.Locale)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 42, cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level, "absent keys keep defaults")
}

func TestLoad_Missing(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, config.ErrConfigMissing)
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locale: ar\n"), 0o600))
	t.Setenv("ION_CACHE_ENABLED", "maybe")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()
	cfg.SetPath(path)
	require.NoError(t, cfg.Set("api.base_url", "https://ion.example.com/api"))
	require.NoError(t, cfg.Set("api.timeout", "10s"))
	require.NoError(t, cfg.Save())

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://ion.example.com/api", loaded.API.BaseURL)
	assert.Equal(t, 10*time.Second, loaded.API.Timeout)
}

func TestGetSet(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "locale", key: "locale", value: "en"},
		{name: "cache toggle", key: "cache.enabled", value: "true"},
		{name: "ttl", key: "cache.ttl_seconds", value: "60"},
		{name: "unknown key", key: "api.password", value: "x", wantErr: config.ErrUnknownKey},
		{name: "bad bool", key: "cache.enabled", value: "maybe", wantErr: config.ErrInvalidValue},
		{name: "bad locale", key: "locale", value: "fr", wantErr: config.ErrInvalidValue},
		{name: "relative url", key: "api.base_url", value: "/api", wantErr: config.ErrInvalidValue},
		{name: "bad format", key: "output.default_format", value: "xml", wantErr: config.ErrInvalidValue},
		{name: "zero ttl", key: "cache.ttl_seconds", value: "0", wantErr: config.ErrInvalidValue},
		{name: "ttl too long", key: "cache.ttl_seconds", value: "48h", wantErr: cache.ErrInvalidTTL},
		{name: "ttl not a duration", key: "cache.ttl_seconds", value: "soon", wantErr: config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			before, _ := cfg.Get(tt.key)

			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				after, _ := cfg.Get(tt.key)
				assert.Equal(t, before, after, "failed set must not change the value")
				return
			}
			require.NoError(t, err)
			got, err := cfg.Get(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestSet_CacheTTLDuration(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Set("cache.ttl_seconds", "10m"))
	assert.Equal(t, 600, cfg.Cache.TTLSeconds)
	got, err := cfg.Get("cache.ttl_seconds")
	require.NoError(t, err)
	assert.Equal(t, "600", got)
}

func TestKeysSorted(t *testing.T) {
	keys := config.Keys()
	assert.Contains(t, keys, "api.base_url")
	assert.IsNonDecreasing(t, keys)
}

func TestGlobalConfig_UsesHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte("locale: en\n"), 0o600))
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.GetGlobalConfig()
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, filepath.Join(home, "config.yaml"), cfg.Path())
	assert.Empty(t, cfg.Warnings())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	base := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(local, []byte("ION_TEST_DOTENV=local\n"), 0o600))
	require.NoError(t, os.WriteFile(base, []byte("ION_TEST_DOTENV=base\nION_TEST_DOTENV_ONLY=base\n"), 0o600))
	t.Setenv("ION_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("ION_TEST_DOTENV"))
	t.Setenv("ION_TEST_DOTENV_ONLY", "")
	require.NoError(t, os.Unsetenv("ION_TEST_DOTENV_ONLY"))

	n, err := config.LoadDotEnv([]string{local, base, filepath.Join(dir, "missing")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "local", os.Getenv("ION_TEST_DOTENV"))
	assert.Equal(t, "base", os.Getenv("ION_TEST_DOTENV_ONLY"))
}
