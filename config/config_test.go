package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:9005/api",
			Credentials: "include",
		},
		Auth:    AuthConfig{StorePath: "/tmp/credentials.yaml"},
		Notify:  NotifyConfig{Duration: 3 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "api.base_url is required",
		},
		{
			name:    "unknown credentials policy",
			mutate:  func(c *Config) { c.API.Credentials = "always" },
			wantErr: "api.credentials",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -time.Second },
			wantErr: "api.timeout",
		},
		{
			name:    "negative notify duration",
			mutate:  func(c *Config) { c.Notify.Duration = -time.Second },
			wantErr: "notify.duration",
		},
		{
			name:    "missing store path",
			mutate:  func(c *Config) { c.Auth.StorePath = "" },
			wantErr: "auth.store_path",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"recent": " "} },
			wantErr: "filter preset 'recent'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: https://dlyt.example.com/api
  credentials: same-origin
  timeout: 15s
auth:
  store_path: ` + filepath.Join(dir, "creds.yaml") + `
notify:
  duration: 5s
filter:
  presets:
    recent: "daysSince(Created) < 7"
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://dlyt.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "same-origin", cfg.API.Credentials)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(dir, "creds.yaml"), cfg.Auth.StorePath)
	assert.Equal(t, 5*time.Second, cfg.Notify.Duration)
	assert.Equal(t, map[string]string{"recent": "daysSince(Created) < 7"}, cfg.Filter.Presets)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Equal(t, "s0up4200/dlyt", cfg.Update.Repository)
	assert.Equal(t, path, cfg.File)
}

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9005/api", cfg.API.BaseURL)
	assert.Equal(t, "include", cfg.API.Credentials)
	assert.Zero(t, cfg.API.Timeout)
	assert.Equal(t, filepath.Join(home, ".dlyt", "credentials.yaml"), cfg.Auth.StorePath)
	assert.Equal(t, 3*time.Second, cfg.Notify.Duration)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.File)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("DLYT_API_BASE_URL", "http://10.0.0.2:9005/api")
	t.Setenv("DLYT_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://10.0.0.2:9005/api", cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("api:\n  credentials: sometimes\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
