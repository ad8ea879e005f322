package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestReadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Content.GalleryLimit)
	assert.Equal(t, 6, cfg.Content.TestimonialsLimit)
	assert.Equal(t, "sync", cfg.Notification.Dispatch)
	assert.Equal(t, []string{"log"}, cfg.Notification.Channels)
	assert.Equal(t, 8, cfg.Codes.ReferenceLength)
}

func TestReadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
server:
  port: 9000
database:
  dbname: studio
notification:
  channels: [email]
  to: studio@example.com
`)
	t.Setenv("INTERIORA_SERVER_PORT", "9100")

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "studio", cfg.Database.DBName)
	assert.Equal(t, []string{"email"}, cfg.Notification.Channels)
	assert.Equal(t, "studio@example.com", cfg.Notification.To)
}

func TestReadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "INTERIORA_SITE_PHONE=+44 20 7946 0000\n")
	t.Cleanup(func() { os.Unsetenv("INTERIORA_SITE_PHONE") })

	cfg, err := ReadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "+44 20 7946 0000", cfg.Site.Phone)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:       ServerConfig{Port: 8080},
			Database:     DatabaseConfig{DBName: "studio"},
			Notification: NotificationConfig{Dispatch: "sync", Channels: []string{"log"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"missing db", func(c *Config) { c.Database.DBName = "" }, true},
		{"bad dispatch", func(c *Config) { c.Notification.Dispatch = "later" }, true},
		{"unknown channel", func(c *Config) { c.Notification.Channels = []string{"pigeon"} }, true},
		{"email without recipient", func(c *Config) { c.Notification.Channels = []string{"email"} }, true},
		{"events without nats", func(c *Config) { c.Notification.Channels = []string{"events"} }, true},
		{"auth without key", func(c *Config) { c.Authentication.Enabled = true }, true},
		{"auth with key", func(c *Config) {
			c.Authentication.Enabled = true
			c.Authentication.Paseto.LocalKeyHex = "00"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
