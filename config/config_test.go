package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := load(v)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, 40*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "0 0 */3 * * *", cfg.RSS.Schedule)
	assert.True(t, cfg.RSS.Enabled)
	assert.False(t, cfg.Admin.AuthRequired)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("APP_ENV", "Production")
	v.Set("DATABASE_DRIVER", "SQLite")
	v.Set("JWT_EXPIRES_IN", "2h")
	v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	v.Set("ADMIN_AUTH_REQUIRED", "true")

	cfg := load(v)

	require.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.Admin.AuthRequired)
}
