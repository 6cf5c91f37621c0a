package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "ENV", "PORT", "DATABASE_URL", "CORS_ORIGINS", "JWT_SECRET",
		"JWT_EXPIRES_DAYS", "ADMIN_COOKIE_NAME", "COOKIE_SECURE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, "cabins.db", cfg.DatabaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "cabanas_admin", cfg.AdminCookieName)
	assert.False(t, cfg.CookieSecure)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("JWT_EXPIRES_DAYS", "2")
	t.Setenv("COOKIE_SECURE", "yes")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 48*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.CookieSecure)
}

func TestLoad_InvalidExpiry(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_EXPIRES_DAYS", "week")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_EXPIRES_DAYS", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_ProdRequiresSecretAndSecureCookie(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	_, err = Load()
	assert.ErrorContains(t, err, "COOKIE_SECURE")

	t.Setenv("COOKIE_SECURE", "true")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
}
