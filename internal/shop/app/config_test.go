package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("APP_BASE_URL", "https://shop.example")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "shop.db", cfg.DatabaseFile)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, "cheapdeals-shop", cfg.Issuer)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_SECRET", "")
	t.Setenv("RESEND_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
	require.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLoadConfigRejectsSharedSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	_, err := LoadConfig()
	require.Error(t, err)
	require.Contains(t, err.Error(), "must differ")
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SHOP_DATABASE_FILE", "/tmp/other.db")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "48h")
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "prod")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "/tmp/other.db", cfg.DatabaseFile)
	require.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 48*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "prod", cfg.Env)
}

func TestLoadConfigMalformedOptionalFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "bogus")
	t.Setenv("PORT", "not-a-port")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 8080, cfg.Port)
}

func TestLoadConfigDurationAsMinutes(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
}
