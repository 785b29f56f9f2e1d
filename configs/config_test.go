package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ReportsEveryMissingRequiredVariable(t *testing.T) {
	t.Setenv("BASE_DOMAIN", "")
	t.Setenv("JWT_SECRET", "")

	var cfg *Config
	var err error
	require.NotPanics(t, func() { cfg, err = Load() })
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BASE_DOMAIN")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_MissingSecretOnly(t *testing.T) {
	t.Setenv("BASE_DOMAIN", "simpleoutings.com")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.NotContains(t, err.Error(), "BASE_DOMAIN")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BASE_DOMAIN", "SimpleOutings.com")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("COOKIE_DOMAIN", "")
	t.Setenv("JWT_REFRESH_REUSE_WINDOW", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.0/24")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "simpleoutings.com", cfg.Routing.BaseDomain)
	assert.Equal(t, ".simpleoutings.com", cfg.Routing.CookieDomain)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 10*time.Second, cfg.JWT.RefreshReuseWindow)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.0/24"}, cfg.Server.TrustedProxies)
}
