package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1717, cfg.Server.Port)
	assert.Equal(t, ".", cfg.Storage.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenDuration)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ADMIN_USER", "root")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("LODGE_PORT", "8081")
	t.Setenv("LODGE_DATA_DIR", "/var/lib/lodge")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "root", cfg.Auth.AdminUser)
	assert.Equal(t, "hunter2", cfg.Auth.AdminPassword)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "/var/lib/lodge", cfg.Storage.DataDir)
}
