// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/gravadora/internal/platform/config"
	"github.com/taibuivan/gravadora/internal/platform/sec"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/gravadora")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
}

/*
TestLoad_Defaults verifies defaults when only required variables are set.
*/
func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, sec.RoleAdmin, cfg.DefaultRole())
	assert.Equal(t, 30*time.Second, cfg.ProfileCacheTTL)
	assert.Equal(t, 8, cfg.DashboardFanoutLimit)
	assert.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	assert.False(t, cfg.StorageEnabled())
}

/*
TestLoad_MissingRequired fails fast without DATABASE_URL.
*/
func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("JWT_PRIVATE_KEY_PATH", "/keys/private.pem")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_InvalidValues rejects unusable role, zone and fan-out settings.
*/
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"legacy_default_role", "PROFILE_DEFAULT_ROLE", "viewer"},
		{"unknown_default_role", "PROFILE_DEFAULT_ROLE", "root"},
		{"bad_timezone", "TIMEZONE", "Mars/Olympus"},
		{"zero_fanout", "DASHBOARD_FANOUT_LIMIT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}

/*
TestLoad_LowerPrivilegeDefault allows operators to opt out of admin provisioning.
*/
func TestLoad_LowerPrivilegeDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("PROFILE_DEFAULT_ROLE", "producao")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, sec.RoleProducao, cfg.DefaultRole())
}
