// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/dexview/internal/platform/config"
)

/*
TestLoad_Defaults fills everything but the required secret from defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://pokeapi.co/api/v2/", cfg.RemoteBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTTL)
	assert.Equal(t, 500, cfg.SessionMax)
	assert.Equal(t, 16, cfg.EnrichConcurrency)
	assert.Equal(t, "nl", cfg.DescriptionLanguage)
	assert.Equal(t, "en", cfg.FallbackLanguage)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoad_Invalid rejects values that would break the pipeline at runtime.
*/
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		message string
	}{
		{"missing_secret", map[string]string{"SESSION_SECRET": ""}, "SESSION_SECRET"},
		{"short_secret", map[string]string{"SESSION_SECRET": "short"}, "SESSION_SECRET"},
		{"relative_remote", map[string]string{"REMOTE_BASE_URL": "pokeapi.co/api/v2"}, "REMOTE_BASE_URL"},
		{"zero_concurrency", map[string]string{"ENRICH_CONCURRENCY": "0"}, "ENRICH_CONCURRENCY"},
		{"unknown_environment", map[string]string{"ENVIRONMENT": "qa"}, "ENVIRONMENT"},
		{"negative_idle_ttl", map[string]string{"SESSION_IDLE_TTL": "-1m"}, "SESSION_IDLE_TTL"},
		{"zero_session_max", map[string]string{"SESSION_MAX": "0"}, "SESSION_MAX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}
