// Copyright (c) 2026 Chronomap. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/chronomap/internal/platform/config"
)

/*
TestLoad_Defaults reads a postgres configuration with defaults applied.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/chronomap")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.SourcePostgres, cfg.DataSource)
	assert.True(t, cfg.UsesPostgres())
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "fr", cfg.DisplayLocale)
}

/*
TestConfig_Validate enforces settings required by the chosen data source.
*/
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"Postgres ok", config.Config{DataSource: "postgres", DatabaseURL: "postgres://x", SessionTTL: time.Hour}, ""},
		{"Postgres without URL", config.Config{DataSource: "postgres", SessionTTL: time.Hour}, "DATABASE_URL"},
		{"Rest ok", config.Config{DataSource: "rest", RestURL: "https://x", RestKey: "k", SessionTTL: time.Hour}, ""},
		{"Rest without key", config.Config{DataSource: "rest", RestURL: "https://x", SessionTTL: time.Hour}, "REST_KEY"},
		{"Unknown source", config.Config{DataSource: "csv", SessionTTL: time.Hour}, "DATA_SOURCE"},
		{"Zero TTL", config.Config{DataSource: "postgres", DatabaseURL: "postgres://x"}, "SESSION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
