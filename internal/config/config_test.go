package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("ADMIN_ONLY_RESOURCES", "")
	t.Setenv("TOKEN_TTL_HOURS", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg := Load()
	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, []string{"http://localhost:3001"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, 500, cfg.RateLimits.Global)
	assert.Equal(t, 10, cfg.RateLimits.Login)
	assert.Equal(t, 5, cfg.RateLimits.Contact)
	assert.True(t, cfg.IsAdminOnly("hoteles"))
	assert.False(t, cfg.IsAdminOnly("restaurantes"))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ORIGINS", " https://combita.gov.co , ,http://localhost:5173")
	t.Setenv("ADMIN_ONLY_RESOURCES", "restaurantes")
	t.Setenv("TOKEN_TTL_HOURS", "not-a-number")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []string{"https://combita.gov.co", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsAdminOnly("restaurantes"))
	assert.False(t, cfg.IsAdminOnly("hoteles"))
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{JWTSecret: "s3cret", StorageBackend: "file"}, false},
		{"missing secret", Config{StorageBackend: "file"}, true},
		{"unknown backend", Config{JWTSecret: "s3cret", StorageBackend: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
