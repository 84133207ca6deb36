package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DefaultAnalysisTimeout, cfg.Analysis.Timeout)
	assert.Equal(t, DefaultAnalysisModel, cfg.Analysis.Model)
	assert.False(t, cfg.Analysis.RemoteReady(), "remote analysis is off by default")
	assert.NotEmpty(t, cfg.JWTSecret, "development falls back to a dev secret")
}

func TestLoadAnalysisOverrides(t *testing.T) {
	t.Setenv("ANALYSIS_ENABLED", "true")
	t.Setenv("ANALYSIS_API_KEY", "sk-test")
	t.Setenv("ANALYSIS_BASE_URL", "https://llm.internal/v1")
	t.Setenv("ANALYSIS_MODEL", "custom-model")
	t.Setenv("ANALYSIS_TIMEOUT", "15s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.RemoteReady())
	assert.Equal(t, "https://llm.internal/v1", cfg.Analysis.BaseURL)
	assert.Equal(t, "custom-model", cfg.Analysis.Model)
	assert.Equal(t, 15*time.Second, cfg.Analysis.Timeout)
}

func TestRemoteReadyNeedsKeyAndFlag(t *testing.T) {
	tests := []struct {
		name string
		cfg  AnalysisConfig
		want bool
	}{
		{"enabled without key", AnalysisConfig{Enabled: true}, false},
		{"key but disabled", AnalysisConfig{APIKey: "sk"}, false},
		{"blank key", AnalysisConfig{Enabled: true, APIKey: "  "}, false},
		{"enabled with key", AnalysisConfig{Enabled: true, APIKey: "sk"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.RemoteReady())
		})
	}
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestPortAndOrigins(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9000")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", " Memory ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)

	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}
