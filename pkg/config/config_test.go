package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("SESSION_PATH", "")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "erpctl", cfg.App.Name)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.RetryMax, "sin reintentos salvo configuración explícita")
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, int64(256<<20), cfg.API.MaxDownloadBytes)
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://erp.example.com/")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("API_RETRY_MAX", "2")
	t.Setenv("API_MAX_DOWNLOAD_MB", "16")
	t.Setenv("SESSION_PATH", "/tmp/erp/session.json")
	t.Setenv("LOG_FILE", "/tmp/erp/erpctl.log")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.API.Endpoint())
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryMax)
	assert.Equal(t, int64(16<<20), cfg.API.MaxDownloadBytes)
	assert.Equal(t, "/tmp/erp/session.json", cfg.Session.Path)
	assert.Equal(t, "/tmp/erp/erpctl.log", cfg.App.LogFile)
}

func TestGetInt_ValorInvalidoUsaDefecto(t *testing.T) {
	v := viper.New()
	v.Set("API_TIMEOUT_SECONDS", "treinta")
	assert.Equal(t, 30, getInt(v, "API_TIMEOUT_SECONDS", 30))
}

func TestAPIConfig_Endpoint(t *testing.T) {
	cases := []struct {
		base, path, want string
	}{
		{"http://localhost:8080", "/api", "http://localhost:8080/api"},
		{"http://localhost:8080/", "api/", "http://localhost:8080/api"},
		{"http://localhost:8080", "", "http://localhost:8080"},
	}
	for _, tc := range cases {
		got := APIConfig{BaseURL: tc.base, BasePath: tc.path}.Endpoint()
		assert.Equal(t, tc.want, got)
	}
}
