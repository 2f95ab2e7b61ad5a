package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// go test -v --run TestLoadFile
func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
deribit:
  rest:
    base_url: "http://localhost:9999/api/v2/public"
    timeout: 3s
scan:
  currency: "ETH"
  window: 48h
  concurrency: 2
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/v2/public", cfg.Deribit.REST.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Deribit.REST.Timeout)
	assert.Equal(t, "ETH", cfg.Scan.Currency)
	assert.Equal(t, 48*time.Hour, cfg.Scan.Window)
	assert.Equal(t, 2, cfg.Scan.Concurrency)

	// untouched keys keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.Server.RefreshInterval)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, 30*24*time.Hour, cfg.Archive.Retention)
}

// go test -v --run TestLoadEnvOverride
func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  currency: BTC\n"), 0o644))

	t.Setenv("SCAN_CONCURRENCY", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scan.Concurrency)
	assert.Equal(t, "BTC", cfg.Scan.Currency)
}

// go test -v --run TestLoadMissingExplicitFile
func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// go test -v --run TestValidate
func TestValidate(t *testing.T) {
	valid := Config{
		Deribit: DeribitConfig{REST: RESTConfig{BaseURL: "http://x"}},
		Scan:    ScanConfig{Currency: "BTC", Window: time.Hour, Concurrency: 1},
		Server:  ServerConfig{RefreshInterval: time.Second},
	}
	require.NoError(t, valid.Validate())

	noWindow := valid
	noWindow.Scan.Window = 0
	assert.Error(t, noWindow.Validate())

	noWorkers := valid
	noWorkers.Scan.Concurrency = 0
	assert.Error(t, noWorkers.Validate())

	negativeRetention := valid
	negativeRetention.Archive.Retention = -time.Hour
	assert.Error(t, negativeRetention.Validate())

	noCurrency := valid
	noCurrency.Scan.Currency = ""
	assert.Error(t, noCurrency.Validate())
}
