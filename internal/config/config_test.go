package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"VITRINA_ADDR", "VITRINA_STORE", "VITRINA_DB",
	"VITRINA_REDIS_URL", "VITRINA_LOG", "VITRINA_GATEWAY_TIMEOUT",
}

// cleanEnv runs the test in an empty directory with no VITRINA_* variables.
func cleanEnv(t *testing.T) string {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Addr:           ":8080",
		Store:          StoreSQLite,
		DBPath:         "vitrina.sqlite3",
		RedisURL:       "redis://localhost:6379/0",
		GatewayTimeout: 5 * time.Second,
	}, cfg)
}

func TestLoadFlags(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load([]string{
		"-a", "127.0.0.1:9000",
		"-store", "redis",
		"-r", "redis://cache:6379/2",
		"-l", "vitrina.log",
		"-gateway-timeout", "250ms",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, "vitrina.log", cfg.LogPath)
	assert.Equal(t, 250*time.Millisecond, cfg.GatewayTimeout)
}

func TestLoadEnvironment(t *testing.T) {
	cleanEnv(t)
	t.Setenv("VITRINA_STORE", "memory")
	t.Setenv("VITRINA_GATEWAY_TIMEOUT", "2s")

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 2*time.Second, cfg.GatewayTimeout)

	cfg, err = Load([]string{"-s", "sqlite"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store, "flags override the environment")
}

func TestLoadDotEnv(t *testing.T) {
	dir := cleanEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("VITRINA_DB=/data/catalog.db\nVITRINA_ADDR=:9999\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("VITRINA_DB")
		os.Unsetenv("VITRINA_ADDR")
	})

	cfg, err := Load(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "/data/catalog.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.Addr)
}

func TestLoadErrors(t *testing.T) {
	cleanEnv(t)

	tests := map[string][]string{
		"unknown store":     {"-s", "postgres"},
		"bad duration":      {"-t", "soon"},
		"negative duration": {"-t", "-1s"},
		"unknown flag":      {"-x"},
		"extra argument":    {"serve"},
		"empty address":     {"-a", ""},
	}
	for name, args := range tests {
		_, err := Load(args, io.Discard)
		assert.Error(t, err, name)
	}

	t.Setenv("VITRINA_GATEWAY_TIMEOUT", "forever")
	_, err := Load(nil, io.Discard)
	assert.ErrorContains(t, err, "VITRINA_GATEWAY_TIMEOUT")
}

func TestLoadHelp(t *testing.T) {
	cleanEnv(t)

	var out bytes.Buffer
	_, err := Load([]string{"-h"}, &out)
	assert.ErrorIs(t, err, ErrHelp)
	assert.Contains(t, out.String(), "Usage: vitrina")
	assert.Contains(t, out.String(), "-gateway-timeout")
}
