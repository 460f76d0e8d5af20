package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.StorageBackend)
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")
	t.Setenv("BASE_PATH", "/vendor")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, BackendRedis, cfg.StorageBackend)
	assert.Equal(t, "redis://localhost:6379/2", cfg.RedisURL)
	assert.Equal(t, 2, cfg.LowStockThreshold)
	assert.Equal(t, "/vendor", cfg.BasePath)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CURRENCY=EUR\nBACKUP_KEEP=3\n"), 0600))
	// Pre-set so t.Setenv restores them after godotenv writes to the process env.
	t.Setenv("CURRENCY", "")
	t.Setenv("BACKUP_KEEP", "")
	require.NoError(t, os.Unsetenv("CURRENCY"))
	require.NoError(t, os.Unsetenv("BACKUP_KEEP"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Currency)
	assert.Equal(t, 3, cfg.BackupKeep)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "s3"}},
		{"redis without url", map[string]string{"STORAGE_BACKEND": "redis", "REDIS_URL": ""}},
		{"bad threshold", map[string]string{"LOW_STOCK_THRESHOLD": "lots"}},
		{"negative threshold", map[string]string{"LOW_STOCK_THRESHOLD": "-1"}},
		{"keep zero", map[string]string{"BACKUP_KEEP": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
