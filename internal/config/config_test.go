package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("SAVE_DELAY", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "./migrations", cfg.MigrationsPath)
	assert.Equal(t, time.Second, cfg.SaveDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.SubmitDelay)
	assert.Equal(t, time.Local, cfg.Timezone)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadTrustedProxies(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.0/8,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestLoadBackendRequirements(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("STORE_BACKEND", BackendPostgres)
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORE_BACKEND", BackendRedis)
	t.Setenv("REDIS_ADDRESS", "")
	_, err = Load()
	assert.ErrorContains(t, err, "REDIS_ADDRESS")

	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)

	t.Setenv("STORE_BACKEND", "mongo")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE_BACKEND", "")

	t.Setenv("SAVE_DELAY", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "SAVE_DELAY")

	t.Setenv("SAVE_DELAY", "")
	t.Setenv("RATE_LIMIT_BURST", "0")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("RATE_LIMIT_BURST", "")
	t.Setenv("USE_SPACES", "true")
	t.Setenv("SPACES_BUCKET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "SPACES_BUCKET")
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_ADDRESS=:9191\n"), 0o600))
	t.Setenv("SERVER_ADDRESS", "")
	require.NoError(t, os.Unsetenv("SERVER_ADDRESS"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.ServerAddress)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
