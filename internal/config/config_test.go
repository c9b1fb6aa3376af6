package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	conf := Default()

	assert.Equal(t, 60*time.Second, conf.Poll.Interval)
	assert.Equal(t, 3*time.Second, conf.Poll.Timeout)
	assert.Equal(t, 3*time.Second, conf.Poll.Flash)
	assert.Equal(t, 3*time.Second, conf.Login.Timeout)
	assert.Equal(t, []int{401, 403, 500}, conf.Login.AuthStatusCodes)
	assert.Equal(t, BackendKeyring, conf.Storage.Backend)
	assert.True(t, conf.UI.Sound)
	assert.NoError(t, conf.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifacex.yaml")
	content := `
poll:
  interval: 30s
login:
  auth_status_codes: [401, 403]
storage:
  backend: redis
  redis:
    addr: 10.0.0.5:6379
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, conf.Poll.Interval)
	assert.Equal(t, 3*time.Second, conf.Poll.Timeout)
	assert.Equal(t, BackendRedis, conf.Storage.Backend)
	assert.Equal(t, "10.0.0.5:6379", conf.Storage.Redis.Addr)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, map[int]bool{401: true, 403: true}, conf.AuthCodes())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifacex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: file\n"), 0600))
	t.Setenv("IFACEX_STORAGE_BACKEND", "memory")
	t.Setenv("IFACEX_POLL_INTERVAL", "5s")

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, conf.Storage.Backend)
	assert.Equal(t, 5*time.Second, conf.Poll.Interval)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ifacex.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown storage.backend")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
