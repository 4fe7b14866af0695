package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "twofa-cli", cfg.ServiceName())
	assert.Equal(t, "auto", cfg.BackendName())
	assert.Zero(t, cfg.LockWait())
	assert.Equal(t, path, cfg.Path())
}

func TestLoadJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	content := `{
  // comments and trailing commas are fine
  backend: "file",
  service: "work-otp",
  lock_timeout: "3s",
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.BackendName())
	assert.Equal(t, "work-otp", cfg.ServiceName())
	assert.Equal(t, 3*time.Second, cfg.LockWait())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{backend: "floppy"}`), 0600))

	_, err := LoadFrom(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backend")
}

func TestSetGetUnsetPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json5")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("backend", "native"))
	require.NoError(t, cfg.Set("lock_timeout", "250ms"))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	value, err := reloaded.Get("backend")
	require.NoError(t, err)
	assert.Equal(t, "native", value)
	assert.Equal(t, 250*time.Millisecond, reloaded.LockWait())

	require.NoError(t, reloaded.Unset("backend"))
	again, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "auto", again.BackendName())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		msg   string
	}{
		{name: "unknown key", key: "region", value: "us", msg: "unknown config key"},
		{name: "bad backend", key: "backend", value: "floppy", msg: "invalid backend"},
		{name: "bad output", key: "default_output", value: "xml", msg: "invalid output"},
		{name: "bad duration", key: "lock_timeout", value: "soon", msg: "invalid lock_timeout"},
		{name: "negative duration", key: "lock_timeout", value: "-1s", msg: "must be positive"},
		{name: "service with slash", key: "service", value: "a/b", msg: "invalid service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json5"))
			require.NoError(t, err)

			err = cfg.Set(tt.key, tt.value)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestGetUnknownKey(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.Get("nope")
	assert.Error(t, err)
}

func TestIndexLockPath(t *testing.T) {
	path := IndexLockPath("twofa-cli")
	assert.Equal(t, "twofa-cli.index.lock", filepath.Base(path))
	assert.Equal(t, StateDir(), filepath.Dir(path))
}
