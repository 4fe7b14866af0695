package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/twofa/internal/fault"
)

func newTestFileStore(t *testing.T, dir, password string) *FileStore {
	t.Helper()
	old := scryptN
	scryptN = 1 << 10
	t.Cleanup(func() { scryptN = old })

	store, err := NewFileStore(dir, ServiceName, password)
	require.NoError(t, err)
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t, t.TempDir(), "hunter2")

	_, err := store.Get("github")
	assert.True(t, fault.Is(err, fault.NotFound), "empty store reports not found")

	require.NoError(t, store.Set("github", "JBSWY3DPEHPK3PXP"))
	require.NoError(t, store.Set("aws", "GEZDGNBVGY3TQOJQ"))

	value, err := store.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", value)

	keys, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"aws", "github"}, keys)

	require.NoError(t, store.Delete("aws"))
	err = store.Delete("aws")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestFileStoreIsEncrypted(t *testing.T) {
	dir := t.TempDir()
	store := newTestFileStore(t, dir, "hunter2")
	require.NoError(t, store.Set("github", "JBSWY3DPEHPK3PXP"))

	data, err := os.ReadFile(filepath.Join(dir, ServiceName+".enc"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "JBSWY3DPEHPK3PXP")
	assert.NotContains(t, string(data), "github")

	info, err := os.Stat(filepath.Join(dir, ServiceName+".enc"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreWrongPassword(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, newTestFileStore(t, dir, "right").Set("github", "JBSWY3DPEHPK3PXP"))

	_, err := newTestFileStore(t, dir, "wrong").Get("github")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.Store))
}

func TestFileStoreTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	store := newTestFileStore(t, dir, "pw")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ServiceName+".enc"), []byte("short"), 0600))

	_, err := store.Get("x")
	assert.True(t, fault.Is(err, fault.Store))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("carrier-pigeon", ServiceName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "OS keyring", Describe(BackendKeyring))
	assert.Equal(t, "native secret service", Describe(BackendNative))
	assert.Equal(t, "encrypted file", Describe(BackendFile))
}
