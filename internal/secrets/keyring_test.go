package secrets

import (
	"strings"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/twofa/internal/fault"
)

func newArrayStore() *KeyringStore {
	return NewKeyringStoreFrom(ServiceName, keyring.NewArrayKeyring(nil))
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	store := newArrayStore()

	require.NoError(t, store.Set("github", "JBSWY3DPEHPK3PXP"))

	value, err := store.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", value)

	require.NoError(t, store.Set("github", "GEZDGNBVGY3TQOJQ"))
	value, err = store.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "GEZDGNBVGY3TQOJQ", value, "set overwrites")
}

func TestKeyringStoreMissingKey(t *testing.T) {
	store := newArrayStore()

	_, err := store.Get("nope")
	assert.True(t, fault.Is(err, fault.NotFound))

	err = store.Delete("nope")
	assert.True(t, fault.Is(err, fault.NotFound))
	assert.True(t, strings.HasPrefix(err.Error(), "delete: "), err.Error())
}

func TestKeyringStoreDelete(t *testing.T) {
	store := newArrayStore()
	require.NoError(t, store.Set("aws", "JBSWY3DPEHPK3PXP"))

	require.NoError(t, store.Delete("aws"))

	_, err := store.Get("aws")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestKeyringStoreList(t *testing.T) {
	store := newArrayStore()
	require.NoError(t, store.Set("b", "x"))
	require.NoError(t, store.Set("a", "y"))

	keys, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestIndexService(t *testing.T) {
	assert.Equal(t, "twofa-cli.index", IndexService(ServiceName))
	assert.NotEqual(t, ServiceName, IndexService(ServiceName))
}
