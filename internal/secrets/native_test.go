package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/semmy-space/twofa/internal/fault"
)

func TestNativeStore(t *testing.T) {
	gokeyring.MockInit()
	store := NewNativeStore(ServiceName)

	_, err := store.Get("github")
	assert.True(t, fault.Is(err, fault.NotFound))

	require.NoError(t, store.Set("github", "JBSWY3DPEHPK3PXP"))
	value, err := store.Get("github")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", value)

	require.NoError(t, store.Delete("github"))
	err = store.Delete("github")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestNativeStoreServicesAreIsolated(t *testing.T) {
	gokeyring.MockInit()
	secrets := NewNativeStore(ServiceName)
	index := NewNativeStore(IndexService(ServiceName))

	require.NoError(t, index.Set("names", `["a"]`))

	_, err := secrets.Get("names")
	assert.True(t, fault.Is(err, fault.NotFound))
}
