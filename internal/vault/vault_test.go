package vault

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/semmy-space/twofa/internal/fault"
	"github.com/semmy-space/twofa/internal/index"
	"github.com/semmy-space/twofa/internal/passcode"
	"github.com/semmy-space/twofa/internal/secrets"
)

const secret = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"

func fixedClock(unix int64) func() time.Time {
	return func() time.Time { return time.Unix(unix, 0) }
}

func newTestVault(t *testing.T) (*Vault, secrets.Store) {
	t.Helper()
	store := secrets.NewKeyringStoreFrom(secrets.ServiceName, keyring.NewArrayKeyring(nil))
	idxStore := secrets.NewKeyringStoreFrom(secrets.IndexService(secrets.ServiceName), keyring.NewArrayKeyring(nil))
	ix := index.New(idxStore, filepath.Join(t.TempDir(), "index.lock"))
	return New(store, ix, nil), store
}

func TestPushThenGetMatchesEngine(t *testing.T) {
	v, _ := newTestVault(t)
	v.WithClock(fixedClock(1111111111))
	ctx := context.Background()

	require.NoError(t, v.Push(ctx, "github", secret))

	code, err := v.Code(ctx, "github")
	require.NoError(t, err)

	expected, err := passcode.Generate(secret, time.Unix(1111111111, 0))
	require.NoError(t, err)
	assert.Equal(t, expected, code.Value)
	assert.Equal(t, "050471", code.Value)
	assert.Equal(t, "github", code.Name)
	assert.Equal(t, 29*time.Second, code.Remaining)
}

func TestPushStoresNormalizedSecret(t *testing.T) {
	v, store := newTestVault(t)

	require.NoError(t, v.Push(context.Background(), "aws", "jbsw y3dp ehpk 3pxp"))

	raw, err := store.Get("aws")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", raw)
}

func TestPushOverwrites(t *testing.T) {
	v, store := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Push(ctx, "github", "JBSWY3DPEHPK3PXP"))
	require.NoError(t, v.Push(ctx, "github", secret))

	raw, err := store.Get("github")
	require.NoError(t, err)
	assert.Equal(t, secret, raw)

	names, err := v.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"github"}, names)
}

func TestPushRejectsInvalidSecret(t *testing.T) {
	v, store := newTestVault(t)
	ctx := context.Background()

	err := v.Push(ctx, "github", "not a secret!")
	assert.True(t, fault.Is(err, fault.InvalidSecret))

	_, err = store.Get("github")
	assert.True(t, fault.Is(err, fault.NotFound), "nothing stored")

	names, err := v.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPushRejectsInvalidName(t *testing.T) {
	v, _ := newTestVault(t)

	for _, name := range []string{"", "   ", "bad\nname"} {
		err := v.Push(context.Background(), name, secret)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestGetUnknownName(t *testing.T) {
	v, _ := newTestVault(t)

	_, err := v.Code(context.Background(), "ghost")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestGetMalformedStoredSecret(t *testing.T) {
	v, store := newTestVault(t)
	require.NoError(t, store.Set("broken", "!!!!"))

	_, err := v.Code(context.Background(), "broken")
	require.Error(t, err)
	assert.True(t, fault.Is(err, fault.InvalidSecret))
	assert.Contains(t, err.Error(), "broken")
}

func TestGetIgnoresIndex(t *testing.T) {
	v, store := newTestVault(t)
	require.NoError(t, store.Set("unindexed", secret))

	_, err := v.Code(context.Background(), "unindexed")
	assert.NoError(t, err)
}

func TestPushListDeleteList(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Push(ctx, "n", secret))
	names, err := v.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "n")

	require.NoError(t, v.Delete(ctx, "n"))
	names, err = v.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, names, "n")

	_, err = v.Code(ctx, "n")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestDeleteNeverPushed(t *testing.T) {
	v, _ := newTestVault(t)

	err := v.Delete(context.Background(), "ghost")
	assert.True(t, fault.Is(err, fault.NotFound))
}

func TestDeleteCleansStaleIndexEntry(t *testing.T) {
	v, store := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Push(ctx, "stale", secret))
	require.NoError(t, store.Delete("stale"))

	err := v.Delete(ctx, "stale")
	assert.True(t, fault.Is(err, fault.NotFound))

	names, err := v.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names, "index entry removed despite missing secret")
}

func TestListFreshStore(t *testing.T) {
	v, _ := newTestVault(t)

	names, err := v.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestListOrder(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, v.Push(ctx, name, secret))
	}

	names, err := v.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestReindex(t *testing.T) {
	v, store := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Push(ctx, "indexed", secret))
	require.NoError(t, store.Set("orphan", secret))

	names, err := v.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"indexed", "orphan"}, names)

	listed, err := v.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, names, listed)
}

func TestReindexUnsupportedBackend(t *testing.T) {
	gokeyring.MockInit()
	idxStore := secrets.NewNativeStore(secrets.IndexService(secrets.ServiceName))
	ix := index.New(idxStore, filepath.Join(t.TempDir(), "index.lock"))
	v := New(secrets.NewNativeStore(secrets.ServiceName), ix, nil)

	_, err := v.Reindex(context.Background())
	assert.ErrorIs(t, err, ErrCannotEnumerate)
}
