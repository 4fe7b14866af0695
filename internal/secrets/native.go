package secrets

import (
	"errors"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/semmy-space/twofa/internal/fault"
)

// NativeStore talks to the platform secret service directly: Keychain on
// macOS, Credential Manager on Windows, Secret Service over D-Bus on Linux.
// Unlike KeyringStore it cannot enumerate keys.
type NativeStore struct {
	service string
}

// NewNativeStore creates a store scoped to service
func NewNativeStore(service string) *NativeStore {
	return &NativeStore{service: service}
}

func (s *NativeStore) Get(key string) (string, error) {
	value, err := gokeyring.Get(s.service, key)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", fault.E(fault.NotFound, "get", key, nil)
		}
		return "", fault.E(fault.Store, "get", key, err)
	}
	return value, nil
}

func (s *NativeStore) Set(key, value string) error {
	if err := gokeyring.Set(s.service, key, value); err != nil {
		return fault.E(fault.Store, "set", key, err)
	}
	return nil
}

func (s *NativeStore) Delete(key string) error {
	if err := gokeyring.Delete(s.service, key); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return fault.E(fault.NotFound, "delete", key, nil)
		}
		return fault.E(fault.Store, "delete", key, err)
	}
	return nil
}
