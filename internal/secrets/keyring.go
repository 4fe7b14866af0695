package secrets

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/adrg/xdg"

	"github.com/semmy-space/twofa/internal/fault"
)

// KeyringStore implements the Store interface using the OS keyring.
type KeyringStore struct {
	service string
	ring    keyring.Keyring
}

// NewKeyringStore opens the OS keyring for the given service.
// Returns an error if the keyring is unavailable on this platform.
func NewKeyringStore(service string) (*KeyringStore, error) {
	cfg := keyring.Config{
		ServiceName:              service,
		KeychainTrustApplication: true, // macOS: don't prompt every access
		FileDir:                  filepath.Join(xdg.DataHome, "twofa", "keyring", service),
		FilePasswordFunc:         keyring.TerminalPrompt,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fault.E(fault.Store, "open keyring", "", err)
	}

	return NewKeyringStoreFrom(service, ring), nil
}

// NewKeyringStoreFrom wraps an already opened keyring
func NewKeyringStoreFrom(service string, ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{service: service, ring: ring}
}

// Get retrieves a secret by key from the keyring.
func (s *KeyringStore) Get(key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fault.E(fault.NotFound, "get", key, nil)
		}
		return "", fault.E(fault.Store, "get", key, err)
	}
	return string(item.Data), nil
}

// Set stores a secret in the keyring, replacing any previous value.
func (s *KeyringStore) Set(key, value string) error {
	item := keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: fmt.Sprintf("%s (%s)", key, s.service),
	}
	if err := s.ring.Set(item); err != nil {
		return fault.E(fault.Store, "set", key, err)
	}
	return nil
}

// Delete removes a secret from the keyring.
// Some backends remove missing keys silently, so existence is checked first.
func (s *KeyringStore) Delete(key string) error {
	if _, err := s.Get(key); err != nil {
		if fault.Is(err, fault.NotFound) {
			return fault.E(fault.NotFound, "delete", key, nil)
		}
		return err
	}
	if err := s.ring.Remove(key); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return fault.E(fault.NotFound, "delete", key, nil)
		}
		return fault.E(fault.Store, "delete", key, err)
	}
	return nil
}

// List returns all keys stored for the service.
func (s *KeyringStore) List() ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fault.E(fault.Store, "list", "", err)
	}
	return keys, nil
}
