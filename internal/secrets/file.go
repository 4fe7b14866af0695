package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/crypto/scrypt"

	"github.com/semmy-space/twofa/internal/fault"
)

const saltSize = 16

// scrypt cost parameters; tests lower scryptN
var (
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// FileStore implements the Store interface using an AES-256-GCM encrypted file.
// This is a fallback for environments where OS keyring is unavailable (WSL, headless, Docker).
//
// File layout: salt (16 bytes) | nonce (12 bytes) | ciphertext. The key is
// derived from the password and salt with scrypt; a fresh salt is drawn on
// every write.
type FileStore struct {
	path     string
	password []byte
}

// NewFileStore creates a file-backed store for service inside dir.
// If password is empty, uses a machine-specific default (less secure, prints warning).
func NewFileStore(dir, service, password string) (*FileStore, error) {
	if password == "" {
		hostname, _ := os.Hostname()
		username := os.Getenv("USER")
		if username == "" {
			username = os.Getenv("USERNAME") // Windows fallback
		}
		password = fmt.Sprintf("%s@%s", username, hostname)
		warnOnce("WARNING: Using machine-specific encryption key. For better security, set a password via TWOFA_STORE_PASSWORD env var.")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fault.E(fault.Store, "open file store", "", fmt.Errorf("create directory: %w", err))
	}

	return &FileStore{
		path:     filepath.Join(dir, service+".enc"),
		password: []byte(password),
	}, nil
}

func (s *FileStore) deriveKey(salt []byte) ([]byte, error) {
	key, err := scrypt.Key(s.password, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

func (s *FileStore) encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := append(salt, nonce...)
	return gcm.Seal(out, nonce, plaintext, nil), nil
}

func (s *FileStore) decrypt(data []byte) ([]byte, error) {
	if len(data) < saltSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	salt, data := data[:saltSize], data[saltSize:]

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

// readStore decrypts and parses the file.
// Returns an empty map if the file doesn't exist.
func (s *FileStore) readStore() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if len(data) == 0 {
		return make(map[string]string), nil
	}

	plaintext, err := s.decrypt(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt store file: %w", err)
	}

	var store map[string]string
	if err := json.Unmarshal(plaintext, &store); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	return store, nil
}

func (s *FileStore) writeStore(store map[string]string) error {
	plaintext, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	ciphertext, err := s.encrypt(plaintext)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(key string) (string, error) {
	store, err := s.readStore()
	if err != nil {
		return "", fault.E(fault.Store, "get", key, err)
	}

	value, ok := store[key]
	if !ok {
		return "", fault.E(fault.NotFound, "get", key, nil)
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	store, err := s.readStore()
	if err != nil {
		return fault.E(fault.Store, "set", key, err)
	}

	store[key] = value
	if err := s.writeStore(store); err != nil {
		return fault.E(fault.Store, "set", key, err)
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	store, err := s.readStore()
	if err != nil {
		return fault.E(fault.Store, "delete", key, err)
	}

	if _, ok := store[key]; !ok {
		return fault.E(fault.NotFound, "delete", key, nil)
	}

	delete(store, key)
	if err := s.writeStore(store); err != nil {
		return fault.E(fault.Store, "delete", key, err)
	}
	return nil
}

// List returns all keys in the file, sorted.
func (s *FileStore) List() ([]string, error) {
	store, err := s.readStore()
	if err != nil {
		return nil, fault.E(fault.Store, "list", "", err)
	}

	keys := make([]string, 0, len(store))
	for k := range store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
