package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
)

// Backend names accepted by Open
const (
	BackendAuto    = "auto"
	BackendKeyring = "keyring"
	BackendNative  = "native"
	BackendFile    = "file"
)

// Backends lists the valid backend names
var Backends = []string{BackendAuto, BackendKeyring, BackendNative, BackendFile}

// warningShown checks if the file-store warning has already been shown.
// Uses a marker file in the data directory to avoid repeating on every command.
func warningShown() bool {
	return fileExists(warningMarkerPath())
}

func markWarningShown() {
	_ = os.MkdirAll(DataDir(), 0700)
	_ = os.WriteFile(warningMarkerPath(), []byte("1"), 0600)
}

func warningMarkerPath() string {
	return filepath.Join(DataDir(), ".file-store-warning-shown")
}

// quietMode returns true if the user has suppressed warnings via TWOFA_QUIET.
func quietMode() bool {
	return os.Getenv("TWOFA_QUIET") == "1" || os.Getenv("TWOFA_QUIET") == "true"
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// warnOnce prints a message to stderr, but only until the marker exists.
// Set TWOFA_QUIET=1 to suppress entirely.
func warnOnce(msg string) {
	if quietMode() || warningShown() {
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func markWarningsDone() {
	if !warningShown() {
		markWarningShown()
	}
}

// DataDir is where file-backed stores live
func DataDir() string {
	return filepath.Join(xdg.DataHome, "twofa")
}

// Open creates the store for service using the named backend.
// "auto" tries the OS keyring first and falls back to the encrypted file;
// WSL and headless environments go straight to the file.
func Open(backend, service string) (Store, error) {
	switch backend {
	case BackendKeyring:
		store, err := NewKeyringStore(service)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendNative:
		return NewNativeStore(service), nil
	case BackendFile:
		return openFile(service)
	case BackendAuto, "":
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: %s)", backend, strings.Join(Backends, ", "))
	}

	if IsWSL() || IsHeadless() {
		warnOnce("Detected WSL/headless environment, using encrypted file storage")
		return openFile(service)
	}

	store, err := NewKeyringStore(service)
	if err != nil {
		warnOnce(fmt.Sprintf("Keyring unavailable (%v), falling back to encrypted file", err))
		return openFile(service)
	}
	return store, nil
}

func openFile(service string) (Store, error) {
	store, err := NewFileStore(DataDir(), service, os.Getenv("TWOFA_STORE_PASSWORD"))
	if err != nil {
		return nil, err
	}
	markWarningsDone()
	return store, nil
}

// Describe names the storage a backend setting resolves to, for messages.
func Describe(backend string) string {
	switch backend {
	case BackendKeyring:
		return "OS keyring"
	case BackendNative:
		return "native secret service"
	case BackendFile:
		return "encrypted file"
	}
	if IsWSL() || IsHeadless() {
		return "encrypted file"
	}
	return "OS keyring"
}

// IsWSL returns true if running under Windows Subsystem for Linux.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}

	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}

	version := strings.ToLower(string(data))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// IsHeadless returns true if running in a headless environment (no display server).
// Only applicable on Linux; macOS and Windows are assumed to have GUI.
func IsHeadless() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
