package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for twofa
// Typically ~/.config/twofa/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "twofa")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// StateDir holds lock files
// Typically ~/.local/state/twofa/ on Linux
func StateDir() string {
	return filepath.Join(xdg.StateHome, "twofa")
}

// IndexLockPath returns the lock file guarding the name index of service
func IndexLockPath(service string) string {
	return filepath.Join(StateDir(), service+".index.lock")
}
