package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"

	"github.com/semmy-space/twofa/internal/secrets"
)

// Config holds the CLI configuration
type Config struct {
	Backend       string `json:"backend,omitempty"`
	Service       string `json:"service,omitempty"`
	DefaultOutput string `json:"default_output,omitempty"`
	LockTimeout   string `json:"lock_timeout,omitempty"`

	path string
}

// Keys lists the settable config keys in display order
var Keys = []string{"backend", "service", "default_output", "lock_timeout"}

// Load reads config from the XDG path, returns defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{path: path}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

// Path returns the file this config is loaded from and saved to
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the config file
func (c *Config) Save() error {
	path := c.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// JSON is valid JSON5
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks values that have a restricted domain
func (c *Config) Validate() error {
	for _, key := range Keys {
		value, _ := c.Get(key)
		if err := validate(key, value); err != nil {
			return err
		}
	}
	return nil
}

func validate(key, value string) error {
	if value == "" {
		return nil
	}
	switch key {
	case "backend":
		if !slices.Contains(secrets.Backends, value) {
			return fmt.Errorf("invalid backend %q (valid: %s)", value, strings.Join(secrets.Backends, ", "))
		}
	case "default_output":
		if !slices.Contains([]string{"json", "plain", "rich", "auto"}, value) {
			return fmt.Errorf("invalid output %q (valid: json, plain, rich, auto)", value)
		}
	case "lock_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid lock_timeout %q: %w", value, err)
		}
		if d <= 0 {
			return fmt.Errorf("lock_timeout must be positive")
		}
	case "service":
		if strings.TrimSpace(value) != value || strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("invalid service %q", value)
		}
	}
	return nil
}

// ServiceName returns the configured service identifier or the default
func (c *Config) ServiceName() string {
	if c.Service == "" {
		return secrets.ServiceName
	}
	return c.Service
}

// BackendName returns the configured backend or "auto"
func (c *Config) BackendName() string {
	if c.Backend == "" {
		return secrets.BackendAuto
	}
	return c.Backend
}

// LockWait returns the parsed lock timeout, zero when unset
func (c *Config) LockWait() time.Duration {
	d, err := time.ParseDuration(c.LockTimeout)
	if err != nil {
		return 0
	}
	return d
}

// field finds the struct field tagged with key
func (c *Config) field(key string) (reflect.Value, bool) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		jsonTag := t.Field(i).Tag.Get("json")
		if jsonTag == key || jsonTag == key+",omitempty" {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	f, ok := c.field(key)
	if !ok {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	return f.String(), nil
}

// Set validates and sets a config value by key name, then saves
func (c *Config) Set(key, value string) error {
	f, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err := validate(key, value); err != nil {
		return err
	}
	f.SetString(value)
	return c.Save()
}

// Unset resets a config value to its default and saves
func (c *Config) Unset(key string) error {
	f, ok := c.field(key)
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	f.SetString("")
	return c.Save()
}
