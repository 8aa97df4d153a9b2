// Package config loads and persists the lovelace client configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (LOVELACE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: LOVELACE_API_URL -> api_url,
	// LOVELACE_BROWSE_PORT -> browse.port, etc.
	if err := k.Load(env.Provider("LOVELACE_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "LOVELACE_"))
		return strings.Replace(key, "browse_", "browse.", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not a valid URL", c.APIURL)
	}

	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be positive")
	}
	if c.DropdownSize < 1 {
		return fmt.Errorf("dropdown_size must be positive")
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be non-negative")
	}
	if c.Browse.Port < 1 || c.Browse.Port > 65535 {
		return fmt.Errorf("browse.port %d is out of range", c.Browse.Port)
	}
	return nil
}
