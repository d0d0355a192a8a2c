// Package config holds runtime settings for the ShopKart CLI.
package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the storefront client.
//
// Fields:
//   - APIBaseURL: base URL of the storefront backend.
//   - TokenFile: path of the persisted credential file.
type Config struct {
	APIBaseURL string
	TokenFile  string
}

// LoadDefaults populates c with sensible defaults. The credential file lives
// under the user's home directory when one is available.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"

	c.TokenFile = "tokens.json"
	if home, err := os.UserHomeDir(); err == nil {
		c.TokenFile = filepath.Join(home, ".shopkart", "tokens.json")
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a JSON file (if one is named) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
