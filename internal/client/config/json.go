package config

import (
	"encoding/json"
	"os"

	"github.com/shopkart-io/shopkart/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Empty fields
// leave the current value untouched.
type jsonConfig struct {
	APIBaseURL string `json:"api_base_url"`
	TokenFile  string `json:"token_file"`
}

// parseJSON overlays cfg with values from the JSON file named by the
// -c/-config flag. With no flag, nothing is loaded. Read or unmarshal errors
// panic; the file was named explicitly, so silently ignoring it would hide a
// misconfiguration.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
}
