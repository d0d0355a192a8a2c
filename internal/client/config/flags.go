package config

import (
	"flag"
	"os"

	"github.com/shopkart-io/shopkart/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the storefront backend
//	-t string   path of the persisted credential file
//
// Args are filtered down to the flags handled here, to avoid interference
// with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the storefront backend")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "path of the credential file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
