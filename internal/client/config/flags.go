package config

import (
	"flag"
	"os"

	"github.com/example/reserva/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the API server (default from Config)
//	-d string   path to the local sqlite database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the API server")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "path to the local database file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
