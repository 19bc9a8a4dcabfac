package config

import (
	"flag"
	"os"

	"github.com/quietpage/quietpage/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-s string   storage backend: file or sqlite
//	-f string   path of the store file or database
//	-l string   log level: debug, info, warn, error
//
// Only the flags handled here are parsed (via flagx.FilterArgs), so -c and
// -config remain available to the JSON layer.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	store := fs.String("s", string(cfg.Store), "storage backend (file or sqlite)")
	fs.StringVar(&cfg.StorePath, "f", cfg.StorePath, "store file or database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.Store = Backend(*store)
}
