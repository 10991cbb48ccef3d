package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bankport/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the portal API
//	-t int      request timeout in seconds
//	-d string   path to the local cache database
//	-p int      transaction history page size
//
// Arguments are filtered with flagx.FilterArgs so the -c/-config flags
// consumed by the JSON stage do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the portal API")
	timeoutSeconds := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.CacheDBPath, "d", cfg.CacheDBPath, "path to the local cache database")
	fs.IntVar(&cfg.HistoryPageSize, "p", cfg.HistoryPageSize, "transaction history page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeoutSeconds) * time.Second
}
