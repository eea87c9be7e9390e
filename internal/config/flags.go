package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrival/quickvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-clip int    clipboard clear interval in seconds
//	-lock int    database lock timeout in seconds
//	-n int       recent items cap
//	-g string    application group for the shared store
//
// Only the flags above are consumed; flagx.FilterArgs keeps this parser from
// tripping over flags owned by other components.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-clip", "-lock", "-n", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	clip := fs.Int("clip", int(cfg.ClipboardClearInterval.Seconds()), "clipboard clear interval (in seconds)")
	lock := fs.Int("lock", int(cfg.DatabaseLockTimeout.Seconds()), "database lock timeout (in seconds)")
	fs.IntVar(&cfg.RecentItemsCap, "n", cfg.RecentItemsCap, "recent items cap")
	fs.StringVar(&cfg.AppGroup, "g", cfg.AppGroup, "application group for the shared store")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.ClipboardClearInterval = time.Duration(*clip) * time.Second
	cfg.DatabaseLockTimeout = time.Duration(*lock) * time.Second

	return nil
}
