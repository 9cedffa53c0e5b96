package config

import (
	"flag"
	"fmt"

	"github.com/dmitrijs2005/labkeeper/internal/flagx"
)

// parseFlags overlays cfg with -d and -l from args. Other flags are left to
// the stages that own them.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("labkeeper", flag.ContinueOnError)
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-d", "-l"})); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
