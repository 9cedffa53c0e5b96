package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "LAB_"

// dotenvPath is an optional file of KEY=value lines read before the process
// environment. Variables set in the process win.
var dotenvPath = ".env"

// parseEnv overlays cfg with LAB_* variables. Unset variables leave the
// current values alone.
func parseEnv(cfg *Config) error {
	vars, err := environment()
	if err != nil {
		return err
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix, Environment: vars}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func environment() (map[string]string, error) {
	vars := map[string]string{}

	fromFile, err := godotenv.Read(dotenvPath)
	switch {
	case err == nil:
		maps.Copy(vars, fromFile)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
	}

	maps.Copy(vars, env.ToMap(os.Environ()))
	return vars, nil
}
