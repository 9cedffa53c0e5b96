package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/labkeeper/internal/flagx"
	"github.com/dmitrijs2005/labkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" from the zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	DatabasePath           *string         `json:"database_path"`
	LogLevel               *string         `json:"log_level"`
	ShowDefaultCredentials *bool           `json:"show_default_credentials"`
	OperationTimeout       *timex.Duration `json:"operation_timeout"`
}

// parseJson overlays cfg with the file named by -c/-config in args.
// No flag means no change.
func parseJson(cfg *Config, args []string) error {
	path := flagx.JsonConfigFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.ShowDefaultCredentials != nil {
		cfg.ShowDefaultCredentials = *jc.ShowDefaultCredentials
	}
	if jc.OperationTimeout != nil {
		cfg.OperationTimeout = jc.OperationTimeout.Duration
	}
	return nil
}
